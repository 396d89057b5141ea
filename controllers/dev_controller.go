package controllers

import (
	"net/http"

	"github.com/aadijha14/NutritionApp/config"
	"github.com/aadijha14/NutritionApp/models"
	"github.com/aadijha14/NutritionApp/utils"

	"github.com/gin-gonic/gin"
)

// DevController is mounted only when DEV_ROUTES=true. It mints bearer
// tokens for local testing; real token issuance lives outside this service.
type DevController struct{}

func NewDevController() *DevController { return &DevController{} }

type devTokenReq struct {
	Email string `json:"email" binding:"required"`
}

func (d *DevController) MintToken(c *gin.Context) {
	var req devTokenReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// create the user on first use so a fresh database is usable immediately
	var user models.User
	if err := config.DB.Where("email = ?", req.Email).
		FirstOrCreate(&user, models.User{Email: req.Email}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	token, err := utils.GenerateJWT(user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user_id": user.ID})
}
