package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/aadijha14/NutritionApp/models"
	"github.com/aadijha14/NutritionApp/services"

	"github.com/gin-gonic/gin"
)

type MealLogController struct {
	Logs      *services.MealLogService
	Hub       *services.RealtimeHub
	Nutrition services.NutritionClient
}

func NewMealLogController(logs *services.MealLogService, hub *services.RealtimeHub, nutrition services.NutritionClient) *MealLogController {
	return &MealLogController{Logs: logs, Hub: hub, Nutrition: nutrition}
}

// QuickLog appends an ad-hoc meal (outside any plan) to the log.
func (mc *MealLogController) QuickLog(c *gin.Context) {
	var body struct {
		FoodName     string    `json:"foodName" binding:"required"`
		Calories     int       `json:"calories"`
		Protein      int       `json:"protein"`
		Carbs        int       `json:"carbs"`
		Fat          int       `json:"fat"`
		Date         time.Time `json:"date"`
		MealType     string    `json:"mealType"`
		LocationName string    `json:"locationName"`
		LocationType string    `json:"locationType"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if body.LocationType == "" {
		body.LocationType = "custom"
	}
	// Fill in macros from the nutrition API when the client logged a bare
	// food name. Lookup failures fall back to a zero-calorie entry.
	if body.Calories == 0 && mc.Nutrition != nil {
		if item, err := mc.Nutrition.LookupFood(c.Request.Context(), body.FoodName); err == nil {
			body.Calories = item.Calories
			body.Protein = item.Protein
			body.Carbs = item.Carbs
			body.Fat = item.Fat
		}
	}

	entry := &models.MealLog{
		UserID:       c.GetUint("userID"),
		FoodName:     body.FoodName,
		Calories:     body.Calories,
		Protein:      body.Protein,
		Carbs:        body.Carbs,
		Fat:          body.Fat,
		Date:         body.Date,
		MealType:     body.MealType,
		LocationName: body.LocationName,
		LocationType: body.LocationType,
	}
	if err := mc.Logs.Append(entry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if mc.Hub != nil {
		mc.Hub.Broadcast(entry.UserID, services.EventLogCreated, entry)
	}
	c.JSON(http.StatusCreated, entry)
}

// LookupNutrition resolves a free-text food query ("1 bowl chicken rice")
// into macros via the configured nutrition API.
func (mc *MealLogController) LookupNutrition(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing 'query' parameter"})
		return
	}
	if mc.Nutrition == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "nutrition lookup not configured"})
		return
	}
	item, err := mc.Nutrition.LookupFood(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (mc *MealLogController) Today(c *gin.Context) {
	logs, totals, err := mc.Logs.ListByDay(c.GetUint("userID"), time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs, "totals": totals})
}

// History lists logs between ?from and ?to (YYYY-MM-DD, inclusive).
func (mc *MealLogController) History(c *gin.Context) {
	from, err := time.ParseInLocation("2006-01-02", c.Query("from"), time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'from' date, use YYYY-MM-DD"})
		return
	}
	to, err := time.ParseInLocation("2006-01-02", c.Query("to"), time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'to' date, use YYYY-MM-DD"})
		return
	}

	logs, err := mc.Logs.ListByDateRange(c.GetUint("userID"), from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, logs)
}

// HomeRecipes returns the user's deduplicated home-cooked dish history, the
// candidate pool for home-mode slots.
func (mc *MealLogController) HomeRecipes(c *gin.Context) {
	recipes, err := mc.Logs.HomeRecipes(c.GetUint("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, recipes)
}
