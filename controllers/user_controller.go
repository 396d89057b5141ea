package controllers

import (
	"net/http"
	"strings"

	"github.com/aadijha14/NutritionApp/config"
	"github.com/aadijha14/NutritionApp/models"

	"github.com/gin-gonic/gin"
)

func GetProfile(c *gin.Context) {
	var user models.User
	if err := config.DB.First(&user, c.GetUint("userID")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"email":                user.Email,
		"full_name":            user.FullName,
		"daily_calorie_target": user.DailyCalorieTarget,
		"dietary_preferences":  user.PreferenceList(),
		"height_cm":            user.HeightCm,
		"weight_kg":            user.WeightKg,
	})
}

func UpdateProfile(c *gin.Context) {
	var input struct {
		FullName           *string  `json:"full_name"`
		DailyCalorieTarget *int     `json:"daily_calorie_target"`
		DietaryPreferences []string `json:"dietary_preferences"`
		HeightCm           *float64 `json:"height_cm"`
		WeightKg           *float64 `json:"weight_kg"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.First(&user, c.GetUint("userID")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.DailyCalorieTarget != nil {
		if *input.DailyCalorieTarget <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "daily_calorie_target must be positive"})
			return
		}
		user.DailyCalorieTarget = *input.DailyCalorieTarget
	}
	if input.DietaryPreferences != nil {
		user.DietaryPreferences = strings.Join(input.DietaryPreferences, ",")
	}
	if input.HeightCm != nil {
		user.HeightCm = *input.HeightCm
	}
	if input.WeightKg != nil {
		user.WeightKg = *input.WeightKg
	}

	if err := config.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "profile updated successfully"})
}
