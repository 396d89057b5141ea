package models

import (
	"time"

	"gorm.io/gorm"
)

// MealLog is the append-only record of what was actually eaten. Consumed
// calories for a day are summed from these rows, never from the plan.
type MealLog struct {
	gorm.Model
	UserID       uint      `gorm:"index;not null"`
	FoodName     string    `gorm:"not null"`
	Calories     int
	Protein      int
	Carbs        int
	Fat          int
	Date         time.Time `gorm:"index"`
	MealType     string    // "Breakfast"|"Lunch"|... or "custom"
	LocationName string    // "Home" or the restaurant name
	LocationType string    // "home" | "restaurant" | "custom"
}
