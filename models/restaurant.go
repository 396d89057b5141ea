package models

import "gorm.io/gorm"

// A place pulled from the maps API, with its known menu.
type Restaurant struct {
	gorm.Model
	PlaceID string `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name    string `gorm:"not null"`
	Address string
	Lat     float64
	Lng     float64
	Items   []RestaurantItem
}

// One dish on a restaurant's menu. Macro fields default to 0 when the
// source data is missing them.
type RestaurantItem struct {
	gorm.Model
	RestaurantID uint
	FoodName     string `gorm:"not null"`
	Calories     int
	Protein      int
	Carbs        int
	Fat          int
}
