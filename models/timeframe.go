package models

import "gorm.io/gorm"

// Timeframe is one configurable meal occasion template (breakfast, lunch,
// snack, dinner). A fresh plan starts with one empty slot per timeframe.
type Timeframe struct {
	gorm.Model
	SlotID      string `gorm:"uniqueIndex;not null"` // "breakfast", "lunch", ...
	Name        string `gorm:"not null"`
	StartTime   string
	EndTime     string
	DefaultTime string
	Position    int
}
