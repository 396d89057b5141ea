package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MealPlan is the persisted plan document for one user and one calendar day.
// The slot list is stored verbatim as a single jsonb column and always
// overwritten wholesale; last write wins across devices.
type MealPlan struct {
	gorm.Model
	UserID  uint                          `gorm:"uniqueIndex:idx_plan_user_day;not null"`
	DateKey string                        `gorm:"type:varchar(10);uniqueIndex:idx_plan_user_day;not null"` // YYYY-MM-DD
	Slots   datatypes.JSONSlice[MealSlot] `gorm:"type:jsonb"`
}
