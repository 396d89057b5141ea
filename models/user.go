package models

import (
	"strings"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email              string `gorm:"uniqueIndex;not null"`
	FullName           string
	DailyCalorieTarget int    `gorm:"default:2000"`
	DietaryPreferences string // comma-separated labels, e.g. "vegetarian,halal"
	HeightCm           float64
	WeightKg           float64
}

// PreferenceList splits the stored comma-separated preferences, dropping
// empty entries.
func (u *User) PreferenceList() []string {
	var prefs []string
	for _, p := range strings.Split(u.DietaryPreferences, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			prefs = append(prefs, p)
		}
	}
	return prefs
}
