package models

import "time"

// FavoriteRestaurant joins a user to a restaurant they starred. Rows are
// hard-deleted on unfavorite; the unique pair makes starring idempotent.
type FavoriteRestaurant struct {
	ID           uint `gorm:"primaryKey"`
	UserID       uint `gorm:"uniqueIndex:idx_favorite_user_restaurant;not null"`
	RestaurantID uint `gorm:"uniqueIndex:idx_favorite_user_restaurant;not null"`
	CreatedAt    time.Time
}
