package testutil

import (
	"testing"

	"github.com/aadijha14/NutritionApp/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a fresh in-memory sqlite database with the full schema
// migrated. Every call returns an isolated database.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.RestaurantItem{},
		&models.FavoriteRestaurant{},
		&models.MealLog{},
		&models.MealPlan{},
		&models.Timeframe{},
	)
	if err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	return db
}

// CreateTestUser inserts a user with the given calorie target and returns it.
func CreateTestUser(t *testing.T, db *gorm.DB, email string, target int) *models.User {
	t.Helper()
	user := &models.User{Email: email, DailyCalorieTarget: target}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("creating test user: %v", err)
	}
	return user
}
