package services

import (
	"context"
	"testing"
	"time"

	"github.com/aadijha14/NutritionApp/models"
	"github.com/aadijha14/NutritionApp/testutil"
)

func TestSummary_AggregatesRange(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.CreateTestUser(t, db, "analytics@example.com", 2000)
	logs := NewMealLogService(db)
	svc := NewAnalyticsService(db)

	day1 := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	day2 := day1.Add(24 * time.Hour)
	logs.Append(&models.MealLog{UserID: user.ID, FoodName: "Chicken Rice", Calories: 500, Protein: 30, Date: day1, LocationType: models.LocationRestaurant})
	logs.Append(&models.MealLog{UserID: user.ID, FoodName: "Oatmeal", Calories: 400, Protein: 15, Date: day1, LocationType: models.LocationHome})
	logs.Append(&models.MealLog{UserID: user.ID, FoodName: "Chicken Rice", Calories: 520, Protein: 31, Date: day2, LocationType: models.LocationRestaurant})

	sum, err := svc.Summary(context.Background(), user.ID, day1, day2)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}

	if sum.Totals.Calories != 1420 {
		t.Errorf("total calories = %d, want 1420", sum.Totals.Calories)
	}
	if sum.Metadata.DaysCounted != 2 || sum.Metadata.LogsCounted != 3 {
		t.Errorf("metadata = %+v", sum.Metadata)
	}
	if got := sum.Averages["calories"]; got != 710 {
		t.Errorf("average calories = %v, want 710", got)
	}
	if sum.ByLocation[models.LocationRestaurant] != 2 || sum.ByLocation[models.LocationHome] != 1 {
		t.Errorf("by location = %+v", sum.ByLocation)
	}

	if len(sum.TopDishes) != 2 {
		t.Fatalf("got %d top dishes, want 2", len(sum.TopDishes))
	}
	if sum.TopDishes[0].FoodName != "Chicken Rice" || sum.TopDishes[0].Count != 2 {
		t.Errorf("top dish = %+v", sum.TopDishes[0])
	}
	if sum.TopDishes[0].Calories != 1020 {
		t.Errorf("top dish calories = %d, want 1020", sum.TopDishes[0].Calories)
	}
}

func TestSummary_TopDishesCappedAtFive(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.CreateTestUser(t, db, "analytics@example.com", 2000)
	logs := NewMealLogService(db)
	svc := NewAnalyticsService(db)

	day := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	names := []string{"A", "B", "C", "D", "E", "F", "G"}
	for _, n := range names {
		logs.Append(&models.MealLog{UserID: user.ID, FoodName: n, Calories: 100, Date: day, LocationType: models.LocationHome})
	}

	sum, err := svc.Summary(context.Background(), user.ID, day, day)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if len(sum.TopDishes) != 5 {
		t.Errorf("got %d top dishes, want 5", len(sum.TopDishes))
	}
}

func TestSummary_EmptyRange(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.CreateTestUser(t, db, "analytics@example.com", 2000)
	svc := NewAnalyticsService(db)

	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)
	sum, err := svc.Summary(context.Background(), user.ID, day, day.Add(6*24*time.Hour))
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if sum.Metadata.LogsCounted != 0 || sum.Totals.Calories != 0 {
		t.Errorf("empty range produced data: %+v", sum)
	}
	if sum.Averages["calories"] != 0 {
		t.Errorf("average = %v, want 0", sum.Averages["calories"])
	}
}

func TestSummary_IgnoresOtherUsers(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.CreateTestUser(t, db, "analytics@example.com", 2000)
	other := testutil.CreateTestUser(t, db, "other@example.com", 2000)
	logs := NewMealLogService(db)
	svc := NewAnalyticsService(db)

	day := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	logs.Append(&models.MealLog{UserID: other.ID, FoodName: "Not Yours", Calories: 999, Date: day, LocationType: models.LocationHome})

	sum, err := svc.Summary(context.Background(), user.ID, day, day)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if sum.Metadata.LogsCounted != 0 {
		t.Errorf("another user's logs counted: %+v", sum.Metadata)
	}
}
