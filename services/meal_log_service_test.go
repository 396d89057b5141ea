package services

import (
	"testing"
	"time"

	"github.com/aadijha14/NutritionApp/models"
	"github.com/aadijha14/NutritionApp/testutil"
)

func logAt(userID uint, name string, calories int, at time.Time, locationType string) *models.MealLog {
	return &models.MealLog{
		UserID:       userID,
		FoodName:     name,
		Calories:     calories,
		Protein:      calories / 20,
		Carbs:        calories / 10,
		Fat:          calories / 40,
		Date:         at,
		MealType:     "Lunch",
		LocationType: locationType,
	}
}

func TestConsumedCalories_OnlyCountsTheDay(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.CreateTestUser(t, db, "logs@example.com", 2000)
	svc := NewMealLogService(db)

	day := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	for _, l := range []*models.MealLog{
		logAt(user.ID, "Oatmeal", 400, day.Add(-4*time.Hour), models.LocationHome),
		logAt(user.ID, "Chicken Rice", 500, day, models.LocationRestaurant),
		logAt(user.ID, "Yesterday Pasta", 700, day.Add(-24*time.Hour), models.LocationHome),
		logAt(user.ID, "Tomorrow Toast", 300, day.Add(24*time.Hour), models.LocationHome),
	} {
		if err := svc.Append(l); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := svc.ConsumedCalories(user.ID, day)
	if err != nil {
		t.Fatalf("ConsumedCalories: %v", err)
	}
	if got != 900 {
		t.Errorf("consumed = %d, want 900", got)
	}
}

func TestConsumedCalories_EmptyDayIsZero(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.CreateTestUser(t, db, "logs@example.com", 2000)
	svc := NewMealLogService(db)

	got, err := svc.ConsumedCalories(user.ID, time.Now())
	if err != nil {
		t.Fatalf("ConsumedCalories: %v", err)
	}
	if got != 0 {
		t.Errorf("consumed = %d, want 0", got)
	}
}

func TestAppend_DefaultsDateToNow(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.CreateTestUser(t, db, "logs@example.com", 2000)
	svc := NewMealLogService(db)

	entry := &models.MealLog{UserID: user.ID, FoodName: "Snack Bar", Calories: 200}
	if err := svc.Append(entry); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if entry.Date.IsZero() {
		t.Error("Append left the date zero")
	}
}

func TestListByDay_NewestFirstWithTotals(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.CreateTestUser(t, db, "logs@example.com", 2000)
	svc := NewMealLogService(db)

	day := time.Date(2026, 3, 10, 8, 0, 0, 0, time.Local)
	svc.Append(logAt(user.ID, "Oatmeal", 400, day, models.LocationHome))
	svc.Append(logAt(user.ID, "Chicken Rice", 500, day.Add(5*time.Hour), models.LocationRestaurant))

	logs, totals, err := svc.ListByDay(user.ID, day)
	if err != nil {
		t.Fatalf("ListByDay: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("got %d logs, want 2", len(logs))
	}
	if logs[0].FoodName != "Chicken Rice" {
		t.Errorf("logs not newest-first: %s", logs[0].FoodName)
	}
	if totals.Calories != 900 {
		t.Errorf("totals.Calories = %d, want 900", totals.Calories)
	}
}

func TestListByDateRange_InclusiveDays(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.CreateTestUser(t, db, "logs@example.com", 2000)
	svc := NewMealLogService(db)

	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	svc.Append(logAt(user.ID, "Day One", 400, base, models.LocationHome))
	svc.Append(logAt(user.ID, "Day Three", 500, base.Add(48*time.Hour), models.LocationHome))
	svc.Append(logAt(user.ID, "Day Five", 600, base.Add(96*time.Hour), models.LocationHome))

	logs, err := svc.ListByDateRange(user.ID, base, base.Add(48*time.Hour))
	if err != nil {
		t.Fatalf("ListByDateRange: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("got %d logs, want 2", len(logs))
	}
	for _, l := range logs {
		if l.FoodName == "Day Five" {
			t.Error("log outside the range returned")
		}
	}
}

func TestHomeRecipes_DedupesNewestFirst(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.CreateTestUser(t, db, "logs@example.com", 2000)
	svc := NewMealLogService(db)

	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	svc.Append(logAt(user.ID, "Fried Rice", 550, base, models.LocationHome))
	svc.Append(logAt(user.ID, "Omelette", 300, base.Add(time.Hour), "custom"))
	svc.Append(logAt(user.ID, "Fried Rice", 560, base.Add(2*time.Hour), models.LocationHome))
	svc.Append(logAt(user.ID, "Sushi Set", 620, base.Add(3*time.Hour), models.LocationRestaurant))

	recipes, err := svc.HomeRecipes(user.ID)
	if err != nil {
		t.Fatalf("HomeRecipes: %v", err)
	}
	if len(recipes) != 2 {
		t.Fatalf("got %d recipes, want 2", len(recipes))
	}
	if recipes[0].FoodName != "Fried Rice" || recipes[0].Calories != 560 {
		t.Errorf("first recipe = %+v, want newest Fried Rice", recipes[0])
	}
	if recipes[1].FoodName != "Omelette" {
		t.Errorf("second recipe = %+v", recipes[1])
	}
	for _, r := range recipes {
		if r.FoodName == "Sushi Set" {
			t.Error("restaurant log surfaced as a home recipe")
		}
	}
}
