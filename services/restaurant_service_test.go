package services

import (
	"errors"
	"testing"

	"github.com/aadijha14/NutritionApp/models"
	"github.com/aadijha14/NutritionApp/testutil"

	"gorm.io/gorm"
)

func seedRestaurants(t *testing.T, svc *RestaurantService) {
	t.Helper()
	rows := []models.Restaurant{
		{
			PlaceID: "p1", Name: "Kopi Corner", Address: "12 Main St",
			Lat: 1.3000, Lng: 103.8000,
			Items: []models.RestaurantItem{
				{FoodName: "Chicken Rice", Calories: 500, Protein: 30, Carbs: 60, Fat: 15},
				{FoodName: "Laksa", Calories: 650, Protein: 25, Carbs: 70, Fat: 28},
			},
		},
		{
			PlaceID: "p2", Name: "Green Bowl", Address: "3 Park Ave",
			Lat: 1.3005, Lng: 103.8005,
			Items: []models.RestaurantItem{
				{FoodName: "Quinoa Salad", Calories: 380, Protein: 14, Carbs: 45, Fat: 12},
			},
		},
		{
			// roughly 55 km north, outside any reasonable radius
			PlaceID: "p3", Name: "Far Away Diner", Address: "99 Distant Rd",
			Lat: 1.8000, Lng: 103.8000,
			Items: []models.RestaurantItem{
				{FoodName: "Burger", Calories: 800},
			},
		},
	}
	for i := range rows {
		if err := svc.db.Create(&rows[i]).Error; err != nil {
			t.Fatalf("seeding restaurant %s: %v", rows[i].Name, err)
		}
	}
}

func TestNearby_FiltersByRadius(t *testing.T) {
	svc := NewRestaurantService(testutil.NewTestDB(t))
	seedRestaurants(t, svc)

	got, err := svc.Nearby(1.3000, 103.8000, 2.0)
	if err != nil {
		t.Fatalf("Nearby: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d restaurants, want 2", len(got))
	}
	for _, r := range got {
		if r.Name == "Far Away Diner" {
			t.Error("distant restaurant leaked into results")
		}
		if len(r.Items) == 0 {
			t.Errorf("%s returned without its menu", r.Name)
		}
	}
}

func TestNearby_ZeroRadiusUsesDefault(t *testing.T) {
	svc := NewRestaurantService(testutil.NewTestDB(t))
	seedRestaurants(t, svc)

	got, err := svc.Nearby(1.3000, 103.8000, 0)
	if err != nil {
		t.Fatalf("Nearby: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d restaurants, want 2 within the default radius", len(got))
	}
}

func TestNearbyMenuItems_TagsDishesWithRestaurant(t *testing.T) {
	svc := NewRestaurantService(testutil.NewTestDB(t))
	seedRestaurants(t, svc)

	items, err := svc.NearbyMenuItems(1.3000, 103.8000, 2.0)
	if err != nil {
		t.Fatalf("NearbyMenuItems: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("got %d dishes, want 3", len(items))
	}
	for _, it := range items {
		if it.RestaurantName == "" || it.RestaurantAddress == "" {
			t.Errorf("dish %q missing restaurant tag: %+v", it.FoodName, it)
		}
	}
}

func TestGroupByRestaurant(t *testing.T) {
	items := []models.MenuItem{
		{FoodName: "Chicken Rice", RestaurantName: "Kopi Corner", RestaurantAddress: "12 Main St"},
		{FoodName: "Quinoa Salad", RestaurantName: "Green Bowl", RestaurantAddress: "3 Park Ave"},
		{FoodName: "Laksa", RestaurantName: "Kopi Corner", RestaurantAddress: "12 Main St"},
	}
	groups := GroupByRestaurant(items)
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if groups[0].Name != "Kopi Corner" || len(groups[0].Dishes) != 2 {
		t.Errorf("first group = %+v", groups[0])
	}
	if groups[1].Name != "Green Bowl" || len(groups[1].Dishes) != 1 {
		t.Errorf("second group = %+v", groups[1])
	}
	// later dish from an earlier restaurant joins that restaurant's group
	if groups[0].Dishes[1].FoodName != "Laksa" {
		t.Errorf("grouping lost first-seen order: %+v", groups[0].Dishes)
	}
}

func TestGroupByRestaurant_MissingMetadata(t *testing.T) {
	groups := GroupByRestaurant([]models.MenuItem{{FoodName: "Mystery Bowl"}})
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	if groups[0].Name != "Unknown" || groups[0].Address != "N/A" {
		t.Errorf("group = %+v", groups[0])
	}
}

func TestFavorites_StarListUnstar(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.CreateTestUser(t, db, "fav@example.com", 2000)
	svc := NewRestaurantService(db)
	seedRestaurants(t, svc)

	if _, err := svc.Favorite(user.ID, "p1"); err != nil {
		t.Fatalf("Favorite p1: %v", err)
	}
	// starring twice is a no-op, not a second row
	if _, err := svc.Favorite(user.ID, "p1"); err != nil {
		t.Fatalf("repeat Favorite p1: %v", err)
	}
	if _, err := svc.Favorite(user.ID, "p3"); err != nil {
		t.Fatalf("Favorite p3: %v", err)
	}

	var rows int64
	db.Model(&models.FavoriteRestaurant{}).Where("user_id = ?", user.ID).Count(&rows)
	if rows != 2 {
		t.Errorf("favorite rows = %d, want 2", rows)
	}

	favs, err := svc.Favorites(user.ID)
	if err != nil {
		t.Fatalf("Favorites: %v", err)
	}
	if len(favs) != 2 {
		t.Fatalf("got %d favorites, want 2", len(favs))
	}
	if favs[0].Name != "Far Away Diner" {
		t.Errorf("favorites not newest-first: %s", favs[0].Name)
	}
	if len(favs[1].Items) == 0 {
		t.Errorf("%s returned without its menu", favs[1].Name)
	}

	if err := svc.Unfavorite(user.ID, "p1"); err != nil {
		t.Fatalf("Unfavorite: %v", err)
	}
	favs, err = svc.Favorites(user.ID)
	if err != nil {
		t.Fatalf("Favorites: %v", err)
	}
	if len(favs) != 1 || favs[0].PlaceID != "p3" {
		t.Errorf("favorites after unstar = %+v", favs)
	}
}

func TestFavorite_UnknownPlace(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.CreateTestUser(t, db, "fav@example.com", 2000)
	svc := NewRestaurantService(db)

	if _, err := svc.Favorite(user.ID, "no-such-place"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("err = %v, want gorm.ErrRecordNotFound", err)
	}
	if err := svc.Unfavorite(user.ID, "no-such-place"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("err = %v, want gorm.ErrRecordNotFound", err)
	}
}

func TestFavorites_ScopedToUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.CreateTestUser(t, db, "fav@example.com", 2000)
	other := testutil.CreateTestUser(t, db, "other@example.com", 2000)
	svc := NewRestaurantService(db)
	seedRestaurants(t, svc)

	if _, err := svc.Favorite(other.ID, "p1"); err != nil {
		t.Fatalf("Favorite: %v", err)
	}
	favs, err := svc.Favorites(user.ID)
	if err != nil {
		t.Fatalf("Favorites: %v", err)
	}
	if len(favs) != 0 {
		t.Errorf("another user's stars leaked: %+v", favs)
	}
}
