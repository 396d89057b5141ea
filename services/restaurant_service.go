package services

import (
	"github.com/aadijha14/NutritionApp/models"
	"github.com/aadijha14/NutritionApp/utils"

	"gorm.io/gorm"
)

// DefaultRadiusKm bounds the nearby-restaurant search when the caller does
// not supply a radius.
const DefaultRadiusKm = 2.0

type RestaurantService struct {
	db *gorm.DB
}

func NewRestaurantService(db *gorm.DB) *RestaurantService {
	return &RestaurantService{db: db}
}

// Nearby returns the restaurants within radiusKm of the given point,
// including their menus.
func (s *RestaurantService) Nearby(lat, lng, radiusKm float64) ([]models.Restaurant, error) {
	if radiusKm <= 0 {
		radiusKm = DefaultRadiusKm
	}
	var all []models.Restaurant
	if err := s.db.Preload("Items").Find(&all).Error; err != nil {
		return nil, err
	}
	var nearby []models.Restaurant
	for _, r := range all {
		if utils.HaversineKm(lat, lng, r.Lat, r.Lng) < radiusKm {
			nearby = append(nearby, r)
		}
	}
	return nearby, nil
}

// NearbyMenuItems flattens the menus of every restaurant within radiusKm
// into one dish-per-record list, each record tagged with its restaurant's
// name and address.
func (s *RestaurantService) NearbyMenuItems(lat, lng, radiusKm float64) ([]models.MenuItem, error) {
	restaurants, err := s.Nearby(lat, lng, radiusKm)
	if err != nil {
		return nil, err
	}
	var items []models.MenuItem
	for _, r := range restaurants {
		for _, it := range r.Items {
			items = append(items, models.MenuItem{
				FoodName:          it.FoodName,
				Calories:          it.Calories,
				Protein:           it.Protein,
				Carbs:             it.Carbs,
				Fat:               it.Fat,
				RestaurantName:    r.Name,
				RestaurantAddress: r.Address,
			})
		}
	}
	return items, nil
}

// Favorite stars the restaurant with the given place id for the user and
// returns it. Starring an already-starred restaurant changes nothing.
func (s *RestaurantService) Favorite(userID uint, placeID string) (*models.Restaurant, error) {
	var r models.Restaurant
	if err := s.db.Preload("Items").Where("place_id = ?", placeID).First(&r).Error; err != nil {
		return nil, err
	}
	fav := models.FavoriteRestaurant{UserID: userID, RestaurantID: r.ID}
	if err := s.db.Where("user_id = ? AND restaurant_id = ?", userID, r.ID).
		FirstOrCreate(&fav).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

// Unfavorite removes the star. Unknown place ids error; an un-starred
// restaurant is a no-op.
func (s *RestaurantService) Unfavorite(userID uint, placeID string) error {
	var r models.Restaurant
	if err := s.db.Where("place_id = ?", placeID).First(&r).Error; err != nil {
		return err
	}
	return s.db.Where("user_id = ? AND restaurant_id = ?", userID, r.ID).
		Delete(&models.FavoriteRestaurant{}).Error
}

// Favorites lists the user's starred restaurants, most recently starred
// first, with menus preloaded.
func (s *RestaurantService) Favorites(userID uint) ([]models.Restaurant, error) {
	var out []models.Restaurant
	err := s.db.
		Joins("JOIN favorite_restaurants ON favorite_restaurants.restaurant_id = restaurants.id").
		Where("favorite_restaurants.user_id = ?", userID).
		Order("favorite_restaurants.created_at DESC").
		Preload("Items").
		Find(&out).Error
	return out, err
}

// RestaurantGroup is the dishes of one restaurant, keyed by its name and
// address pair, in the order the dishes were first seen.
type RestaurantGroup struct {
	Name    string
	Address string
	Dishes  []models.MenuItem
}

// GroupByRestaurant groups flattened dish records by (name, address) so the
// prompt does not repeat the restaurant header per dish. Group order follows
// first appearance in the input.
func GroupByRestaurant(items []models.MenuItem) []RestaurantGroup {
	index := make(map[string]int)
	var groups []RestaurantGroup
	for _, item := range items {
		name := item.RestaurantName
		if name == "" {
			name = "Unknown"
		}
		addr := item.RestaurantAddress
		if addr == "" {
			addr = "N/A"
		}
		key := name + "__" + addr
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, RestaurantGroup{Name: name, Address: addr})
		}
		groups[i].Dishes = append(groups[i].Dishes, item)
	}
	return groups
}
