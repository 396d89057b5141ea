package models

// Location modes for a MealSlot.
const (
	LocationHome       = "home"
	LocationRestaurant = "restaurant"
)

// MenuItem is one dish candidate, sourced from a restaurant menu or
// self-prepared at home. Missing macro data is stored as 0, never rejected.
type MenuItem struct {
	FoodName          string `json:"foodName"`
	Calories          int    `json:"calories"`
	Protein           int    `json:"protein"`
	Carbs             int    `json:"carbs"`
	Fat               int    `json:"fat"`
	RestaurantName    string `json:"restaurantName"`    // "" for home dishes
	RestaurantAddress string `json:"restaurantAddress"` // "N/A" for home dishes
}

// MealSlot is one meal occasion within a day's plan.
//
// A nil MenuItem means the slot is either not yet planned or already logged;
// the stored document does not distinguish the two states.
type MealSlot struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"` // "Breakfast", "Snack", ...
	Time         string     `json:"time"` // free-form, "" when unset
	LocationType string     `json:"locationType"`
	MenuItem     *MenuItem  `json:"menuItem"`
	Alternatives []MenuItem `json:"alternatives"`
	Reason       string     `json:"reason"`
	Notify       bool       `json:"notify"`
	Budget       int        `json:"budget"`
}
