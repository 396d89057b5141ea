package services

import (
	"strings"
)

// The labelled record format the chat model is instructed to emit. The
// prompt builders and the parser share these literals: they are two halves
// of one wire format and must only change together.
const (
	recordDelimiter = "---"

	labelMeal       = "**Meal**:"
	labelDish       = "**Dish**:"
	labelCalories   = "**Calories**:"
	labelProtein    = "**Protein**:"
	labelCarbs      = "**Carbs**:"
	labelFat        = "**Fat**:"
	labelRestaurant = "**Restaurant**:"
	labelAddress    = "**Address**:"
	labelWhy        = "**Why this dish**:"
)

// HomeSentinel is the restaurant-field value that means the dish is cooked
// at home rather than bought.
const HomeSentinel = "home"

// ParsedDish is one structured record extracted from a completion.
type ParsedDish struct {
	Meal              string
	Dish              string
	Calories          int
	Protein           int
	Carbs             int
	Fat               int
	RestaurantName    string // "" when the dish is cooked at home
	RestaurantAddress string // literal value, "N/A" for home dishes
	Reason            string
}

// Home reports whether the record referred to a home-cooked dish.
func (d ParsedDish) Home() bool { return d.RestaurantName == "" }

// SplitRecords cuts a raw completion into candidate records on the "---"
// delimiter, dropping pieces that are empty after trimming.
func SplitRecords(raw string) []string {
	var records []string
	for _, part := range strings.Split(raw, recordDelimiter) {
		if strings.TrimSpace(part) == "" {
			continue
		}
		records = append(records, part)
	}
	return records
}

// fieldValue finds the first line of record starting with label and returns
// its trimmed value. Labels are matched case-sensitively; a present label
// with an empty value counts as absent.
func fieldValue(record, label string) (string, bool) {
	for _, line := range strings.Split(record, "\n") {
		rest, ok := strings.CutPrefix(strings.TrimSpace(line), label)
		if !ok {
			continue
		}
		v := strings.TrimSpace(rest)
		if v == "" {
			return "", false
		}
		return v, true
	}
	return "", false
}

// leadingInt parses the integer prefix of s ("500" or "500 kcal" both give
// 500). ok is false when s does not start with a digit.
func leadingInt(s string) (int, bool) {
	n, digits := 0, 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		digits++
	}
	return n, digits > 0
}

// intField parses a labelled integer field; ok is false when the field is
// missing or not numeric.
func intField(record, label string) (int, bool) {
	v, ok := fieldValue(record, label)
	if !ok {
		return 0, false
	}
	return leadingInt(v)
}

// ParseRecord converts one delimited record of the completion into a
// ParsedDish.
//
// The record is all-or-nothing: when any of the mandatory fields (Meal,
// Dish, Calories, Restaurant, Address, Why this dish) is missing, or the
// calorie value is not numeric, the whole record is rejected rather than
// surfacing a dish with an unknown name or calorie count. Protein, carbs and
// fat are optional and default to 0.
func ParseRecord(record string) (ParsedDish, bool) {
	meal, okMeal := fieldValue(record, labelMeal)
	dish, okDish := fieldValue(record, labelDish)
	calories, okCal := intField(record, labelCalories)
	restaurant, okRest := fieldValue(record, labelRestaurant)
	address, okAddr := fieldValue(record, labelAddress)
	reason, okWhy := fieldValue(record, labelWhy)

	if !okMeal || !okDish || !okCal || !okRest || !okAddr || !okWhy {
		return ParsedDish{}, false
	}

	protein, _ := intField(record, labelProtein)
	carbs, _ := intField(record, labelCarbs)
	fat, _ := intField(record, labelFat)

	// The home sentinel means "no restaurant"; normalize it away.
	if strings.EqualFold(restaurant, HomeSentinel) {
		restaurant = ""
	}

	return ParsedDish{
		Meal:              meal,
		Dish:              dish,
		Calories:          calories,
		Protein:           protein,
		Carbs:             carbs,
		Fat:               fat,
		RestaurantName:    restaurant,
		RestaurantAddress: address,
		Reason:            reason,
	}, true
}
