package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/aadijha14/NutritionApp/models"
)

// MealRequest names one meal occasion to plan and where it will be eaten.
type MealRequest struct {
	Name         string
	LocationType string // models.LocationHome or models.LocationRestaurant
}

// GuaranteedMeals is the fixed list of meal occasions a full plan asks for.
var GuaranteedMeals = []string{"Breakfast", "Lunch", "Snack", "Dinner", "Snack"}

const planSystemPrompt = `You are a meal recommendation assistant.
Only return answers in the exact format specified below.
Never guess the calories for restaurant items; use the data provided.
Include macros (protein, carbs, fat) for each dish.
Ignore meal timing constraints.`

const swapSystemPrompt = `You are a meal swapping assistant.
Only return the swapped meal in the exact format provided.
Include macros (protein, carbs, fat).
Use only the provided restaurant data if applicable.
Ignore meal timing constraints.`

// recordContract is the block the model is told to produce for every meal.
// ParseRecord depends on these exact labels.
const recordContract = recordDelimiter + `
` + labelMeal + ` <meal name>
` + labelDish + ` <dish name>
` + labelCalories + ` <kcal>
` + labelProtein + ` <g>
` + labelCarbs + ` <g>
` + labelFat + ` <g>
` + labelRestaurant + ` <restaurant name or 'home'>
` + labelAddress + ` <restaurant address or 'N/A'>
` + labelWhy + ` <short reason>
` + recordDelimiter

const homeDishesNote = "User will cook at home. You can invent a dish with realistic macros."
const noRestaurantDataNote = "No restaurant data found."

// dishBlock renders the grouped restaurant menus the way the prompt contract
// expects: a "Restaurant: name, address" line per place followed by indented
// dish lines with calories and macros.
func dishBlock(groups []RestaurantGroup) string {
	if len(groups) == 0 {
		return noRestaurantDataNote
	}
	var b strings.Builder
	for _, g := range groups {
		fmt.Fprintf(&b, "\nRestaurant: %s, %s\n", g.Name, g.Address)
		for _, dish := range g.Dishes {
			fmt.Fprintf(&b, "  - %s (%d cal, P:%dg C:%dg F:%dg)\n",
				dish.FoodName, dish.Calories, dish.Protein, dish.Carbs, dish.Fat)
		}
	}
	return strings.TrimSpace(b.String())
}

func dietLabels(prefs []string) string {
	if len(prefs) == 0 {
		return "None"
	}
	return strings.Join(prefs, ", ")
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "None"
	}
	return s
}

// BuildPlanPrompts assembles the system and user messages for a full-plan
// generation request. Restaurant-mode meals get the grouped nearby dish list;
// home-mode meals get an invitation to invent a realistic dish.
func BuildPlanPrompts(remaining int, prefs []string, feedback string, meals []MealRequest, groups []RestaurantGroup) (system, user string) {
	var b strings.Builder
	b.WriteString("Generate a meal plan for today with these constraints:\n\n")
	fmt.Fprintf(&b, "**Calories Remaining**: %d\n", remaining)
	fmt.Fprintf(&b, "**Dietary Preferences**: %s\n", dietLabels(prefs))
	fmt.Fprintf(&b, "**User Feedback**: %s\n", orNone(feedback))

	b.WriteString("\nWe have these guaranteed meals:\n")
	for i, m := range meals {
		fmt.Fprintf(&b, "%d) %s\n", i+1, m.Name)
	}

	b.WriteString("\nFor each meal, use exactly this format (no time required):\n\n")
	b.WriteString(recordContract)
	b.WriteString("\n\nAvailable dishes per meal:\n")

	for _, m := range meals {
		available := homeDishesNote
		if m.LocationType == models.LocationRestaurant {
			available = dishBlock(groups)
		}
		fmt.Fprintf(&b, "\n%s (%s):\n%s\n", strings.ToUpper(m.Name), m.LocationType, available)
	}

	return planSystemPrompt, b.String()
}

// BuildSwapPrompts assembles the system and user messages for regenerating a
// single slot's dish, scoped to that slot's meal name and location mode.
func BuildSwapPrompts(slot models.MealSlot, swapReason string, remaining int, prefs []string, groups []RestaurantGroup) (system, user string) {
	available := homeDishesNote
	if slot.LocationType == models.LocationRestaurant {
		available = dishBlock(groups)
	}

	var b strings.Builder
	b.WriteString("I want to swap one meal.\n\n")
	fmt.Fprintf(&b, "**Meal to swap**: %s\n", slot.Name)
	fmt.Fprintf(&b, "**Reason**: %s\n", orNone(swapReason))
	fmt.Fprintf(&b, "**Calories Remaining**: %d\n", remaining)
	fmt.Fprintf(&b, "**Dietary Preferences**: %s\n", dietLabels(prefs))
	fmt.Fprintf(&b, "**Meal Setting**: %s\n", slot.LocationType)
	fmt.Fprintf(&b, "\nHere are available dishes for this meal:\n%s\n", available)
	b.WriteString("\nOnly return this exact format:\n")
	b.WriteString(recordContract)

	return swapSystemPrompt, b.String()
}

// slotFromDish builds a populated MealSlot from one parsed record. The id
// combines the generation timestamp with the record's position, which keeps
// ids unique within a call and stable for the session.
func slotFromDish(dish ParsedDish, ts int64, idx int) models.MealSlot {
	locationType := models.LocationRestaurant
	if dish.Home() {
		locationType = models.LocationHome
	}
	return models.MealSlot{
		ID:           fmt.Sprintf("%d-%d", ts, idx),
		Name:         dish.Meal,
		Time:         "",
		LocationType: locationType,
		MenuItem: &models.MenuItem{
			FoodName:          dish.Dish,
			Calories:          dish.Calories,
			Protein:           dish.Protein,
			Carbs:             dish.Carbs,
			Fat:               dish.Fat,
			RestaurantName:    dish.RestaurantName,
			RestaurantAddress: dish.RestaurantAddress,
		},
		Alternatives: []models.MenuItem{},
		Reason:       dish.Reason,
		Notify:       false,
	}
}

// BuildSlots converts a raw multi-record completion into ordered, populated
// meal slots. Records that fail to parse are dropped silently, so the result
// may hold fewer slots than meals were requested; slots appear in the same
// order as their source records. An empty result means generation produced
// nothing usable and the caller must not proceed as if planning succeeded.
func BuildSlots(raw string, now time.Time) []models.MealSlot {
	ts := now.UnixMilli()
	var slots []models.MealSlot
	for idx, record := range SplitRecords(raw) {
		dish, ok := ParseRecord(record)
		if !ok {
			continue
		}
		slots = append(slots, slotFromDish(dish, ts, idx))
	}
	return slots
}

// BuildSwapSlot parses the first well-formed record of a single-meal
// completion. ok is false when nothing in the reply parsed.
func BuildSwapSlot(raw string) (ParsedDish, bool) {
	for _, record := range SplitRecords(raw) {
		if dish, ok := ParseRecord(record); ok {
			return dish, true
		}
	}
	return ParsedDish{}, false
}
