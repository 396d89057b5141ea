package services

import (
	"context"
	"sort"
	"time"

	"github.com/aadijha14/NutritionApp/models"

	"gorm.io/gorm"
)

type AnalyticsService struct{ db *gorm.DB }

func NewAnalyticsService(db *gorm.DB) *AnalyticsService { return &AnalyticsService{db: db} }

type DishCount struct {
	FoodName string `json:"food_name"`
	Count    int64  `json:"count"`
	Calories int64  `json:"total_calories"`
}

// DiningSummary aggregates the meal log over a date range for the dining
// analytics screen: daily macro averages, home vs restaurant split, and the
// most-logged dishes.
type DiningSummary struct {
	Range struct {
		From string `json:"from"`
		To   string `json:"to"`
	} `json:"range"`

	Averages   map[string]float64 `json:"daily_averages"` // calories, protein, carbs, fat
	Totals     DayTotals          `json:"totals"`
	ByLocation map[string]int64   `json:"logs_by_location"`
	TopDishes  []DishCount        `json:"top_dishes"`

	Metadata struct {
		DaysCounted int   `json:"days_counted"`
		LogsCounted int64 `json:"logs_counted"`
	} `json:"metadata"`
}

func (s *AnalyticsService) Summary(ctx context.Context, userID uint, from, to time.Time) (*DiningSummary, error) {
	start := dayStartLocal(from)
	end := dayStartLocal(to).Add(24 * time.Hour)

	var logs []models.MealLog
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Order("date ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}

	out := &DiningSummary{
		Averages:   map[string]float64{"calories": 0, "protein": 0, "carbs": 0, "fat": 0},
		ByLocation: map[string]int64{},
	}
	out.Range.From = start.Format("2006-01-02")
	out.Range.To = to.Format("2006-01-02")

	days := map[string]struct{}{}
	dishes := map[string]*DishCount{}
	for _, l := range logs {
		out.Totals.Calories += l.Calories
		out.Totals.Protein += l.Protein
		out.Totals.Carbs += l.Carbs
		out.Totals.Fat += l.Fat
		out.ByLocation[l.LocationType]++
		days[l.Date.In(time.Local).Format("2006-01-02")] = struct{}{}

		d := dishes[l.FoodName]
		if d == nil {
			d = &DishCount{FoodName: l.FoodName}
			dishes[l.FoodName] = d
		}
		d.Count++
		d.Calories += int64(l.Calories)
	}

	out.Metadata.DaysCounted = len(days)
	out.Metadata.LogsCounted = int64(len(logs))

	den := len(days)
	if den == 0 {
		den = 1 // avoid div by zero; averages stay zero
	}
	out.Averages["calories"] = float64(out.Totals.Calories) / float64(den)
	out.Averages["protein"] = float64(out.Totals.Protein) / float64(den)
	out.Averages["carbs"] = float64(out.Totals.Carbs) / float64(den)
	out.Averages["fat"] = float64(out.Totals.Fat) / float64(den)

	// top five dishes by log count
	for _, d := range dishes {
		out.TopDishes = append(out.TopDishes, *d)
	}
	sort.Slice(out.TopDishes, func(i, j int) bool {
		a, b := out.TopDishes[i], out.TopDishes[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.FoodName < b.FoodName
	})
	if len(out.TopDishes) > 5 {
		out.TopDishes = out.TopDishes[:5]
	}
	return out, nil
}
