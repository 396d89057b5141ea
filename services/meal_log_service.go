package services

import (
	"time"

	"github.com/aadijha14/NutritionApp/models"

	"gorm.io/gorm"
)

func dayStartLocal(t time.Time) time.Time {
	loc := time.Local
	tt := t.In(loc)
	return time.Date(tt.Year(), tt.Month(), tt.Day(), 0, 0, 0, 0, loc)
}

type MealLogService struct {
	db *gorm.DB
}

func NewMealLogService(db *gorm.DB) *MealLogService {
	return &MealLogService{db: db}
}

// Append records one eaten meal. The log is append-only; nothing in the
// planner ever rewrites it.
func (s *MealLogService) Append(log *models.MealLog) error {
	if log.Date.IsZero() {
		log.Date = time.Now()
	}
	return s.db.Create(log).Error
}

// ConsumedCalories sums the calories logged on the given day. This, not the
// plan, is the source of truth for "consumed".
func (s *MealLogService) ConsumedCalories(userID uint, day time.Time) (int, error) {
	start := dayStartLocal(day)
	end := start.Add(24 * time.Hour)

	var total int64
	err := s.db.Model(&models.MealLog{}).
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Select("COALESCE(SUM(calories), 0)").
		Scan(&total).Error
	return int(total), err
}

// DayTotals aggregates one day's logged macros for the dashboard.
type DayTotals struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
}

// ListByDay returns the day's logs newest-first together with their totals.
func (s *MealLogService) ListByDay(userID uint, day time.Time) ([]models.MealLog, DayTotals, error) {
	start := dayStartLocal(day)
	end := start.Add(24 * time.Hour)

	var logs []models.MealLog
	err := s.db.
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Order("date DESC").
		Find(&logs).Error
	if err != nil {
		return nil, DayTotals{}, err
	}

	var t DayTotals
	for _, l := range logs {
		t.Calories += l.Calories
		t.Protein += l.Protein
		t.Carbs += l.Carbs
		t.Fat += l.Fat
	}
	return logs, t, nil
}

// ListByDateRange returns logs between from and to (inclusive days),
// newest-first, for the meal-history screen.
func (s *MealLogService) ListByDateRange(userID uint, from, to time.Time) ([]models.MealLog, error) {
	start := dayStartLocal(from)
	end := dayStartLocal(to).Add(24 * time.Hour)

	var logs []models.MealLog
	err := s.db.
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Order("date DESC").
		Find(&logs).Error
	return logs, err
}

// HomeRecipes derives home-dish candidates from the user's history: every
// previously home-cooked or custom-logged dish, deduplicated by food name,
// most recent occurrence first.
func (s *MealLogService) HomeRecipes(userID uint) ([]models.MenuItem, error) {
	var logs []models.MealLog
	err := s.db.
		Where("user_id = ? AND location_type IN ?", userID, []string{models.LocationHome, "custom"}).
		Order("date DESC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var recipes []models.MenuItem
	for _, l := range logs {
		if _, ok := seen[l.FoodName]; ok {
			continue
		}
		seen[l.FoodName] = struct{}{}
		recipes = append(recipes, models.MenuItem{
			FoodName: l.FoodName,
			Calories: l.Calories,
			Protein:  l.Protein,
			Carbs:    l.Carbs,
			Fat:      l.Fat,
		})
	}
	return recipes, nil
}
