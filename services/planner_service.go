package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/aadijha14/NutritionApp/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	// ErrPlanBusy: a full generation and a slot swap must never run
	// concurrently against the same day's plan; the loser gets this.
	ErrPlanBusy = errors.New("another plan operation is in flight")
	// ErrSlotBusy guards double-submission of a swap for one slot.
	ErrSlotBusy = errors.New("this slot is already being regenerated")
	// ErrEmptyPlan: the completion contained zero parseable records. This is
	// a retryable failure, never the same thing as "zero calories today".
	ErrEmptyPlan = errors.New("generation produced no usable meals")
	// ErrNoCaloriesRemaining: nothing left to budget, so nothing to plan.
	ErrNoCaloriesRemaining = errors.New("no calories remaining for today")
	// ErrPlanDiscarded: the plan was abandoned while a generation or swap
	// was in flight; the late result was thrown away.
	ErrPlanDiscarded = errors.New("plan changed while generating; result discarded")
)

// DateKey formats t as the per-day plan key.
func DateKey(t time.Time) string { return t.Format("2006-01-02") }

// defaultTimeframes seeds a fresh day when the timeframes table is empty.
var defaultTimeframes = []models.Timeframe{
	{SlotID: "breakfast", Name: "Breakfast", StartTime: "07:00", EndTime: "10:00", DefaultTime: "08:30", Position: 0},
	{SlotID: "lunch", Name: "Lunch", StartTime: "12:00", EndTime: "14:00", DefaultTime: "12:30", Position: 1},
	{SlotID: "snack", Name: "Snack", StartTime: "15:00", EndTime: "17:00", DefaultTime: "16:00", Position: 2},
	{SlotID: "dinner", Name: "Dinner", StartTime: "18:00", EndTime: "20:00", DefaultTime: "19:00", Position: 3},
}

// GenerateRequest carries the caller's inputs to a full-plan generation.
// Settings maps lower-case meal names to a location mode; meals not listed
// default to home.
type GenerateRequest struct {
	Feedback string            `json:"feedback"`
	Settings map[string]string `json:"settings"`
	Lat      float64           `json:"lat"`
	Lng      float64           `json:"lng"`
	RadiusKm float64           `json:"radiusKm"`
}

// PlanView is the snapshot controllers serialize back to the client.
type PlanView struct {
	DateKey     string            `json:"dateKey"`
	Slots       []models.MealSlot `json:"slots"`
	DailyTarget int               `json:"dailyCalorieTarget"`
	Consumed    int               `json:"todayCalories"`
	Remaining   int               `json:"remainingCalories"`
	Saved       bool              `json:"saved"`
}

// activePlan is the in-memory working copy of one user-day's SlotSet. Its
// mutex serializes all mutations; the token is rotated when the plan is
// abandoned so late generation results get discarded instead of applied.
type activePlan struct {
	mu         sync.Mutex
	set        *models.SlotSet
	prefs      []string
	token      string
	generating bool
	swapping   map[string]bool
}

// PlannerService owns the day-plan lifecycle: load-or-initialize, generate,
// per-slot edits, completion logging, and the explicit idempotent save.
type PlannerService struct {
	db          *gorm.DB
	chat        ChatClient
	restaurants *RestaurantService
	logs        *MealLogService
	hub         *RealtimeHub

	mu    sync.Mutex
	plans map[string]*activePlan
}

func NewPlannerService(db *gorm.DB, chat ChatClient, rs *RestaurantService, ls *MealLogService, hub *RealtimeHub) *PlannerService {
	return &PlannerService{
		db:          db,
		chat:        chat,
		restaurants: rs,
		logs:        ls,
		hub:         hub,
		plans:       make(map[string]*activePlan),
	}
}

func planKey(userID uint, dateKey string) string {
	return fmt.Sprintf("%d:%s", userID, dateKey)
}

// defaultSlots builds one empty home-mode slot per configured timeframe.
func (s *PlannerService) defaultSlots() []models.MealSlot {
	var frames []models.Timeframe
	if err := s.db.Order("position ASC").Find(&frames).Error; err != nil || len(frames) == 0 {
		frames = defaultTimeframes
	}
	slots := make([]models.MealSlot, 0, len(frames))
	for _, f := range frames {
		slots = append(slots, models.MealSlot{
			ID:           f.SlotID,
			Name:         f.Name,
			Time:         f.DefaultTime,
			LocationType: models.LocationHome,
			MenuItem:     nil,
			Alternatives: []models.MenuItem{},
			Notify:       false,
			Budget:       0,
		})
	}
	return slots
}

// consumedFor looks up the calories logged on dateKey's day. The meal log,
// not the cached working copy, is the source of truth for consumption.
func (s *PlannerService) consumedFor(userID uint, dateKey string) (int, error) {
	day, err := time.ParseInLocation("2006-01-02", dateKey, time.Local)
	if err != nil {
		return 0, fmt.Errorf("invalid date key %q: %w", dateKey, err)
	}
	return s.logs.ConsumedCalories(userID, day)
}

// evictPastLocked drops working copies for days before today so the cache
// holds at most today's plans. Tokens rotate on eviction so in-flight work
// against an evicted day discards its result. Caller holds s.mu.
func (s *PlannerService) evictPastLocked(today string) {
	for key, ap := range s.plans {
		_, dk, ok := strings.Cut(key, ":")
		if !ok || dk >= today {
			continue
		}
		ap.mu.Lock()
		ap.token = uuid.NewString()
		ap.mu.Unlock()
		delete(s.plans, key)
	}
}

// plan returns the cached working copy for (userID, dateKey), loading the
// persisted plan, or default-initializing one, on first access.
func (s *PlannerService) plan(userID uint, dateKey string) (*activePlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictPastLocked(DateKey(time.Now()))

	key := planKey(userID, dateKey)
	if ap, ok := s.plans[key]; ok {
		return ap, nil
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, fmt.Errorf("loading user %d: %w", userID, err)
	}

	consumed, err := s.consumedFor(userID, dateKey)
	if err != nil {
		return nil, err
	}

	var slots []models.MealSlot
	var row models.MealPlan
	err = s.db.Where("user_id = ? AND date_key = ?", userID, dateKey).First(&row).Error
	switch {
	case err == nil:
		slots = []models.MealSlot(row.Slots)
	case errors.Is(err, gorm.ErrRecordNotFound):
		slots = s.defaultSlots()
	default:
		return nil, err
	}

	ap := &activePlan{
		set:      models.NewSlotSet(dateKey, slots, user.DailyCalorieTarget, consumed),
		prefs:    user.PreferenceList(),
		token:    uuid.NewString(),
		swapping: make(map[string]bool),
	}
	s.plans[key] = ap
	return ap, nil
}

func (ap *activePlan) viewLocked() PlanView {
	slots := make([]models.MealSlot, len(ap.set.Slots))
	copy(slots, ap.set.Slots)
	return PlanView{
		DateKey:     ap.set.DateKey,
		Slots:       slots,
		DailyTarget: ap.set.DailyTarget,
		Consumed:    ap.set.Consumed,
		Remaining:   ap.set.Remaining(),
		Saved:       !ap.set.Dirty(),
	}
}

// Plan returns the current state of the day's plan. Consumed calories are
// re-read from the meal log on every call so logs made outside the plan
// (quick logs, other devices) show up immediately.
func (s *PlannerService) Plan(userID uint, dateKey string) (PlanView, error) {
	ap, err := s.plan(userID, dateKey)
	if err != nil {
		return PlanView{}, err
	}
	consumed, err := s.consumedFor(userID, dateKey)
	if err != nil {
		return PlanView{}, err
	}
	ap.mu.Lock()
	defer ap.mu.Unlock()
	ap.set.Consumed = consumed
	return ap.viewLocked(), nil
}

// mealRequests resolves the guaranteed meal list against the caller's
// per-meal location settings.
func mealRequests(settings map[string]string) []MealRequest {
	meals := make([]MealRequest, 0, len(GuaranteedMeals))
	for _, name := range GuaranteedMeals {
		loc := settings[strings.ToLower(name)]
		if loc != models.LocationRestaurant {
			loc = models.LocationHome
		}
		meals = append(meals, MealRequest{Name: name, LocationType: loc})
	}
	return meals
}

// Generate runs the full-plan cycle: nearby menus, prompt, completion,
// parse, replace-all. Nothing is persisted; the caller saves explicitly.
// The second return value is the number of meals requested, so callers can
// surface a shortfall when fewer records parsed than meals were asked for.
func (s *PlannerService) Generate(ctx context.Context, userID uint, dateKey string, req GenerateRequest) (PlanView, int, error) {
	ap, err := s.plan(userID, dateKey)
	if err != nil {
		return PlanView{}, 0, err
	}
	consumed, err := s.consumedFor(userID, dateKey)
	if err != nil {
		return PlanView{}, 0, err
	}

	ap.mu.Lock()
	if ap.generating || len(ap.swapping) > 0 {
		ap.mu.Unlock()
		return PlanView{}, 0, ErrPlanBusy
	}
	ap.set.Consumed = consumed
	remaining := ap.set.Remaining()
	if remaining <= 0 {
		ap.mu.Unlock()
		return PlanView{}, 0, ErrNoCaloriesRemaining
	}
	ap.generating = true
	token := ap.token
	prefs := ap.prefs
	ap.mu.Unlock()

	defer func() {
		ap.mu.Lock()
		ap.generating = false
		ap.mu.Unlock()
	}()

	meals := mealRequests(req.Settings)

	items, err := s.restaurants.NearbyMenuItems(req.Lat, req.Lng, req.RadiusKm)
	if err != nil {
		return PlanView{}, 0, err
	}
	groups := GroupByRestaurant(items)

	system, user := BuildPlanPrompts(remaining, prefs, req.Feedback, meals, groups)
	raw, err := s.chat.ChatComplete(ctx, system, user)
	if err != nil {
		return PlanView{}, 0, err
	}

	slots := BuildSlots(raw, time.Now())
	if len(slots) == 0 {
		return PlanView{}, 0, ErrEmptyPlan
	}
	// Advisory per-slot budgets; they bias dish choice, nothing reconciles
	// them against the remaining total.
	budget := remaining / len(slots)
	for i := range slots {
		slots[i].Budget = budget
	}

	ap.mu.Lock()
	defer ap.mu.Unlock()
	if ap.token != token {
		return PlanView{}, 0, ErrPlanDiscarded
	}
	ap.set.ReplaceAll(slots)
	return ap.viewLocked(), len(meals), nil
}

// Swap regenerates a single slot's dish in isolation. On any failure the
// slot keeps its previous dish; a stale slot id is a no-op reported through
// the bool. Swaps for different slots may run concurrently.
func (s *PlannerService) Swap(ctx context.Context, userID uint, dateKey, slotID, reason string, req GenerateRequest) (PlanView, bool, error) {
	ap, err := s.plan(userID, dateKey)
	if err != nil {
		return PlanView{}, false, err
	}
	consumed, err := s.consumedFor(userID, dateKey)
	if err != nil {
		return PlanView{}, false, err
	}

	ap.mu.Lock()
	if ap.generating {
		ap.mu.Unlock()
		return PlanView{}, false, ErrPlanBusy
	}
	if ap.swapping[slotID] {
		ap.mu.Unlock()
		return PlanView{}, false, ErrSlotBusy
	}
	ap.set.Consumed = consumed
	slot, ok := ap.set.Slot(slotID)
	if !ok {
		view := ap.viewLocked()
		ap.mu.Unlock()
		return view, false, nil
	}
	ap.swapping[slotID] = true
	token := ap.token
	remaining := ap.set.Remaining()
	prefs := ap.prefs
	ap.mu.Unlock()

	defer func() {
		ap.mu.Lock()
		delete(ap.swapping, slotID)
		ap.mu.Unlock()
	}()

	var groups []RestaurantGroup
	if slot.LocationType == models.LocationRestaurant {
		items, err := s.restaurants.NearbyMenuItems(req.Lat, req.Lng, req.RadiusKm)
		if err != nil {
			return PlanView{}, false, err
		}
		groups = GroupByRestaurant(items)
	}

	system, user := BuildSwapPrompts(slot, reason, remaining, prefs, groups)
	raw, err := s.chat.ChatComplete(ctx, system, user)
	if err != nil {
		return PlanView{}, false, err
	}

	dish, ok := BuildSwapSlot(raw)
	if !ok {
		return PlanView{}, false, ErrEmptyPlan
	}

	ap.mu.Lock()
	defer ap.mu.Unlock()
	if ap.token != token {
		return PlanView{}, false, ErrPlanDiscarded
	}
	ap.set.ApplySwap(slotID, models.MenuItem{
		FoodName:          dish.Dish,
		Calories:          dish.Calories,
		Protein:           dish.Protein,
		Carbs:             dish.Carbs,
		Fat:               dish.Fat,
		RestaurantName:    dish.RestaurantName,
		RestaurantAddress: dish.RestaurantAddress,
	}, dish.Reason)
	return ap.viewLocked(), true, nil
}

// UpdateTime sets a slot's free-form time string. Unknown ids are no-ops.
func (s *PlannerService) UpdateTime(userID uint, dateKey, slotID, newTime string) (PlanView, error) {
	ap, err := s.plan(userID, dateKey)
	if err != nil {
		return PlanView{}, err
	}
	ap.mu.Lock()
	defer ap.mu.Unlock()
	ap.set.UpdateTime(slotID, newTime)
	return ap.viewLocked(), nil
}

// ToggleLocation flips a slot between home and restaurant mode, clearing its
// dish. Unknown ids are no-ops.
func (s *PlannerService) ToggleLocation(userID uint, dateKey, slotID string) (PlanView, error) {
	ap, err := s.plan(userID, dateKey)
	if err != nil {
		return PlanView{}, err
	}
	ap.mu.Lock()
	defer ap.mu.Unlock()
	ap.set.ToggleLocation(slotID)
	return ap.viewLocked(), nil
}

// Complete logs a slot's dish to the meal log, then clears the slot and
// persists the plan so every device sees the dish gone. The bool is false
// when the slot is unknown or holds no dish.
func (s *PlannerService) Complete(userID uint, dateKey, slotID string) (PlanView, bool, error) {
	ap, err := s.plan(userID, dateKey)
	if err != nil {
		return PlanView{}, false, err
	}
	ap.mu.Lock()
	defer ap.mu.Unlock()

	slot, ok := ap.set.Slot(slotID)
	if !ok || slot.MenuItem == nil {
		return ap.viewLocked(), false, nil
	}

	locationName := "Home"
	if slot.LocationType == models.LocationRestaurant {
		locationName = slot.MenuItem.RestaurantName
	}
	entry := &models.MealLog{
		UserID:       userID,
		FoodName:     slot.MenuItem.FoodName,
		Calories:     slot.MenuItem.Calories,
		Protein:      slot.MenuItem.Protein,
		Carbs:        slot.MenuItem.Carbs,
		Fat:          slot.MenuItem.Fat,
		Date:         time.Now(),
		MealType:     slot.Name,
		LocationName: locationName,
		LocationType: slot.LocationType,
	}
	// Record first; only a successful log clears the slot.
	if err := s.logs.Append(entry); err != nil {
		return PlanView{}, false, err
	}

	ap.set.Complete(slotID)
	ap.set.Consumed += entry.Calories
	if err := s.saveLocked(userID, ap); err != nil {
		return PlanView{}, false, err
	}

	if s.hub != nil {
		s.hub.Broadcast(userID, EventLogCreated, entry)
	}
	return ap.viewLocked(), true, nil
}

// Save persists the slot list verbatim under the day's key, overwriting any
// previous document. Saving twice without an intervening mutation stores the
// same representation both times.
func (s *PlannerService) Save(userID uint, dateKey string) (PlanView, error) {
	ap, err := s.plan(userID, dateKey)
	if err != nil {
		return PlanView{}, err
	}
	ap.mu.Lock()
	defer ap.mu.Unlock()
	if err := s.saveLocked(userID, ap); err != nil {
		return PlanView{}, err
	}
	if s.hub != nil {
		s.hub.Broadcast(userID, EventPlanSaved, ap.set.DateKey)
	}
	return ap.viewLocked(), nil
}

func (s *PlannerService) saveLocked(userID uint, ap *activePlan) error {
	row := models.MealPlan{UserID: userID, DateKey: ap.set.DateKey}
	err := s.db.
		Where("user_id = ? AND date_key = ?", userID, ap.set.DateKey).
		Assign(models.MealPlan{Slots: datatypes.JSONSlice[models.MealSlot](ap.set.Slots)}).
		FirstOrCreate(&row).Error
	if err != nil {
		return fmt.Errorf("saving plan %s: %w", ap.set.DateKey, err)
	}
	ap.set.MarkSaved()
	return nil
}

// Remaining refreshes consumed calories from the meal log and returns the
// clamped remainder of the daily target.
func (s *PlannerService) Remaining(userID uint, dateKey string) (int, error) {
	ap, err := s.plan(userID, dateKey)
	if err != nil {
		return 0, err
	}
	consumed, err := s.consumedFor(userID, dateKey)
	if err != nil {
		return 0, err
	}
	ap.mu.Lock()
	defer ap.mu.Unlock()
	ap.set.Consumed = consumed
	return ap.set.Remaining(), nil
}

// Abandon drops the working copy for a day. Any generation or swap still in
// flight fails its token check instead of mutating a plan the user left.
func (s *PlannerService) Abandon(userID uint, dateKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := planKey(userID, dateKey)
	if ap, ok := s.plans[key]; ok {
		ap.mu.Lock()
		ap.token = uuid.NewString()
		ap.mu.Unlock()
		delete(s.plans, key)
	}
}
