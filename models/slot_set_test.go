package models

import (
	"reflect"
	"testing"
)

func plannedSlot(id string) MealSlot {
	return MealSlot{
		ID:           id,
		Name:         "Lunch",
		Time:         "12:30",
		LocationType: LocationHome,
		MenuItem: &MenuItem{
			FoodName: "Chicken Rice", Calories: 500, Protein: 30, Carbs: 60, Fat: 15,
		},
		Alternatives: []MenuItem{},
		Reason:       "quick",
		Notify:       true,
		Budget:       600,
	}
}

func testSet() *SlotSet {
	return NewSlotSet("2026-08-30", []MealSlot{plannedSlot("lunch")}, 2000, 0)
}

func TestToggleLocation_ClearsDishAndFlips(t *testing.T) {
	set := testSet()
	set.ToggleLocation("lunch")

	slot, ok := set.Slot("lunch")
	if !ok {
		t.Fatal("slot disappeared")
	}
	if slot.LocationType != LocationRestaurant {
		t.Errorf("locationType = %q, want restaurant", slot.LocationType)
	}
	if slot.MenuItem != nil {
		t.Error("menu item should be cleared by a location change")
	}
	if slot.Reason != "" {
		t.Errorf("reason = %q, want empty", slot.Reason)
	}
	// untouched fields
	if slot.ID != "lunch" || slot.Name != "Lunch" || slot.Time != "12:30" || !slot.Notify {
		t.Errorf("toggle touched unrelated fields: %+v", slot)
	}
	if !set.Dirty() {
		t.Error("toggle should mark the set unsaved")
	}

	set.ToggleLocation("lunch")
	slot, _ = set.Slot("lunch")
	if slot.LocationType != LocationHome {
		t.Errorf("second toggle: locationType = %q, want home", slot.LocationType)
	}
}

func TestUpdateTime_OnlyTouchesTime(t *testing.T) {
	set := testSet()
	set.UpdateTime("lunch", "13:15")

	slot, _ := set.Slot("lunch")
	if slot.Time != "13:15" {
		t.Errorf("time = %q, want 13:15", slot.Time)
	}
	if slot.MenuItem == nil || slot.Reason != "quick" {
		t.Error("time edit touched the dish")
	}
	if !set.Dirty() {
		t.Error("time edit should mark the set unsaved")
	}
}

func TestStaleIDOperationsAreNoOps(t *testing.T) {
	set := testSet()
	before := make([]MealSlot, len(set.Slots))
	copy(before, set.Slots)

	set.UpdateTime("gone", "09:00")
	set.ToggleLocation("gone")
	set.ApplySwap("gone", MenuItem{FoodName: "Salad"}, "lighter")
	if _, ok := set.Complete("gone"); ok {
		t.Error("Complete on a stale id reported success")
	}

	if !reflect.DeepEqual(before, set.Slots) {
		t.Errorf("stale-id operations mutated the set:\nbefore %+v\nafter  %+v", before, set.Slots)
	}
	if set.Dirty() {
		t.Error("stale-id operations should not mark the set unsaved")
	}
}

func TestApplySwap_ReplacesDishInPlace(t *testing.T) {
	set := testSet()
	set.ApplySwap("lunch", MenuItem{FoodName: "Salad", Calories: 320}, "lighter option")

	slot, _ := set.Slot("lunch")
	if slot.MenuItem == nil || slot.MenuItem.FoodName != "Salad" {
		t.Fatalf("menu item = %+v, want Salad", slot.MenuItem)
	}
	if slot.Reason != "lighter option" {
		t.Errorf("reason = %q", slot.Reason)
	}
	if slot.ID != "lunch" || slot.Name != "Lunch" || slot.Time != "12:30" ||
		slot.LocationType != LocationHome || !slot.Notify {
		t.Errorf("swap touched identity fields: %+v", slot)
	}
}

func TestComplete_ReturnsSnapshotAndClears(t *testing.T) {
	set := testSet()
	snapshot, ok := set.Complete("lunch")
	if !ok {
		t.Fatal("expected completion to succeed")
	}
	if snapshot.MenuItem == nil || snapshot.MenuItem.FoodName != "Chicken Rice" {
		t.Errorf("snapshot = %+v", snapshot.MenuItem)
	}

	slot, _ := set.Slot("lunch")
	if slot.MenuItem != nil {
		t.Error("completed slot should have a nil menu item")
	}

	if _, ok := set.Complete("lunch"); ok {
		t.Error("completing an already-empty slot reported success")
	}
}

func TestRemaining_ClampsAtZero(t *testing.T) {
	cases := []struct {
		target, consumed, want int
	}{
		{2000, 0, 2000},
		{2000, 1200, 800},
		{2000, 2000, 0},
		{2000, 2500, 0},
		{0, 0, 0},
	}
	for _, tc := range cases {
		set := NewSlotSet("2026-08-30", nil, tc.target, tc.consumed)
		if got := set.Remaining(); got != tc.want {
			t.Errorf("Remaining(target=%d, consumed=%d) = %d, want %d",
				tc.target, tc.consumed, got, tc.want)
		}
	}
}

func TestReplaceAll_InstallsVerbatimAndMarksDirty(t *testing.T) {
	set := testSet()
	set.MarkSaved()

	next := []MealSlot{plannedSlot("a"), plannedSlot("b")}
	set.ReplaceAll(next)

	if len(set.Slots) != 2 || set.Slots[0].ID != "a" || set.Slots[1].ID != "b" {
		t.Errorf("slots = %+v", set.Slots)
	}
	if !set.Dirty() {
		t.Error("replace-all should mark the set unsaved")
	}

	set.MarkSaved()
	if set.Dirty() {
		t.Error("MarkSaved should clear the dirty flag")
	}
}
