package models

// SlotSet is the ordered collection of one calendar day's meal slots plus the
// day-level calorie accounting. All mutating operations mark the set dirty so
// the caller knows the plan needs saving again. Operations that reference a
// slot id not present in the set are no-ops, never errors; clients may race
// ahead of a full regeneration that replaced every id.
type SlotSet struct {
	DateKey     string
	Slots       []MealSlot
	DailyTarget int
	Consumed    int

	dirty bool
}

func NewSlotSet(dateKey string, slots []MealSlot, dailyTarget, consumed int) *SlotSet {
	return &SlotSet{
		DateKey:     dateKey,
		Slots:       slots,
		DailyTarget: dailyTarget,
		Consumed:    consumed,
	}
}

func (s *SlotSet) find(slotID string) *MealSlot {
	for i := range s.Slots {
		if s.Slots[i].ID == slotID {
			return &s.Slots[i]
		}
	}
	return nil
}

// Slot returns a copy of the named slot.
func (s *SlotSet) Slot(slotID string) (MealSlot, bool) {
	slot := s.find(slotID)
	if slot == nil {
		return MealSlot{}, false
	}
	return *slot, true
}

// ReplaceAll discards the current slot list and installs newSlots verbatim.
// Used after a full-plan regeneration.
func (s *SlotSet) ReplaceAll(newSlots []MealSlot) {
	s.Slots = newSlots
	s.dirty = true
}

// UpdateTime sets the named slot's time string and nothing else.
func (s *SlotSet) UpdateTime(slotID, newTime string) {
	slot := s.find(slotID)
	if slot == nil {
		return
	}
	slot.Time = newTime
	s.dirty = true
}

// ToggleLocation flips home<->restaurant for the named slot. The previous
// dish is invalidated by the change (home and restaurant dishes come from
// disjoint candidate pools), so the menu item and reason are cleared.
func (s *SlotSet) ToggleLocation(slotID string) {
	slot := s.find(slotID)
	if slot == nil {
		return
	}
	if slot.LocationType == LocationHome {
		slot.LocationType = LocationRestaurant
	} else {
		slot.LocationType = LocationHome
	}
	slot.MenuItem = nil
	slot.Reason = ""
	s.dirty = true
}

// ApplySwap replaces only the named slot's menu item and reason, preserving
// id, name, time, location and notify. The caller runs the regeneration cycle
// and must not call this on failure, leaving the previous dish untouched.
func (s *SlotSet) ApplySwap(slotID string, item MenuItem, reason string) {
	slot := s.find(slotID)
	if slot == nil {
		return
	}
	slot.MenuItem = &item
	slot.Reason = reason
	s.dirty = true
}

// Complete clears the named slot's menu item, signalling "logged" to the
// rendering layer, and returns a snapshot of the slot as it was before
// clearing so the caller can record the dish in the meal log. The bool is
// false when the slot is unknown or has no dish to log.
func (s *SlotSet) Complete(slotID string) (MealSlot, bool) {
	slot := s.find(slotID)
	if slot == nil || slot.MenuItem == nil {
		return MealSlot{}, false
	}
	snapshot := *slot
	slot.MenuItem = nil
	s.dirty = true
	return snapshot, true
}

// Remaining returns the calories still available today, clamped at zero.
// Consumed comes from the meal log, not from the slots: the slots are a plan,
// not a ledger of what was eaten.
func (s *SlotSet) Remaining() int {
	r := s.DailyTarget - s.Consumed
	if r < 0 {
		return 0
	}
	return r
}

// Dirty reports whether the set has been mutated since it was last saved.
func (s *SlotSet) Dirty() bool { return s.dirty }

// MarkSaved is called after a successful persist.
func (s *SlotSet) MarkSaved() { s.dirty = false }
