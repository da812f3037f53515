// Package plan holds the date-indexed meal plan, its derived calendar
// markers, and the store that reconciles local and remote copies.
package plan

import (
	"time"

	"github.com/Zhengdong-uga/meal4u-sub000/internal/recipe"
)

// Slot is one of the four fixed meal categories within a day.
type Slot string

const (
	SlotBreakfast Slot = "breakfast"
	SlotLunch     Slot = "lunch"
	SlotDinner    Slot = "dinner"
	SlotSnacks    Slot = "snacks"
)

// Slots lists the slots in display order.
var Slots = []Slot{SlotBreakfast, SlotLunch, SlotDinner, SlotSnacks}

// Default display times per slot, used when a placement carries no
// explicit time.
var defaultTimes = map[Slot]string{
	SlotBreakfast: "8:00 am",
	SlotLunch:     "1:00 pm",
	SlotSnacks:    "4:00 pm",
	SlotDinner:    "7:00 pm",
}

// ValidSlot reports whether s names one of the four fixed slots.
func ValidSlot(s Slot) bool {
	_, ok := defaultTimes[s]
	return ok
}

// DefaultTime returns the default display time for a slot.
func DefaultTime(s Slot) string {
	return defaultTimes[s]
}

const dateKeyLayout = "2006-01-02"

// ValidDateKey reports whether k is a canonical zero-padded YYYY-MM-DD
// calendar date.
func ValidDateKey(k string) bool {
	t, err := time.Parse(dateKeyLayout, k)
	return err == nil && t.Format(dateKeyLayout) == k
}

// DateKey formats a local calendar date as a canonical plan key.
func DateKey(t time.Time) string {
	return t.Format(dateKeyLayout)
}

// timeLayouts are the display-time forms accepted for placements and
// reschedules.
var timeLayouts = []string{"3:04 pm", "3:04 PM", "15:04"}

// parseHour extracts the hour from a display time string.
func parseHour(s string) (int, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Hour(), true
		}
	}
	return 0, false
}

// Display-range policy: meals are only shown between 6am and 9pm.
const (
	minDisplayHour = 6
	maxDisplayHour = 21
)

func displayableHour(h int) bool {
	return h >= minDisplayHour && h <= maxDisplayHour
}

// PlacedRecipe is a generated recipe placed into a slot, carrying its
// placement id and effective display time.
type PlacedRecipe struct {
	ID string `json:"id"`
	recipe.GeneratedRecipe
	Time string `json:"time"`
}

// DayPlan holds the four ordered slot sequences for a single date.
type DayPlan struct {
	Breakfast []PlacedRecipe `json:"breakfast"`
	Lunch     []PlacedRecipe `json:"lunch"`
	Dinner    []PlacedRecipe `json:"dinner"`
	Snacks    []PlacedRecipe `json:"snacks"`
}

// NewDayPlan returns a day with all four slots present and empty.
func NewDayPlan() *DayPlan {
	return &DayPlan{
		Breakfast: []PlacedRecipe{},
		Lunch:     []PlacedRecipe{},
		Dinner:    []PlacedRecipe{},
		Snacks:    []PlacedRecipe{},
	}
}

// Get returns the sequence for a slot.
func (d *DayPlan) Get(s Slot) []PlacedRecipe {
	switch s {
	case SlotBreakfast:
		return d.Breakfast
	case SlotLunch:
		return d.Lunch
	case SlotDinner:
		return d.Dinner
	case SlotSnacks:
		return d.Snacks
	}
	return nil
}

// Set replaces the sequence for a slot.
func (d *DayPlan) Set(s Slot, recipes []PlacedRecipe) {
	switch s {
	case SlotBreakfast:
		d.Breakfast = recipes
	case SlotLunch:
		d.Lunch = recipes
	case SlotDinner:
		d.Dinner = recipes
	case SlotSnacks:
		d.Snacks = recipes
	}
}

// Empty reports whether every slot is empty. Readers treat an empty day
// and an absent date key as equivalent.
func (d *DayPlan) Empty() bool {
	return len(d.Breakfast) == 0 && len(d.Lunch) == 0 && len(d.Dinner) == 0 && len(d.Snacks) == 0
}

// Clone returns a deep copy of the day.
func (d *DayPlan) Clone() *DayPlan {
	out := NewDayPlan()
	for _, s := range Slots {
		recipes := d.Get(s)
		cloned := make([]PlacedRecipe, 0, len(recipes))
		for _, r := range recipes {
			c := r
			c.GeneratedRecipe = r.GeneratedRecipe.Clone()
			cloned = append(cloned, c)
		}
		out.Set(s, cloned)
	}
	return out
}

// MealPlan maps canonical date keys to day plans.
type MealPlan map[string]*DayPlan

// Clone returns a deep copy of the plan. Nil days (valid JSON such as
// {"2025-03-10":null} decodes to one) are skipped; an absent date and an
// empty one are equivalent.
func (p MealPlan) Clone() MealPlan {
	out := make(MealPlan, len(p))
	for key, day := range p {
		if day == nil {
			continue
		}
		out[key] = day.Clone()
	}
	return out
}

// DayMarker is the derived calendar state for a single date.
type DayMarker struct {
	HasMeals bool `json:"hasMeals"`
}

// Markers maps date keys to their derived calendar markers.
type Markers map[string]DayMarker

// ComputeMarkers derives calendar markers from a plan. It is total over
// any plan, including nil, and is always recomputed in full after a
// mutation rather than patched incrementally, so markers cannot drift
// from the plan itself.
func ComputeMarkers(p MealPlan) Markers {
	markers := make(Markers, len(p))
	for key, day := range p {
		if day != nil && !day.Empty() {
			markers[key] = DayMarker{HasMeals: true}
		}
	}
	return markers
}
