package plan

import (
	"encoding/json"
	"testing"

	"github.com/Zhengdong-uga/meal4u-sub000/internal/recipe"
)

func TestValidDateKey(t *testing.T) {
	valid := []string{"2025-01-01", "2024-02-29", "1999-12-31"}
	for _, k := range valid {
		if !ValidDateKey(k) {
			t.Errorf("Expected %q to be a valid date key", k)
		}
	}

	invalid := []string{"", "2025-1-1", "2025/01/01", "2025-13-01", "2025-02-30", "25-01-01", "2025-01-01T00:00:00Z"}
	for _, k := range invalid {
		if ValidDateKey(k) {
			t.Errorf("Expected %q to be rejected", k)
		}
	}
}

func TestDefaultTimes(t *testing.T) {
	expected := map[Slot]string{
		SlotBreakfast: "8:00 am",
		SlotLunch:     "1:00 pm",
		SlotSnacks:    "4:00 pm",
		SlotDinner:    "7:00 pm",
	}
	for slot, want := range expected {
		if got := DefaultTime(slot); got != want {
			t.Errorf("Expected default time for %s to be %q, got %q", slot, want, got)
		}
	}
}

func TestParseHour(t *testing.T) {
	cases := []struct {
		in   string
		hour int
		ok   bool
	}{
		{"7:00 pm", 19, true},
		{"8:00 am", 8, true},
		{"12:30 PM", 12, true},
		{"15:04", 15, true},
		{"23:00", 23, true},
		{"lunchtime", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		hour, ok := parseHour(c.in)
		if ok != c.ok || hour != c.hour {
			t.Errorf("parseHour(%q) = (%d, %v), want (%d, %v)", c.in, hour, ok, c.hour, c.ok)
		}
	}
}

func TestComputeMarkers(t *testing.T) {
	t.Run("EmptyPlan", func(t *testing.T) {
		markers := ComputeMarkers(MealPlan{})
		if len(markers) != 0 {
			t.Errorf("Expected no markers for empty plan, got %v", markers)
		}
	})

	t.Run("SingleMeal", func(t *testing.T) {
		day := NewDayPlan()
		day.Breakfast = append(day.Breakfast, PlacedRecipe{
			ID:              "r1",
			GeneratedRecipe: recipe.GeneratedRecipe{Name: "Porridge"},
			Time:            "8:00 am",
		})
		markers := ComputeMarkers(MealPlan{"2025-01-01": day})

		if len(markers) != 1 {
			t.Fatalf("Expected 1 marker, got %d", len(markers))
		}
		if !markers["2025-01-01"].HasMeals {
			t.Error("Expected 2025-01-01 to have meals")
		}
	})

	t.Run("EmptyDayEquivalentToAbsent", func(t *testing.T) {
		markers := ComputeMarkers(MealPlan{"2025-01-02": NewDayPlan()})
		if _, ok := markers["2025-01-02"]; ok {
			t.Error("Expected no marker for a present-but-empty day")
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		day := NewDayPlan()
		day.Dinner = append(day.Dinner, PlacedRecipe{GeneratedRecipe: recipe.GeneratedRecipe{Name: "Stew"}})
		p := MealPlan{"2025-01-03": day}

		first := ComputeMarkers(p)
		second := ComputeMarkers(p)
		if len(first) != len(second) || first["2025-01-03"] != second["2025-01-03"] {
			t.Errorf("Expected identical markers on recompute, got %v and %v", first, second)
		}
	})
}

func TestDayPlanSerialization(t *testing.T) {
	day := NewDayPlan()
	day.Dinner = append(day.Dinner, PlacedRecipe{
		ID:              "abc",
		GeneratedRecipe: recipe.GeneratedRecipe{Name: "Tacos"},
		Time:            "7:00 pm",
	})

	data, err := json.Marshal(MealPlan{"2025-03-10": day})
	if err != nil {
		t.Fatalf("Failed to marshal plan: %v", err)
	}

	var decoded MealPlan
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal plan: %v", err)
	}

	got := decoded["2025-03-10"]
	if got == nil {
		t.Fatal("Expected day plan after round trip")
	}
	if len(got.Dinner) != 1 || got.Dinner[0].Name != "Tacos" || got.Dinner[0].Time != "7:00 pm" {
		t.Errorf("Unexpected dinner slot after round trip: %+v", got.Dinner)
	}
	if got.Breakfast == nil || len(got.Breakfast) != 0 {
		t.Errorf("Expected empty breakfast slot to survive round trip, got %v", got.Breakfast)
	}
}

func TestCloneIsDeep(t *testing.T) {
	day := NewDayPlan()
	day.Lunch = append(day.Lunch, PlacedRecipe{
		GeneratedRecipe: recipe.GeneratedRecipe{Name: "Soup", Ingredients: []string{"water"}},
	})
	p := MealPlan{"2025-05-05": day}

	cloned := p.Clone()
	cloned["2025-05-05"].Lunch[0].Name = "Mutated"
	cloned["2025-05-05"].Lunch[0].Ingredients[0] = "mutated"

	if p["2025-05-05"].Lunch[0].Name != "Soup" {
		t.Error("Expected clone mutation not to affect the original name")
	}
	if p["2025-05-05"].Lunch[0].Ingredients[0] != "water" {
		t.Error("Expected clone mutation not to affect the original ingredients")
	}
}
