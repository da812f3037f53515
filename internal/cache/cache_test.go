package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Zhengdong-uga/meal4u-sub000/internal/plan"
	"github.com/Zhengdong-uga/meal4u-sub000/internal/recipe"
)

func TestFileCache(t *testing.T) {
	tempDir := t.TempDir()

	c, err := NewFileCache(tempDir)
	if err != nil {
		t.Fatalf("Failed to create FileCache: %v", err)
	}

	t.Run("ReadAbsent", func(t *testing.T) {
		p, err := c.ReadPlan()
		if err != nil {
			t.Fatalf("Expected no error for absent cache, got %v", err)
		}
		if p != nil {
			t.Errorf("Expected nil plan for absent cache, got %v", p)
		}
	})

	t.Run("WriteThenRead", func(t *testing.T) {
		day := plan.NewDayPlan()
		day.Dinner = append(day.Dinner, plan.PlacedRecipe{
			ID:              "r1",
			GeneratedRecipe: recipe.GeneratedRecipe{Name: "Tacos", Ingredients: []string{"tortillas"}},
			Time:            "7:00 pm",
		})
		want := plan.MealPlan{"2025-03-10": day}

		if err := c.WritePlan(want); err != nil {
			t.Fatalf("Failed to write plan: %v", err)
		}

		got, err := c.ReadPlan()
		if err != nil {
			t.Fatalf("Failed to read plan: %v", err)
		}
		if got == nil {
			t.Fatal("Expected a plan, got nil")
		}
		dinner := got["2025-03-10"].Dinner
		if len(dinner) != 1 || dinner[0].Name != "Tacos" || dinner[0].Time != "7:00 pm" {
			t.Errorf("Unexpected plan after round trip: %+v", dinner)
		}
	})

	t.Run("CorruptFileTreatedAsEmpty", func(t *testing.T) {
		path := filepath.Join(tempDir, "mealplan.json")
		if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
			t.Fatalf("Failed to corrupt cache file: %v", err)
		}

		p, err := c.ReadPlan()
		if err != nil {
			t.Fatalf("Expected no error for corrupt cache, got %v", err)
		}
		if p != nil {
			t.Errorf("Expected nil plan for corrupt cache, got %v", p)
		}
	})
}
