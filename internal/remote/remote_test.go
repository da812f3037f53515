package remote

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Zhengdong-uga/meal4u-sub000/internal/database"
	"github.com/Zhengdong-uga/meal4u-sub000/internal/plan"
	"github.com/Zhengdong-uga/meal4u-sub000/internal/recipe"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewSQLiteStore(db.SQL)
}

func testPlan(name string) plan.MealPlan {
	day := plan.NewDayPlan()
	day.Dinner = append(day.Dinner, plan.PlacedRecipe{
		ID:              "r1",
		GeneratedRecipe: recipe.GeneratedRecipe{Name: name},
		Time:            "7:00 pm",
	})
	return plan.MealPlan{"2025-03-10": day}
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	t.Run("FetchAbsentUser", func(t *testing.T) {
		p, err := store.FetchPlan(ctx, "nobody")
		if err != nil {
			t.Fatalf("Expected no error for absent user, got %v", err)
		}
		if p != nil {
			t.Errorf("Expected nil plan for absent user, got %v", p)
		}
	})

	t.Run("WriteThenFetch", func(t *testing.T) {
		want := testPlan("Tacos")
		if err := store.WritePlan(ctx, "u1", want); err != nil {
			t.Fatalf("Failed to write plan: %v", err)
		}

		got, err := store.FetchPlan(ctx, "u1")
		if err != nil {
			t.Fatalf("Failed to fetch plan: %v", err)
		}
		if got == nil || len(got["2025-03-10"].Dinner) != 1 {
			t.Fatalf("Unexpected plan after round trip: %v", got)
		}
		if got["2025-03-10"].Dinner[0].Name != "Tacos" {
			t.Errorf("Expected 'Tacos', got '%s'", got["2025-03-10"].Dinner[0].Name)
		}
	})

	t.Run("LastWriteWins", func(t *testing.T) {
		if err := store.WritePlan(ctx, "u2", testPlan("First")); err != nil {
			t.Fatalf("Failed to write first plan: %v", err)
		}
		if err := store.WritePlan(ctx, "u2", testPlan("Second")); err != nil {
			t.Fatalf("Failed to write second plan: %v", err)
		}

		got, err := store.FetchPlan(ctx, "u2")
		if err != nil {
			t.Fatalf("Failed to fetch plan: %v", err)
		}
		if got["2025-03-10"].Dinner[0].Name != "Second" {
			t.Errorf("Expected second write to win, got '%s'", got["2025-03-10"].Dinner[0].Name)
		}
	})

	t.Run("EmptyDocumentFetchesAsNil", func(t *testing.T) {
		if err := store.WritePlan(ctx, "u3", plan.MealPlan{}); err != nil {
			t.Fatalf("Failed to write empty plan: %v", err)
		}

		got, err := store.FetchPlan(ctx, "u3")
		if err != nil {
			t.Fatalf("Failed to fetch plan: %v", err)
		}
		if got != nil {
			t.Errorf("Expected nil for empty document, got %v", got)
		}
	})

	t.Run("UsersAreIsolated", func(t *testing.T) {
		if err := store.WritePlan(ctx, "u4", testPlan("Mine")); err != nil {
			t.Fatalf("Failed to write plan: %v", err)
		}

		got, err := store.FetchPlan(ctx, "u5")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if got != nil {
			t.Errorf("Expected no plan for another user, got %v", got)
		}
	})
}
