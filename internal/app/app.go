// Package app wires the meal-planning core together for the CLI surface.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/Zhengdong-uga/meal4u-sub000/internal/gen"
	"github.com/Zhengdong-uga/meal4u-sub000/internal/logger"
	"github.com/Zhengdong-uga/meal4u-sub000/internal/metrics"
	"github.com/Zhengdong-uga/meal4u-sub000/internal/plan"
	"github.com/Zhengdong-uga/meal4u-sub000/internal/prefs"
	"github.com/Zhengdong-uga/meal4u-sub000/internal/recipe"
)

// App holds the application's dependencies.
type App struct {
	store        *plan.Store
	genService   *gen.Service
	metricsStore *metrics.Store
	dataDir      string
}

// NewApp creates and initializes a new App instance. genService and
// metricsStore may be nil for commands that do not need them.
func NewApp(store *plan.Store, genService *gen.Service, metricsStore *metrics.Store, dataDir string) *App {
	return &App{
		store:        store,
		genService:   genService,
		metricsStore: metricsStore,
		dataDir:      dataDir,
	}
}

// GenerateRecipe generates a recipe from preferences, prints it as JSON,
// and optionally places it on the plan.
func (a *App) GenerateRecipe(ctx context.Context, p prefs.UserPreferences, dateKey string, slot plan.Slot) error {
	rec, err := a.genService.GenerateRecipe(ctx, p)
	if err != nil {
		return fmt.Errorf("failed to generate recipe: %w", err)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal recipe: %w", err)
	}
	fmt.Println(string(data))

	if dateKey != "" && slot != "" {
		a.store.Load(ctx)
		if _, ok := a.store.Place(ctx, dateKey, slot, *rec, ""); ok {
			fmt.Printf("\nPlaced %q on %s (%s).\n", rec.Name, dateKey, slot)
		} else {
			logger.Warn("recipe was not placed", "date", dateKey, "slot", slot)
		}
	}
	return nil
}

// ShowPlan prints the current plan, dates sorted ascending.
func (a *App) ShowPlan(ctx context.Context) error {
	p := a.store.Load(ctx)
	if len(p) == 0 {
		fmt.Println("The meal plan is empty.")
		return nil
	}

	dates := make([]string, 0, len(p))
	for key := range p {
		dates = append(dates, key)
	}
	sort.Strings(dates)

	for _, date := range dates {
		fmt.Printf("=== %s ===\n", date)
		day := p[date]
		for _, slot := range plan.Slots {
			recipes := day.Get(slot)
			if len(recipes) == 0 {
				continue
			}
			fmt.Printf("  %s:\n", slot)
			for i, r := range recipes {
				fmt.Printf("    [%d] %s (%s)  id=%s\n", i, r.Name, r.Time, r.ID)
			}
		}
	}
	return nil
}

// PlaceRecipe places a named recipe on the plan.
func (a *App) PlaceRecipe(ctx context.Context, dateKey string, slot plan.Slot, name, displayTime string) error {
	a.store.Load(ctx)
	if _, ok := a.store.Place(ctx, dateKey, slot, recipe.GeneratedRecipe{Name: name}, displayTime); !ok {
		fmt.Println("Nothing placed; check the date, slot, and time.")
		return nil
	}
	fmt.Printf("Placed %q on %s (%s).\n", name, dateKey, slot)
	return nil
}

// RemoveRecipe removes the recipe at index from a slot.
func (a *App) RemoveRecipe(ctx context.Context, dateKey string, slot plan.Slot, index int) error {
	a.store.Load(ctx)
	if _, ok := a.store.Remove(ctx, dateKey, slot, index); !ok {
		fmt.Println("Nothing removed; check the date, slot, and index.")
		return nil
	}
	fmt.Printf("Removed recipe %d from %s (%s).\n", index, dateKey, slot)
	return nil
}

// RescheduleRecipe changes the display time of a placed recipe.
func (a *App) RescheduleRecipe(ctx context.Context, dateKey string, slot plan.Slot, id, newTime string) error {
	a.store.Load(ctx)
	updated, ok := a.store.Reschedule(ctx, dateKey, slot, id, newTime)
	if !ok {
		fmt.Println("Nothing rescheduled; check the id and that the hour is between 6am and 9pm.")
		return nil
	}
	for _, r := range updated[dateKey].Get(slot) {
		if r.ID == id {
			fmt.Printf("Rescheduled %q to %s.\n", r.Name, newTime)
		}
	}
	return nil
}

// ShowMarkers prints the derived calendar markers.
func (a *App) ShowMarkers(ctx context.Context) error {
	a.store.Load(ctx)
	markers := a.store.Markers()
	if len(markers) == 0 {
		fmt.Println("No dates have meals planned.")
		return nil
	}

	dates := make([]string, 0, len(markers))
	for key := range markers {
		dates = append(dates, key)
	}
	sort.Strings(dates)
	for _, date := range dates {
		fmt.Printf("%s  hasMeals=%v\n", date, markers[date].HasMeals)
	}
	return nil
}

// ShowUsage prints the generation usage report for the last N days.
func (a *App) ShowUsage(ctx context.Context, days int) error {
	usage, err := a.metricsStore.GetDailyUsage(ctx, days)
	if err != nil {
		return fmt.Errorf("failed to load usage: %w", err)
	}

	if len(usage) == 0 {
		fmt.Println("No generations recorded.")
	}
	for _, u := range usage {
		fmt.Printf("%s  generations=%d  prompt=%d  completion=%d\n",
			u.Date, u.TotalGenerations, u.TotalPrompt, u.TotalCompletion)
	}
	fmt.Printf("\nData on disk: %s\n", metrics.DataDiskSize(a.dataDir))
	return nil
}
