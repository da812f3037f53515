// Package cache provides the on-device copy of the meal plan as a single
// JSON document.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Zhengdong-uga/meal4u-sub000/internal/logger"
	"github.com/Zhengdong-uga/meal4u-sub000/internal/plan"
)

const planFileName = "mealplan.json"

// FileCache stores the plan under a data directory.
type FileCache struct {
	path string
}

// NewFileCache creates a FileCache and ensures the data directory exists.
func NewFileCache(dataDir string) (*FileCache, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory %s: %w", dataDir, err)
	}
	return &FileCache{path: filepath.Join(dataDir, planFileName)}, nil
}

// ReadPlan loads the cached plan. An absent or unparseable file yields
// (nil, nil): corruption means "no data", it must not fail a load.
func (c *FileCache) ReadPlan() (plan.MealPlan, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read plan cache: %w", err)
	}

	var p plan.MealPlan
	if err := json.Unmarshal(data, &p); err != nil {
		logger.Warn("discarding unparseable plan cache", "path", c.path, "error", err)
		return nil, nil
	}
	return p, nil
}

// WritePlan serializes the full plan to the cache file.
func (c *FileCache) WritePlan(p plan.MealPlan) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write plan cache: %w", err)
	}
	return nil
}
