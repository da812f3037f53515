// Package recipe defines the generated-recipe domain type shared by the
// generation service and the meal plan.
package recipe

import "maps"

// GeneratedRecipe is a recipe produced by the generation backend.
//
// ImageURL starts empty and is patched in place at most once by a
// best-effort image lookup after generation. SourceDate is set once the
// recipe is placed on a plan.
type GeneratedRecipe struct {
	Name         string            `json:"name"`
	Description  string            `json:"description,omitempty"`
	TimeToCook   string            `json:"timeToCook,omitempty"`
	Difficulty   string            `json:"difficulty,omitempty"`
	Ingredients  []string          `json:"ingredients,omitempty"`
	Instructions []string          `json:"instructions,omitempty"`
	Nutrition    map[string]string `json:"nutrition,omitempty"`
	ImageURL     string            `json:"imageUrl,omitempty"`
	Category     string            `json:"category,omitempty"`
	SourceDate   string            `json:"sourceDate,omitempty"`
}

// Clone returns a deep copy of the recipe.
func (r GeneratedRecipe) Clone() GeneratedRecipe {
	out := r
	if r.Ingredients != nil {
		out.Ingredients = append([]string(nil), r.Ingredients...)
	}
	if r.Instructions != nil {
		out.Instructions = append([]string(nil), r.Instructions...)
	}
	if r.Nutrition != nil {
		out.Nutrition = maps.Clone(r.Nutrition)
	}
	return out
}
