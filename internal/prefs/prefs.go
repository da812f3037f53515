package prefs

import "strings"

// MealType is the broad category of thing the user wants generated.
type MealType string

const (
	MealTypeMeals   MealType = "Meals"
	MealTypeDrinks  MealType = "Drinks"
	MealTypeDessert MealType = "Dessert"
)

// UserPreferences captures the dietary profile and the per-request choices
// a recipe is generated from.
type UserPreferences struct {
	Goal              string   `json:"goal"`
	DietType          string   `json:"dietType"`
	Restrictions      []string `json:"restrictions"`
	Dislikes          []string `json:"dislikes"`
	Likes             []string `json:"likes"`
	PantryIngredients []string `json:"pantryIngredients"`
	ConsiderOther     bool     `json:"considerOtherIngredients"`
	SpecialRequest    string   `json:"specialRequest"`
	TimeBudget        string   `json:"timeBudget"`

	// Request context.
	MealType    MealType `json:"mealType"`
	PrepareTime string   `json:"prepareTime"`
	DishType    string   `json:"dishType"`
}

// Normalize replaces nil collections with empty ones, trims whitespace and
// drops blank entries, and defaults MealType. Prompt rendering requires
// normalized input, so callers run this before handing preferences on.
func (p *UserPreferences) Normalize() {
	p.Goal = strings.TrimSpace(p.Goal)
	p.DietType = strings.TrimSpace(p.DietType)
	p.SpecialRequest = strings.TrimSpace(p.SpecialRequest)
	p.TimeBudget = strings.TrimSpace(p.TimeBudget)
	p.PrepareTime = strings.TrimSpace(p.PrepareTime)
	p.DishType = strings.TrimSpace(p.DishType)

	p.Restrictions = cleanList(p.Restrictions)
	p.Dislikes = cleanList(p.Dislikes)
	p.Likes = cleanList(p.Likes)
	p.PantryIngredients = cleanList(p.PantryIngredients)

	if p.MealType == "" {
		p.MealType = MealTypeMeals
	}
}

func cleanList(items []string) []string {
	cleaned := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			cleaned = append(cleaned, item)
		}
	}
	return cleaned
}
