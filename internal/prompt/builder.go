// Package prompt renders user preferences into the generation prompt and
// defines the structured-output contract the model must satisfy.
package prompt

import (
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"

	"github.com/Zhengdong-uga/meal4u-sub000/internal/prefs"
)

// BuildPrompt renders preferences into a single natural-language prompt.
//
// The output is a deterministic concatenation of nine clauses in fixed
// order: goal, diet type, restrictions, dislikes, likes, pantry
// ingredients, other-ingredients policy, special request, time budget.
// Every clause has exactly two renderings, a populated form and a fixed
// fallback sentence, so the result is a complete paragraph for any
// combination of present and absent fields.
//
// Precondition: prefs must be normalized (no nil collections, no
// untrimmed values). BuildPrompt performs no defaulting of its own.
func BuildPrompt(p prefs.UserPreferences) string {
	clauses := []string{
		clause(p.Goal != "",
			fmt.Sprintf("My goal is to %s.", p.Goal),
			"I have no specific dietary goal in mind."),
		clause(p.DietType != "",
			fmt.Sprintf("I follow a %s diet.", p.DietType),
			"I do not follow any particular diet."),
		clause(len(p.Restrictions) > 0,
			fmt.Sprintf("I am allergic or intolerant to the following: %s.", joinList(p.Restrictions)),
			"I have no allergies or intolerances."),
		clause(len(p.Dislikes) > 0,
			fmt.Sprintf("Please avoid these ingredients, which I dislike: %s.", joinList(p.Dislikes)),
			"There are no ingredients I dislike."),
		clause(len(p.Likes) > 0,
			fmt.Sprintf("I especially enjoy: %s.", joinList(p.Likes)),
			"I have no particular favorite ingredients."),
		clause(len(p.PantryIngredients) > 0,
			fmt.Sprintf("I currently have these ingredients at home: %s.", joinList(p.PantryIngredients)),
			"I have no ingredients at home that need using up."),
		clause(p.ConsiderOther,
			"Feel free to use ingredients beyond the ones I listed.",
			"Please stick to the ingredients I listed as much as possible."),
		clause(p.SpecialRequest != "",
			fmt.Sprintf("One special request: %s.", p.SpecialRequest),
			"I have no special requests."),
		clause(p.TimeBudget != "",
			fmt.Sprintf("I have %s available for cooking.", p.TimeBudget),
			"I have no time constraint for cooking."),
	}

	return strings.Join(clauses, " ")
}

func clause(populated bool, filled, fallback string) string {
	if populated {
		return filled
	}
	return fallback
}

func joinList(items []string) string {
	return strings.Join(items, ", ")
}

// ResponseSchema returns the fixed JSON shape the generation backend is
// asked to produce. The contract is shared by every backend; Gemini
// enforces it natively while the OpenAI-compatible backends receive it as
// an instruction.
func ResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name":        {Type: genai.TypeString},
			"description": {Type: genai.TypeString},
			"time":        {Type: genai.TypeString},
			"difficulty":  {Type: genai.TypeString},
			"ingredients": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
			"stepsOfPreparation": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
			"nutrition": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"calories":      {Type: genai.TypeString},
					"protein":       {Type: genai.TypeString},
					"fat":           {Type: genai.TypeString},
					"carbohydrates": {Type: genai.TypeString},
				},
				Required: []string{"calories", "protein", "fat", "carbohydrates"},
			},
		},
		Required: []string{"name"},
	}
}
