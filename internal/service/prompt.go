package service

import "strings"

const recipeShape = `{"recipes":[{"title":"Recipe Name","description":"Brief description","cookTime":"X mins","servings":"X servings","ingredients":["item1","item2"],"instructions":["step1","step2"]}]}`

// BuildRecipePrompt asks the model for two or three recipes built from the
// given ingredients, answered as bare JSON
func BuildRecipePrompt(ingredients []string) string {
	var b strings.Builder
	b.WriteString("Create 2-3 simple recipes using these ingredients: ")
	b.WriteString(strings.Join(ingredients, ", "))
	b.WriteString(". Return ONLY valid JSON with this structure: ")
	b.WriteString(recipeShape)
	b.WriteString(". No markdown, just JSON.")
	return b.String()
}
