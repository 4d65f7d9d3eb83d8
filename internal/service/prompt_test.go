package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildRecipePrompt(t *testing.T) {
	got := BuildRecipePrompt([]string{"Milk", "eggs", "flour"})
	want := `Create 2-3 simple recipes using these ingredients: Milk, eggs, flour. Return ONLY valid JSON with this structure: {"recipes":[{"title":"Recipe Name","description":"Brief description","cookTime":"X mins","servings":"X servings","ingredients":["item1","item2"],"instructions":["step1","step2"]}]}. No markdown, just JSON.`
	assert.Equal(t, want, got)
}
