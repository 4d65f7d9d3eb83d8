package types

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Recipe is a suggestion produced by the language model
type Recipe struct {
	Title        string     `json:"title" validate:"required"`
	Description  string     `json:"description"`
	CookTime     FlexString `json:"cookTime"`
	Servings     FlexString `json:"servings"`
	Ingredients  []string   `json:"ingredients" validate:"required,min=1,dive,required"`
	Instructions []string   `json:"instructions" validate:"required,min=1,dive,required"`
}

// RecipeResponse is the body returned by the suggestion endpoints
type RecipeResponse struct {
	Recipes []Recipe `json:"recipes"`
}

// EmptyRecipeResponse is the fail-open result. Recipes is never nil so it
// encodes as [].
func EmptyRecipeResponse() RecipeResponse {
	return RecipeResponse{Recipes: []Recipe{}}
}

// FlexString accepts either a JSON string or a JSON number. Models often
// answer "servings": 4 even when asked for text.
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = FlexString(str)
		return nil
	}

	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*s = FlexString(strconv.FormatFloat(num, 'f', -1, 64))
		return nil
	}

	if string(data) == "null" {
		*s = ""
		return nil
	}

	return fmt.Errorf("invalid text value %s", string(data))
}
