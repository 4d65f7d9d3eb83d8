package service

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	MinIngredients      = 1
	MaxIngredients      = 50
	MaxIngredientLength = 100
)

var stripChars = strings.NewReplacer("<", "", ">", "", "{", "", "}", "")

// ExtractIngredients reads the ingredients field from a suggestion request
// body and returns the sanitized list. Validation failures are returned as
// bad-request AppErrors; a body that is not JSON yields ErrMalformedBody.
func ExtractIngredients(body []byte) ([]string, error) {
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, ErrMalformedBody
	}
	if payload == nil {
		return nil, ErrMalformedBody
	}

	obj, ok := payload.(map[string]any)
	if !ok {
		return nil, ErrInvalidIngredientsFormat
	}
	raw, ok := obj["ingredients"].([]any)
	if !ok {
		return nil, ErrInvalidIngredientsFormat
	}
	return SanitizeIngredients(raw)
}

// SanitizeIngredients checks the list size, then coerces, truncates and
// strips each entry. Blank entries are dropped.
func SanitizeIngredients(raw []any) ([]string, error) {
	if len(raw) < MinIngredients || len(raw) > MaxIngredients {
		return nil, ErrIngredientsCount
	}

	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s := SanitizeIngredient(coerceString(item))
		if strings.TrimSpace(s) == "" {
			continue
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil, ErrNoValidIngredients
	}
	return out, nil
}

// SanitizeIngredient truncates s to MaxIngredientLength characters and
// removes the characters <, >, { and }
func SanitizeIngredient(s string) string {
	return stripChars.Replace(truncateRunes(s, MaxIngredientLength))
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// coerceString renders a decoded JSON value the way a browser would print it
func coerceString(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return formatNumber(val)
	case []any:
		var b bytes.Buffer
		for i, elem := range val {
			if i > 0 {
				b.WriteByte(',')
			}
			if elem != nil {
				b.WriteString(coerceString(elem))
			}
		}
		return b.String()
	case map[string]any:
		return "[object Object]"
	default:
		return ""
	}
}

func formatNumber(f float64) string {
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		// 1e-07 -> 1e-7
		mantissa, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		exp = strings.TrimLeft(exp[1:], "0")
		return mantissa + "e" + sign + exp
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
