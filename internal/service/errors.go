package service

import (
	"errors"
	"fmt"

	"github.com/pageza/freshkeep/backend/internal/apperrors"
)

// Validation failures reported to the caller verbatim
var (
	ErrInvalidIngredientsFormat = apperrors.BadRequest("Invalid ingredients format")
	ErrIngredientsCount         = apperrors.BadRequest(fmt.Sprintf("Ingredients must be between %d and %d items", MinIngredients, MaxIngredients))
	ErrNoValidIngredients       = apperrors.BadRequest("No valid ingredients provided")
	ErrEmptyInventory           = apperrors.BadRequest("Please add some items to your inventory first")
)

// ErrMalformedBody is returned when the request body is not JSON at all.
// It is handled like an upstream failure.
var ErrMalformedBody = errors.New("request body is not valid JSON")

// Upstream failure reasons, used as log fields and metric labels
const (
	ReasonMissingCredential = "missing_credential"
	ReasonTransport         = "transport"
	ReasonTimeout           = "timeout"
	ReasonStatus            = "status"
	ReasonEmptyChoices      = "empty_choices"
	ReasonContentNotJSON    = "content_not_json"
	ReasonShapeMismatch     = "shape_mismatch"
	ReasonMalformedBody     = "malformed_body"
)

// UpstreamError is any failure between sending the prompt and holding a
// validated set of recipes
type UpstreamError struct {
	Reason string
	Err    error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s: %v", e.Reason, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func upstream(reason string, err error) error {
	return &UpstreamError{Reason: reason, Err: err}
}
