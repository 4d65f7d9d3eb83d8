package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pageza/freshkeep/backend/config"
	"github.com/pageza/freshkeep/backend/internal/metrics"
	"github.com/pageza/freshkeep/backend/internal/types"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const defaultGatewayTimeout = 30 * time.Second

// SuggestionService turns an ingredient list into recipe suggestions
type SuggestionService struct {
	gateway  ChatCompleter
	model    string
	timeout  time.Duration
	validate *validator.Validate
	log      *zap.Logger
}

func NewSuggestionService(gateway ChatCompleter, cfg config.GatewayConfig, log *zap.Logger) *SuggestionService {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultGatewayTimeout
	}
	return &SuggestionService{
		gateway:  gateway,
		model:    cfg.Model,
		timeout:  timeout,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
	}
}

// SuggestFromBody validates a raw request body and returns suggestions for
// it. Only validation failures are returned as errors.
func (s *SuggestionService) SuggestFromBody(ctx context.Context, body []byte) (types.RecipeResponse, error) {
	ingredients, err := ExtractIngredients(body)
	if errors.Is(err, ErrMalformedBody) {
		s.recordFailure(upstream(ReasonMalformedBody, err))
		return types.EmptyRecipeResponse(), nil
	}
	if err != nil {
		metrics.RecordSuggestion(metrics.OutcomeInvalid)
		return types.RecipeResponse{}, err
	}
	return s.Suggest(ctx, ingredients), nil
}

// SuggestFromNames runs stored item names through the same checks as a
// request body. Only the first MaxIngredients names are used.
func (s *SuggestionService) SuggestFromNames(ctx context.Context, names []string) (types.RecipeResponse, error) {
	if len(names) == 0 {
		metrics.RecordSuggestion(metrics.OutcomeInvalid)
		return types.RecipeResponse{}, ErrEmptyInventory
	}
	if len(names) > MaxIngredients {
		names = names[:MaxIngredients]
	}

	raw := make([]any, len(names))
	for i, name := range names {
		raw[i] = name
	}
	ingredients, err := SanitizeIngredients(raw)
	if err != nil {
		metrics.RecordSuggestion(metrics.OutcomeInvalid)
		return types.RecipeResponse{}, err
	}
	return s.Suggest(ctx, ingredients), nil
}

// Suggest asks the gateway for recipes. Any failure after validation is
// logged and counted, and the caller gets an empty result.
func (s *SuggestionService) Suggest(ctx context.Context, ingredients []string) types.RecipeResponse {
	resp, err := s.fetch(ctx, ingredients)
	if err != nil {
		s.recordFailure(err)
		return types.EmptyRecipeResponse()
	}

	metrics.RecordSuggestion(metrics.OutcomeOK)
	metrics.RecipesReturned.Observe(float64(len(resp.Recipes)))
	s.log.Info("Recipe suggestions generated",
		zap.Int("ingredients", len(ingredients)),
		zap.Int("recipes", len(resp.Recipes)),
	)
	return resp
}

func (s *SuggestionService) fetch(ctx context.Context, ingredients []string) (types.RecipeResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	request := openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: BuildRecipePrompt(ingredients)},
		},
	}

	start := time.Now()
	completion, err := s.gateway.CreateChatCompletion(ctx, request)
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.RecordGatewayCall(s.model, status, time.Since(start).Seconds())
	if err != nil {
		var upErr *UpstreamError
		if errors.As(err, &upErr) {
			return types.RecipeResponse{}, err
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return types.RecipeResponse{}, upstream(ReasonTimeout, err)
		}
		return types.RecipeResponse{}, upstream(ReasonTransport, err)
	}

	if completion == nil || len(completion.Choices) == 0 {
		return types.RecipeResponse{}, upstream(ReasonEmptyChoices, errors.New("gateway reply has no choices"))
	}
	return s.parseRecipes(completion.Choices[0].Message.Content)
}

// parseRecipes decodes model output and checks every recipe has the
// expected shape. A single bad recipe rejects the whole reply.
func (s *SuggestionService) parseRecipes(content string) (types.RecipeResponse, error) {
	raw := []byte(stripCodeFence(content))
	if !json.Valid(raw) {
		return types.RecipeResponse{}, upstream(ReasonContentNotJSON, errors.New("model content is not valid JSON"))
	}

	var out types.RecipeResponse
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&out); err != nil {
		return types.RecipeResponse{}, upstream(ReasonShapeMismatch, err)
	}
	if out.Recipes == nil {
		return types.RecipeResponse{}, upstream(ReasonShapeMismatch, errors.New("recipes field missing"))
	}
	for i := range out.Recipes {
		if err := s.validate.Struct(&out.Recipes[i]); err != nil {
			return types.RecipeResponse{}, upstream(ReasonShapeMismatch, fmt.Errorf("recipe %d: %w", i, err))
		}
	}
	return out, nil
}

// stripCodeFence removes a ``` or ```json wrapper some models add despite
// being asked not to
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func (s *SuggestionService) recordFailure(err error) {
	reason := ReasonTransport
	var upErr *UpstreamError
	if errors.As(err, &upErr) {
		reason = upErr.Reason
	}
	metrics.RecordSuggestion(metrics.OutcomeUpstreamFailure)
	metrics.RecordUpstreamFailure(reason)
	s.log.Warn("Recipe suggestion failed, returning empty result",
		zap.String("reason", reason),
		zap.Error(err),
	)
}
