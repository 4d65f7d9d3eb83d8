package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pageza/freshkeep/backend/config"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
	"resty.dev/v3"
)

const maxErrorBody = 512

// GatewayClient talks to an OpenAI-compatible chat-completion gateway
type GatewayClient struct {
	client  *resty.Client
	baseURL string
	apiKey  string
	log     *zap.Logger
}

// NewGatewayClient builds a client for cfg. The credential is held only by
// the client and is sent as a bearer token.
func NewGatewayClient(cfg config.GatewayConfig, log *zap.Logger) *GatewayClient {
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")

	client.AddResponseMiddleware(func(c *resty.Client, r *resty.Response) error {
		log.Debug("Gateway request",
			zap.Int("status", r.StatusCode()),
			zap.String("path", r.Request.URL),
			zap.Duration("latency", r.Duration()),
		)
		return nil
	})

	return &GatewayClient{
		client:  client,
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.URL), "/"),
		apiKey:  cfg.APIKey,
		log:     log,
	}
}

// CreateChatCompletion posts request to {base}/chat/completions. Non-2xx
// replies are returned as errors carrying the status and a prefix of the body.
func (c *GatewayClient) CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (*openai.ChatCompletionResponse, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return nil, upstream(ReasonMissingCredential, errors.New("gateway credential is not configured"))
	}

	var respBody openai.ChatCompletionResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetAuthToken(c.apiKey).
		SetBody(request).
		SetResult(&respBody).
		Post(c.baseURL + "/chat/completions")
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, upstream(ReasonTimeout, err)
		}
		return nil, upstream(ReasonTransport, err)
	}
	if !resp.IsSuccess() {
		body := strings.TrimSpace(resp.String())
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return nil, upstream(ReasonStatus, fmt.Errorf("gateway returned %d: %s", resp.StatusCode(), body))
	}
	return &respBody, nil
}

// Close releases idle connections
func (c *GatewayClient) Close() error {
	return c.client.Close()
}
