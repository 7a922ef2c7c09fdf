package completion

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/mpapenbr/greenhell-go/log"
)

var tracer = otel.Tracer("greenhell.completion")

const (
	DefaultEndpoint = "https://api.together.xyz/v1/chat/completions"
	DefaultModel    = "meta-llama/Meta-Llama-3.1-405B-Instruct-Turbo"
)

var contentPath = jp.MustParseString("$.choices[0].message.content")

// Completer sends a single prompt and returns the text of the completion
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// APIError is returned if the completion endpoint responds with a non 2xx status
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("completion api: status %d: %s", e.StatusCode, e.Body)
}

// Retryable reports whether another attempt may succeed
func (e *APIError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// Client talks to an OpenAI compatible chat completions endpoint
type Client struct {
	client   *resty.Client
	endpoint string
	model    string
	l        *log.Logger
}

type ClientOption func(c *Client)

func WithEndpoint(url string) ClientOption {
	return func(c *Client) {
		if url != "" {
			c.endpoint = url
		}
	}
}

func WithModel(model string) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

func WithClientLogger(l *log.Logger) ClientOption {
	return func(c *Client) {
		c.l = l
	}
}

func NewClient(apiKey string, opts ...ClientOption) *Client {
	client := resty.New()
	client.SetAuthToken(apiKey)
	client.SetHeader("content-type", "application/json")
	client.SetHeader("accept", "application/json")

	ret := &Client{
		client:   client,
		endpoint: DefaultEndpoint,
		model:    DefaultModel,
		l:        log.Default().Named("completion"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, span := tracer.Start(ctx, "complete")
	defer span.End()
	span.SetAttributes(attribute.String("model", c.model))

	body := oj.JSON(map[string]any{
		"model": c.model,
		"messages": []any{
			map[string]any{"role": "user", "content": prompt},
		},
	})
	c.l.Debug("sending completion request",
		log.String("endpoint", c.endpoint),
		log.Int("promptLength", len(prompt)))

	res, err := c.client.R().
		SetContext(ctx).
		SetBody(body).
		Post(c.endpoint)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return "", fmt.Errorf("completion request: %w", err)
	}
	if !res.IsSuccess() {
		span.SetStatus(codes.Error, "unexpected status")
		return "", &APIError{
			StatusCode: res.StatusCode(),
			Body:       strings.TrimSpace(res.String()),
		}
	}

	data, err := oj.ParseString(res.String())
	if err != nil {
		return "", fmt.Errorf("completion response: %w", err)
	}
	found := contentPath.Get(data)
	if len(found) == 0 {
		return "", fmt.Errorf("completion response: no content")
	}
	content, ok := found[0].(string)
	if !ok {
		return "", fmt.Errorf("completion response: content is %T", found[0])
	}
	return content, nil
}
