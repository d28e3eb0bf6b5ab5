package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	orchestration "github.com/parleylabs/parley/core"
	"github.com/parleylabs/parley/core/llms"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const completionsUrl = "https://api.openai.com/v1/chat/completions"

// Client is an OpenAI chat-completions client implementing the
// orchestrator's TextCompletion contract.
type Client struct {
	apiKey     string
	url        string
	httpClient *http.Client
	options    llms.PromptOptions
}

// NewClient builds a completion client. An empty apiKey falls back to the
// OPENAI_API_KEY environment variable.
func NewClient(apiKey string, opts ...llms.PromptOption) (*Client, error) {
	if apiKey == "" {
		key, ok := os.LookupEnv("OPENAI_API_KEY")
		if !ok {
			return nil, fmt.Errorf("openai api key not found")
		}
		apiKey = key
	}

	options := llms.PromptOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	return &Client{
		apiKey:     apiKey,
		url:        completionsUrl,
		httpClient: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		options:    options,
	}, nil
}

// Complete sends the prompt and returns the generated continuation trimmed
// of surrounding whitespace.
func (c *Client) Complete(ctx context.Context, prompt string, model string) (string, error) {
	ctx, span := tracer.Start(ctx, "complete prompt")
	defer span.End()
	span.SetAttributes(attribute.String("request.model", model))

	reqBody := requestBody{
		Model:       model,
		Messages:    toMessages(c.options.Instructions, prompt),
		Stream:      false,
		Temperature: c.options.Temperature,
		MaxTokens:   c.options.MaxTokens,
	}

	content, err := c.send(ctx, reqBody)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		err := orchestration.NewCompletionError(orchestration.CompletionEmptyResponse, nil)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	return content, nil
}

func (c *Client) send(ctx context.Context, reqBody requestBody) (string, error) {
	requestBodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", orchestration.NewCompletionError(orchestration.CompletionServiceUnreachable,
			fmt.Errorf("error marshalling JSON: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url,
		bytes.NewBuffer(requestBodyBytes))
	if err != nil {
		return "", orchestration.NewCompletionError(orchestration.CompletionServiceUnreachable,
			fmt.Errorf("error creating HTTP request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", orchestration.NewCompletionError(orchestration.CompletionServiceUnreachable,
			fmt.Errorf("error sending request: %w", err))
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return "", orchestration.NewCompletionError(orchestration.CompletionUnauthorized,
			fmt.Errorf("non-OK HTTP status: %s", resp.Status))
	case http.StatusTooManyRequests:
		return "", orchestration.NewCompletionError(orchestration.CompletionRateLimited,
			fmt.Errorf("non-OK HTTP status: %s", resp.Status))
	default:
		return "", orchestration.NewCompletionError(orchestration.CompletionServiceUnreachable,
			fmt.Errorf("non-OK HTTP status: %s", resp.Status))
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", orchestration.NewCompletionError(orchestration.CompletionServiceUnreachable,
			fmt.Errorf("error reading response body: %w", err))
	}

	var parsed responseBody
	if err := json.Unmarshal(bodyBytes, &parsed); err != nil {
		return "", orchestration.NewCompletionError(orchestration.CompletionServiceUnreachable,
			fmt.Errorf("error unmarshalling response body: %w", err))
	}

	if len(parsed.Choices) == 0 {
		return "", orchestration.NewCompletionError(orchestration.CompletionEmptyResponse, nil)
	}
	if refusal := parsed.Choices[0].Message.Refusal; refusal != "" {
		logger.WarnContext(ctx, "completion refused", "refusal", refusal)
	}

	return parsed.Choices[0].Message.Content, nil
}
