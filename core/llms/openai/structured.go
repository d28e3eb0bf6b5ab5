package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/invopop/jsonschema"
	orchestration "github.com/parleylabs/parley/core"
	"github.com/parleylabs/parley/core/llms"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type chatResponseFormat struct {
	Type       string            `json:"type"`
	JSONSchema *jsonSchemaFormat `json:"json_schema,omitempty"`
}

type jsonSchemaFormat struct {
	Name   string            `json:"name"`
	Schema jsonschema.Schema `json:"schema"`
	Strict bool              `json:"strict"`
}

// CompleteJSONSchema prompts the model constrained to a JSON schema
// reflected from the output type, and decodes the response into it.
func CompleteJSONSchema[T any](
	ctx context.Context,
	client *Client,
	prompt string,
	model string,
	outputSchema T,
) (*T, error) {
	ctx, span := tracer.Start(ctx, "complete prompt structured")
	defer span.End()
	span.SetAttributes(attribute.String("request.model", model))

	reflector := jsonschema.Reflector{DoNotReference: true}
	var (
		schema         *jsonschema.Schema
		outputTypeName string
	)
	if reflect.TypeOf(outputSchema).Kind() == reflect.Ptr {
		schema = reflector.ReflectFromType(reflect.TypeOf(outputSchema).Elem())
		outputTypeName = reflect.TypeOf(outputSchema).Elem().Name()
	} else {
		schema = reflector.Reflect(outputSchema)
		outputTypeName = reflect.TypeOf(outputSchema).Name()
	}

	reqBody := requestBody{
		Model:       model,
		Messages:    toMessages(client.options.Instructions, prompt),
		Stream:      false,
		Temperature: client.options.Temperature,
		MaxTokens:   client.options.MaxTokens,
		ResponseFormat: &chatResponseFormat{
			Type: "json_schema",
			JSONSchema: &jsonSchemaFormat{
				Name:   outputTypeName,
				Schema: *schema,
				Strict: true,
			},
		},
	}

	content, err := client.send(ctx, reqBody)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var output T
	if err := json.Unmarshal([]byte(content), &output); err != nil {
		err = orchestration.NewCompletionError(orchestration.CompletionEmptyResponse,
			fmt.Errorf("error unmarshalling structured response: %w", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return &output, nil
}

// SuggestionClient is a TextCompletion adapter that constrains the model
// to a structured suggestion payload, for the suggestion stage where a
// bare continuation tends to drift into prose.
type SuggestionClient struct {
	client *Client
}

type suggestionPayload struct {
	Suggestion string `json:"suggestion" jsonschema:"title=Suggestion,description=The next utterance the user could say to continue the conversation"`
}

func NewSuggestionClient(apiKey string, opts ...llms.PromptOption) (*SuggestionClient, error) {
	client, err := NewClient(apiKey, opts...)
	if err != nil {
		return nil, err
	}
	return &SuggestionClient{client: client}, nil
}

func (s *SuggestionClient) Complete(ctx context.Context, prompt string, model string) (string, error) {
	payload, err := CompleteJSONSchema(ctx, s.client, prompt, model, suggestionPayload{})
	if err != nil {
		return "", err
	}
	return payload.Suggestion, nil
}
