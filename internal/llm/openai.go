package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient implements Completer with a plain chat completion on a fast,
// low-cost model. It has no retrieval capability.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient creates a chat client whose every call is bounded by timeout.
// baseURL may be empty to use the public endpoint.
func NewOpenAIClient(apiKey, model, baseURL string, timeout time.Duration) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (o *OpenAIClient) ProviderName() string { return "openai" }
func (o *OpenAIClient) ModelName() string     { return o.model }

// Complete sends the system instruction and prompt and returns the first
// choice's content untrimmed.
func (o *OpenAIClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", o.classify(err)
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

// classify sorts a go-openai error into APIError (the provider answered with
// an error) or RemoteError (it could not be reached).
func (o *OpenAIClient) classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &APIError{
			Provider:   o.ProviderName(),
			StatusCode: apiErr.HTTPStatusCode,
			Code:       errorCode(apiErr.Code),
			Message:    apiErr.Message,
		}
	}

	// RequestError means a non-2xx reply whose body was not an error object.
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		msg := ""
		if reqErr.Err != nil {
			msg = reqErr.Err.Error()
		}
		return &APIError{
			Provider:   o.ProviderName(),
			StatusCode: reqErr.HTTPStatusCode,
			Message:    msg,
		}
	}

	return &RemoteError{Provider: o.ProviderName(), Err: err}
}

// errorCode renders the provider's error code, which may arrive as a string
// or a number.
func errorCode(code any) string {
	switch c := code.(type) {
	case nil:
		return ""
	case string:
		return c
	default:
		return strings.TrimSpace(fmt.Sprint(c))
	}
}
