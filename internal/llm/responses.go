package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"
)

// webSearchTools enables OpenAI's hosted web search on a Responses call.
var webSearchTools = []map[string]any{{"type": "web_search_preview"}}

// ResponsesSearcher implements Searcher with the OpenAI Responses API and the
// hosted web search tool. Answers produced this way may carry citation
// markup, so callers normalize the text.
type ResponsesSearcher struct {
	client openai.Client
	model  string
}

// NewResponsesSearcher creates a web-search client bounded by timeout.
// SDK-level retries are disabled; a failed search is never retried.
func NewResponsesSearcher(apiKey, model, baseURL string, timeout time.Duration) *ResponsesSearcher {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithRequestTimeout(timeout),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &ResponsesSearcher{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

func (r *ResponsesSearcher) ProviderName() string { return "openai" }
func (r *ResponsesSearcher) ModelName() string     { return r.model }

// Search sends the combined instruction and prompt with web search enabled
// and decodes whatever shape the payload comes back in.
func (r *ResponsesSearcher) Search(ctx context.Context, text string) (SearchOutput, error) {
	resp, err := r.client.Responses.New(ctx, responses.ResponseNewParams{
		Model: r.model,
		Input: responses.ResponseNewParamsInputUnion{OfString: openai.String(text)},
	}, option.WithJSONSet("tools", webSearchTools))
	if err != nil {
		return SearchOutput{}, fmt.Errorf("openai responses call: %w", err)
	}

	return DecodeSearchOutput([]byte(resp.RawJSON())), nil
}
