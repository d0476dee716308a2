package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicSearcher implements Searcher using Claude with native web search.
// The web_search tool runs server-side, so one Messages call returns the
// final answer; its text blocks are gathered into a single message item.
type AnthropicSearcher struct {
	client *anthropic.Client
	model  string
}

// NewAnthropicSearcher creates a Claude-backed web-search client bounded by
// timeout. baseURL may be empty to use the public endpoint.
func NewAnthropicSearcher(apiKey, model, baseURL string, timeout time.Duration) *AnthropicSearcher {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithRequestTimeout(timeout),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := anthropic.NewClient(opts...)
	return &AnthropicSearcher{
		client: &client,
		model:  model,
	}
}

func (a *AnthropicSearcher) ProviderName() string { return "anthropic" }
func (a *AnthropicSearcher) ModelName() string     { return a.model }

func (a *AnthropicSearcher) Search(ctx context.Context, text string) (SearchOutput, error) {
	message, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: 1024,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(text)),
		},
		Tools: []anthropic.ToolUnionParam{
			{OfWebSearchTool20250305: &anthropic.WebSearchTool20250305Param{}},
		},
	})
	if err != nil {
		return SearchOutput{}, fmt.Errorf("anthropic API call: %w", err)
	}

	// Search results and tool-use blocks interleave with the prose; only the
	// text blocks make up the answer.
	item := OutputItem{Type: "message", Role: "assistant"}
	for _, block := range message.Content {
		textBlock, ok := block.AsAny().(anthropic.TextBlock)
		if !ok {
			continue
		}
		item.Content = append(item.Content, ContentPart{Type: "text", Text: textBlock.Text})
	}

	return ItemsOutput([]OutputItem{item}), nil
}
