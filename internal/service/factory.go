package service

import (
	"go.uber.org/zap"

	"github.com/fleveque/store-context/internal/config"
	"github.com/fleveque/store-context/internal/llm"
)

// NewFromConfig builds a LookupService with the OpenAI chat model as the
// primary stage and the configured web-search provider as the fallback.
func NewFromConfig(cfg *config.Config, logger *zap.Logger) *LookupService {
	timeout := cfg.LLM.Timeout()
	completer := llm.NewOpenAIClient(cfg.LLM.OpenAI.APIKey, cfg.LLM.OpenAI.Model, cfg.LLM.OpenAI.BaseURL, timeout)

	searcher := NewSearcher(cfg, logger)
	if searcher != nil {
		logger.Debug("web search fallback enabled",
			zap.String("provider", searcher.ProviderName()),
			zap.String("model", searcher.ModelName()),
		)
	}

	return NewLookupService(completer, searcher, logger)
}

// NewSearcher returns the configured web-search client, or nil when the
// stage is disabled or its provider has no credential.
func NewSearcher(cfg *config.Config, logger *zap.Logger) llm.Searcher {
	timeout := cfg.LLM.Timeout()

	switch cfg.LLM.SearchProvider {
	case config.SearchProviderOpenAI:
		return llm.NewResponsesSearcher(cfg.LLM.OpenAI.APIKey, cfg.LLM.OpenAI.SearchModel, cfg.LLM.OpenAI.BaseURL, timeout)
	case config.SearchProviderAnthropic:
		if cfg.LLM.Anthropic.APIKey == "" {
			logger.Warn("anthropic web search selected but no API key set; web search disabled")
			return nil
		}
		return llm.NewAnthropicSearcher(cfg.LLM.Anthropic.APIKey, cfg.LLM.Anthropic.Model, cfg.LLM.Anthropic.BaseURL, timeout)
	default:
		return nil
	}
}
