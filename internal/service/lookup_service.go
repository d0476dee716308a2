// Package service contains the store lookup logic. LookupService runs a
// two-stage strategy:
//
//	Stage 1: a fast plain completion, told to answer exactly "0" when unsure
//	Stage 2: only on "0" or silence, a web-search augmented completion
//
// Stage 2 output is normalized to plain prose, and if neither stage produced
// anything usable the caller gets a fixed fallback sentence.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/fleveque/store-context/internal/llm"
	"github.com/fleveque/store-context/internal/model"
)

// ErrInvalidInput is returned for an identifier that is blank or longer than
// model.MaxIdentifierLength after trimming. No remote call is made.
var ErrInvalidInput = errors.New("invalid store identifier")

// LookupService answers "what is this store?" with a short paragraph.
// It holds no mutable state, so one instance serves concurrent callers.
type LookupService struct {
	completer llm.Completer
	searcher  llm.Searcher // nil disables the web-search stage
	logger    *zap.Logger
}

// NewLookupService wires the two stages. searcher may be nil.
func NewLookupService(completer llm.Completer, searcher llm.Searcher, logger *zap.Logger) *LookupService {
	return &LookupService{
		completer: completer,
		searcher:  searcher,
		logger:    logger,
	}
}

// PrimaryModel names the model behind the first stage.
func (s *LookupService) PrimaryModel() string {
	return s.completer.ModelName()
}

// SearchBackend names the web-search provider and model, or "none" when the
// second stage is disabled.
func (s *LookupService) SearchBackend() (provider, modelName string) {
	if s.searcher == nil {
		return "none", ""
	}
	return s.searcher.ProviderName(), s.searcher.ModelName()
}

// searchOutcome is the result of the web-search stage: either usable text or
// unavailable. Unavailable is never surfaced as an error.
type searchOutcome struct {
	text      string
	available bool
}

var unavailable = searchOutcome{}

// Lookup validates identifier, runs the primary call, and falls back to web
// search when the primary answer is the sentinel or empty.
//
// Primary-call failures are returned as *llm.APIError or *llm.RemoteError.
// Web-search failures are logged and degrade to model.FallbackText.
func (s *LookupService) Lookup(ctx context.Context, identifier string) (*model.LookupResult, error) {
	identifier, err := ValidateIdentifier(identifier)
	if err != nil {
		return nil, err
	}

	raw, err := s.completer.Complete(ctx, systemInstruction, buildPrompt(identifier))
	if err != nil {
		return nil, fmt.Errorf("primary lookup for %q: %w", identifier, err)
	}

	primaryText := strings.TrimSpace(raw)
	if !model.IsInconclusive(primaryText) {
		return model.NewLookupResult(identifier, primaryText, model.SourcePrimary), nil
	}

	s.logger.Info("primary call inconclusive, trying web search",
		zap.String("identifier", identifier),
		zap.String("model", s.completer.ModelName()),
	)

	outcome := s.search(ctx, identifier)
	if !outcome.available {
		return model.NewLookupResult(identifier, model.Sentinel, model.SourceFallback), nil
	}

	return model.NewLookupResult(identifier, outcome.text, model.SourceWebSearch), nil
}

// search runs the web-search stage. Every failure mode collapses into
// unavailable: no searcher, a provider error, or a still-inconclusive answer.
func (s *LookupService) search(ctx context.Context, identifier string) searchOutcome {
	if s.searcher == nil {
		s.logger.Debug("web search disabled", zap.String("identifier", identifier))
		return unavailable
	}

	out, err := s.searcher.Search(ctx, buildSearchPrompt(identifier))
	if err != nil {
		s.logger.Warn("web search failed",
			zap.String("identifier", identifier),
			zap.String("provider", s.searcher.ProviderName()),
			zap.Error(err),
		)
		return unavailable
	}

	text := Normalize(out.Text())
	if model.IsInconclusive(text) {
		s.logger.Info("web search inconclusive", zap.String("identifier", identifier))
		return unavailable
	}

	return searchOutcome{text: text, available: true}
}

// ValidateIdentifier trims identifier and checks its length in characters.
func ValidateIdentifier(identifier string) (string, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return "", fmt.Errorf("%w: identifier is empty", ErrInvalidInput)
	}
	if n := utf8.RuneCountInString(identifier); n > model.MaxIdentifierLength {
		return "", fmt.Errorf("%w: identifier is %d characters, maximum is %d",
			ErrInvalidInput, n, model.MaxIdentifierLength)
	}
	return identifier, nil
}
