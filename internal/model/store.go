// Package model defines the core data types for store lookups.
// Struct tags (the `json:"..."` annotations) tell encoding/json and gin how
// to serialize results in API responses.
package model

// Sentinel is the in-band "I don't know" answer the primary call is asked to
// give when it has no confident knowledge of a store.
const Sentinel = "0"

// FallbackText is returned whenever neither stage produced usable prose.
const FallbackText = "We're unable to single-out detailed context about this store."

// MaxIdentifierLength is the longest identifier accepted after trimming.
const MaxIdentifierLength = 200

// ResultSource records which stage produced a result's text.
type ResultSource string

const (
	SourcePrimary   ResultSource = "primary"
	SourceWebSearch ResultSource = "web_search"
	SourceFallback  ResultSource = "fallback"
)

// LookupRequest is a single store name or URL to describe.
type LookupRequest struct {
	Identifier string `json:"identifier"`
}

// LookupResult pairs an identifier with the text describing it.
// Text is never the sentinel and never empty.
type LookupResult struct {
	Identifier string       `json:"identifier"`
	Text       string       `json:"text"`
	Source     ResultSource `json:"source"`
}

// NewLookupResult builds a result, substituting FallbackText when text is
// empty or the sentinel.
func NewLookupResult(identifier, text string, source ResultSource) *LookupResult {
	if IsInconclusive(text) {
		return &LookupResult{Identifier: identifier, Text: FallbackText, Source: SourceFallback}
	}
	return &LookupResult{Identifier: identifier, Text: text, Source: source}
}

// IsInconclusive reports whether text carries no usable answer.
func IsInconclusive(text string) bool {
	return text == "" || text == Sentinel
}
