package model

import "testing"

func TestNewLookupResult(t *testing.T) {
	tests := []struct {
		text       string
		source     ResultSource
		wantText   string
		wantSource ResultSource
	}{
		{"Acme sells anvils.", SourcePrimary, "Acme sells anvils.", SourcePrimary},
		{"Acme ships.", SourceWebSearch, "Acme ships.", SourceWebSearch},
		{Sentinel, SourcePrimary, FallbackText, SourceFallback},
		{"", SourceWebSearch, FallbackText, SourceFallback},
	}

	for _, tt := range tests {
		got := NewLookupResult("Acme", tt.text, tt.source)
		if got.Identifier != "Acme" {
			t.Errorf("expected identifier Acme, got %q", got.Identifier)
		}
		if got.Text != tt.wantText {
			t.Errorf("text %q: expected %q, got %q", tt.text, tt.wantText, got.Text)
		}
		if got.Source != tt.wantSource {
			t.Errorf("text %q: expected source %s, got %s", tt.text, tt.wantSource, got.Source)
		}
	}
}
