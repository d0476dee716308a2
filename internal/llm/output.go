package llm

import (
	"bytes"
	"encoding/json"
	"strings"
)

// OutputKind tags which shape a search payload arrived in.
type OutputKind int

const (
	OutputEmpty  OutputKind = iota
	OutputString            // a bare string
	OutputObject            // an object carrying a primary text field
	OutputItems             // a list of structured content items
)

// ContentPart is one piece of an output item, e.g. {"type":"output_text","text":"..."}.
type ContentPart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// OutputItem is one structured entry of a search payload. Only items with
// Type "message" carry the answer; tool-call records are skipped.
type OutputItem struct {
	Type    string        `json:"type"`
	Role    string        `json:"role,omitempty"`
	Content []ContentPart `json:"content,omitempty"`
}

// SearchOutput is the decoded result of a Searcher call. Exactly one of
// String, ObjectText, or Items is meaningful, as selected by Kind.
type SearchOutput struct {
	Kind       OutputKind
	String     string
	ObjectText string
	Items      []OutputItem
}

// StringOutput wraps a plain text answer.
func StringOutput(s string) SearchOutput {
	return SearchOutput{Kind: OutputString, String: s}
}

// ItemsOutput wraps a list of structured items.
func ItemsOutput(items []OutputItem) SearchOutput {
	return SearchOutput{Kind: OutputItems, Items: items}
}

// Text extracts the answer. Precedence follows Kind: the bare string, then
// the object's text field, then the first message item's text parts joined.
// Anything else yields "".
func (o SearchOutput) Text() string {
	switch o.Kind {
	case OutputString:
		return o.String
	case OutputObject:
		return o.ObjectText
	case OutputItems:
		for _, item := range o.Items {
			if item.Type != "message" {
				continue
			}
			var sb strings.Builder
			for _, part := range item.Content {
				if part.Text == "" {
					continue
				}
				if part.Type != "" && part.Type != "output_text" && part.Type != "text" {
					continue
				}
				sb.WriteString(part.Text)
			}
			return sb.String()
		}
	}
	return ""
}

// payloadObject covers the object shapes providers return: a direct text
// field, or an "output" list as the Responses API does. Fields stay raw
// because "text" is a format object, not a string, on Responses payloads.
type payloadObject struct {
	OutputText json.RawMessage `json:"output_text"`
	Text       json.RawMessage `json:"text"`
	Output     json.RawMessage `json:"output"`
}

// rawString returns the value of a JSON string field, or "" if absent or
// not a string.
func rawString(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

// DecodeSearchOutput turns a raw provider payload into a SearchOutput.
// Accepted shapes, checked in order: a JSON string; an object with a
// non-empty output_text or text field; an object whose "output" is an item
// list; a top-level item list. Unrecognized payloads decode to OutputEmpty.
func DecodeSearchOutput(raw []byte) SearchOutput {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return SearchOutput{}
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return StringOutput(s)
		}
	case '{':
		var obj payloadObject
		if err := json.Unmarshal(raw, &obj); err != nil {
			return SearchOutput{}
		}
		if text := rawString(obj.OutputText); text != "" {
			return SearchOutput{Kind: OutputObject, ObjectText: text}
		}
		if text := rawString(obj.Text); text != "" {
			return SearchOutput{Kind: OutputObject, ObjectText: text}
		}
		if len(obj.Output) > 0 {
			return DecodeSearchOutput(obj.Output)
		}
	case '[':
		var items []OutputItem
		if err := json.Unmarshal(raw, &items); err == nil {
			return ItemsOutput(items)
		}
	}

	return SearchOutput{}
}
