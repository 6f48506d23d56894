package extract

import (
	"encoding/json"
	"strings"
)

// ReplyKind tags how an LLM response could be interpreted.
type ReplyKind string

const (
	ReplyStructured   ReplyKind = "structured"
	ReplyUnstructured ReplyKind = "unstructured"
)

// Reply is the normalized form of an LLM response. Downstream code never
// strips code fences itself: ParseReply is the single normalizing step.
type Reply struct {
	Kind ReplyKind
	JSON json.RawMessage // valid only when Kind == ReplyStructured
	Text string          // original text, always set
}

// ParseReply classifies an LLM response as structured JSON (possibly
// wrapped in markdown code fences) or unstructured prose.
func ParseReply(text string) Reply {
	cleaned := CleanJSON(text)
	if json.Valid([]byte(cleaned)) {
		return Reply{Kind: ReplyStructured, JSON: json.RawMessage(cleaned), Text: text}
	}
	return Reply{Kind: ReplyUnstructured, Text: text}
}

// Decode unmarshals a structured reply into v. Unstructured replies report
// ok=false without touching v.
func (r Reply) Decode(v any) bool {
	if r.Kind != ReplyStructured {
		return false
	}
	return json.Unmarshal(r.JSON, v) == nil
}

// CleanJSON extracts a JSON object from text that may be wrapped in
// markdown code fences or surrounding prose.
func CleanJSON(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}

	return strings.TrimSpace(text)
}
