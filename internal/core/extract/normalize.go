package extract

import "strings"

// NormalizeJSON recovers a best-effort JSON object substring from a raw
// completion. Completions are not guaranteed to be pure JSON: markdown
// fences and leading prose are common. Steps, first match wins:
// trim, drop fence markers anywhere, then take the first '{' through the
// last '}'. With no brace span the trimmed text is returned unchanged and
// the caller fails JSON parsing.
//
// The greedy span over-captures when a completion carries two independent
// JSON objects; accepted limitation.
func NormalizeJSON(raw string) string {
	text := strings.TrimSpace(raw)
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		return text[start : end+1]
	}
	return strings.TrimSpace(text)
}
