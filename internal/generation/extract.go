package generation

import "strings"

// ExtractJSON cuts the JSON payload out of a model reply.
//
// Code fences are removed, then the payload is taken to start at the first
// '{' or '[' (whichever comes first) and to end at the last matching '}' or
// ']'. This is a heuristic, not a parser: braces inside strings or trailing
// prose with brackets can defeat it, and the subsequent decode reports that.
// When no payload can be located the trimmed input is returned unchanged.
func ExtractJSON(raw string) string {
	trimmed := strings.TrimSpace(raw)

	text := strings.ReplaceAll(trimmed, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	startBrace := strings.Index(text, "{")
	startBracket := strings.Index(text, "[")

	start, end := -1, -1
	switch {
	case startBrace != -1 && (startBracket == -1 || startBrace < startBracket):
		start = startBrace
		end = strings.LastIndex(text, "}")
	case startBracket != -1:
		start = startBracket
		end = strings.LastIndex(text, "]")
	}

	if start == -1 || end == -1 {
		return trimmed
	}
	if end < start {
		return ""
	}
	return text[start : end+1]
}
