package utils

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/text"
)

// StripCodeFences removes an outer markdown code block if present
// (e.g. ```json ... ``` around an LLM response).
func StripCodeFences(input string) string {
	cleaned := strings.TrimSpace(input)
	if !strings.HasPrefix(cleaned, "```") || !strings.HasSuffix(cleaned, "```") {
		return cleaned
	}
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimPrefix(cleaned, "```")
	// Drop a language tag on the opening fence.
	if idx := strings.IndexByte(cleaned, '\n'); idx >= 0 {
		firstLine := strings.TrimSpace(cleaned[:idx])
		if firstLine != "" && !strings.ContainsAny(firstLine, " \t{[") {
			cleaned = cleaned[idx+1:]
		}
	}
	return strings.TrimSpace(cleaned)
}

// ValidateMarkdown checks that the string parses as Markdown using Goldmark.
// Goldmark is very permissive, so this is a basic sanity gate for rendered
// reports rather than a strict linter.
func ValidateMarkdown(input string) bool {
	parser := goldmark.DefaultParser()
	reader := text.NewReader([]byte(input))
	doc := parser.Parse(reader)
	return doc != nil
}
