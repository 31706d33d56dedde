// Package redact strips credentials, API keys, endpoint URLs and file paths
// from error text before it is logged or shown to a user.
package redact

import "regexp"

// Placeholders substituted for redacted fragments.
const (
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedURLPlaceholder        = "[REDACTED_URL]"
	RedactedJWTPlaceholder        = "[REDACTED_JWT]"
	RedactedStackPlaceholder      = "[STACK_TRACE_REDACTED]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// Rules run in order; earlier rules consume text later ones would partially match.
var rules = []rule{
	{regexp.MustCompile(`(?:goroutine \d+|panic:)[\s\S]*?(\n\t.*)+`), RedactedStackPlaceholder},
	{regexp.MustCompile(`(?i)(postgres|postgresql|mysql|db|database)://[^@\s]+@`), RedactedCredentialPlaceholder},
	{regexp.MustCompile(`(?i)https?://[^\s"']+`), RedactedURLPlaceholder},
	{regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`), RedactedJWTPlaceholder},
	// Google API keys (Gemini).
	{regexp.MustCompile(`AIza[0-9A-Za-z_-]{35}`), RedactedKeyPlaceholder},
	// OpenAI-style secret keys.
	{regexp.MustCompile(`\bsk-[A-Za-z0-9_-]{16,}`), RedactedKeyPlaceholder},
	{regexp.MustCompile(`(?i)(api[_-]?key|token|secret|key|auth)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`), RedactedKeyPlaceholder},
	{regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]?['"]?)[^'"&\s]{3,}`), RedactedCredentialPlaceholder},
	{regexp.MustCompile(`(/[\w.-]+){2,}`), RedactedPathPlaceholder},
	{regexp.MustCompile(`[A-Za-z]:\\[^\\]+(\\[^\\]+)+`), RedactedPathPlaceholder},
}

// String redacts sensitive fragments from input.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive fragments from err.Error().
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
