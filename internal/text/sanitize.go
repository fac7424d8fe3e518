// Package text cleans up raw model output before structured parsing.
//
// Models sometimes wrap an otherwise well-formed reply in markdown code
// fences despite instructions not to. Stripping the fences up front keeps
// the reply parsers simple.
package text

import "strings"

// StripCodeFences removes a leading ```lang marker and a trailing ```
// from a reply. Replies without fences pass through unchanged.
func StripCodeFences(reply string) string {
	trimmed := strings.TrimSpace(reply)

	if strings.HasPrefix(trimmed, "```") {
		rest := strings.TrimPrefix(trimmed, "```")
		// Drop a language tag on the fence line, e.g. ```text
		if idx := strings.IndexByte(rest, '\n'); idx != -1 && !strings.ContainsAny(rest[:idx], " \t") {
			rest = rest[idx+1:]
		}
		trimmed = strings.TrimSpace(rest)
	}

	if strings.HasSuffix(trimmed, "```") {
		trimmed = strings.TrimSpace(strings.TrimSuffix(trimmed, "```"))
	}

	return trimmed
}
