package proxy

import (
	"fmt"
	"strings"
)

// ExtractJSON pulls a JSON document out of free-form model output: a
// markdown-fenced block when present, otherwise the first balanced object
// or array embedded in the text.
func ExtractJSON(text string) (string, error) {
	if fenced, ok := extractFenced(text); ok {
		return fenced, nil
	}

	for i := 0; i < len(text); i++ {
		if text[i] != '{' && text[i] != '[' {
			continue
		}
		if doc, ok := balancedFrom(text, i); ok {
			return doc, nil
		}
	}

	return "", fmt.Errorf("no JSON document found in response")
}

func extractFenced(text string) (string, bool) {
	for _, fence := range []string{"```json", "```"} {
		start := strings.Index(text, fence)
		if start < 0 {
			continue
		}
		start += len(fence)
		end := strings.Index(text[start:], "```")
		if end < 0 {
			continue
		}
		candidate := strings.TrimSpace(text[start : start+end])
		if len(candidate) > 0 && (candidate[0] == '{' || candidate[0] == '[') {
			return candidate, true
		}
	}
	return "", false
}

// balancedFrom scans for the matching close bracket, ignoring brackets
// inside string literals.
func balancedFrom(text string, start int) (string, bool) {
	open := text[start]
	var close byte = '}'
	if open == '[' {
		close = ']'
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}

	return "", false
}
