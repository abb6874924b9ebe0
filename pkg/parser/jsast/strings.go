package jsast

import (
	"strconv"
	"strings"
)

// UnquoteString returns the value of a JavaScript string or template literal.
// Text that is not a recognizable literal is returned unchanged.
func UnquoteString(text string) string {
	if len(text) < 2 {
		return text
	}

	if text[0] == '`' && text[len(text)-1] == '`' {
		return text[1 : len(text)-1]
	}

	// Go's strconv.Unquote only handles double-quoted strings, so single-quoted
	// JavaScript strings are rewritten to the double-quoted form first.
	if text[0] == '\'' && text[len(text)-1] == '\'' {
		inner := text[1 : len(text)-1]
		inner = strings.ReplaceAll(inner, `\'`, `'`)
		escaped := strings.ReplaceAll(inner, `"`, `\"`)
		if s, err := strconv.Unquote(`"` + escaped + `"`); err == nil {
			return s
		}
		return text
	}

	if s, err := strconv.Unquote(text); err == nil {
		return s
	}

	return text
}
