package tui

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// pageSize is the default number of items fetched per list call.
const pageSize = 20

// maxInputLen is the maximum number of runes allowed in form inputs.
const maxInputLen = 4000

// formatTime renders a relative timestamp for list displays.
func formatTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// truncStr truncates a string to maxLen runes, appending an ellipsis if needed.
func truncStr(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}

// editRune processes a keystroke for inline text editing. Handles backspace
// (rune-aware) and single printable characters; other keys leave the text
// unchanged. Input is clamped to maxInputLen runes.
func editRune(text string, key string) string {
	switch key {
	case "backspace":
		if len(text) > 0 {
			runes := []rune(text)
			return string(runes[:len(runes)-1])
		}
		return text
	default:
		if utf8.RuneCountInString(key) == 1 {
			if utf8.RuneCountInString(text) >= maxInputLen {
				return text
			}
			return text + key
		}
		return text
	}
}

// editDigits is editRune restricted to decimal digits, for numeric fields.
func editDigits(text string, key string) string {
	if key != "backspace" && (len(key) != 1 || key[0] < '0' || key[0] > '9') {
		return text
	}
	return editRune(text, key)
}

// truncateToHeight limits output to maxLines newline-delimited lines.
func truncateToHeight(s string, maxLines int) string {
	if maxLines <= 0 {
		return s
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			n++
			if n >= maxLines {
				return s[:i+1]
			}
		}
	}
	return s
}

// totalPages returns how many pages a list of total items spans.
func totalPages(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 1
	}
	return (total + limit - 1) / limit
}
