package tui

import (
	"strings"
	"testing"
	"time"
)

func TestFormatTime(t *testing.T) {
	tests := []struct {
		age  time.Duration
		want string
	}{
		{30 * time.Second, "just now"},
		{5 * time.Minute, "5m ago"},
		{3 * time.Hour, "3h ago"},
		{49 * time.Hour, "2d ago"},
	}
	for _, tt := range tests {
		got := formatTime(time.Now().Add(-tt.age))
		if got != tt.want {
			t.Errorf("formatTime(-%v) = %q, want %q", tt.age, got, tt.want)
		}
	}
}

func TestTruncStr(t *testing.T) {
	if got := truncStr("short", 10); got != "short" {
		t.Errorf("truncStr short = %q", got)
	}
	got := truncStr("a very long campaign name", 10)
	if len([]rune(got)) != 10 {
		t.Errorf("truncStr length = %d, want 10", len([]rune(got)))
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("truncStr = %q, want ellipsis suffix", got)
	}
}

func TestEditRune(t *testing.T) {
	if got := editRune("ab", "c"); got != "abc" {
		t.Errorf("append = %q", got)
	}
	if got := editRune("abc", "backspace"); got != "ab" {
		t.Errorf("backspace = %q", got)
	}
	if got := editRune("", "backspace"); got != "" {
		t.Errorf("backspace on empty = %q", got)
	}
	// Multi-rune key names are not input.
	if got := editRune("ab", "ctrl+s"); got != "ab" {
		t.Errorf("control key treated as input: %q", got)
	}
	// Backspace removes whole runes, not bytes.
	if got := editRune("héllo", "backspace"); got != "héll" {
		t.Errorf("rune backspace = %q", got)
	}
}

func TestEditDigits(t *testing.T) {
	if got := editDigits("4", "2"); got != "42" {
		t.Errorf("digit append = %q", got)
	}
	if got := editDigits("4", "x"); got != "4" {
		t.Errorf("letter accepted: %q", got)
	}
	if got := editDigits("42", "backspace"); got != "4" {
		t.Errorf("backspace = %q", got)
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total, limit, want int
	}{
		{0, 20, 1},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{45, 20, 3},
		{10, 0, 1},
	}
	for _, tt := range tests {
		if got := totalPages(tt.total, tt.limit); got != tt.want {
			t.Errorf("totalPages(%d, %d) = %d, want %d", tt.total, tt.limit, got, tt.want)
		}
	}
}

func TestTruncateToHeight(t *testing.T) {
	s := "one\ntwo\nthree\nfour\n"
	got := truncateToHeight(s, 2)
	if got != "one\ntwo\n" {
		t.Errorf("truncateToHeight = %q", got)
	}
	if got := truncateToHeight(s, 0); got != s {
		t.Errorf("zero maxLines should pass through, got %q", got)
	}
	if got := truncateToHeight("no newline", 3); got != "no newline" {
		t.Errorf("short input should pass through, got %q", got)
	}
}
