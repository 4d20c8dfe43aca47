package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/evoss/adloom/pkg/domain"
)

func newTestLoginModel() loginModel {
	m := newLoginModel(newTestClient(""))
	m.width = 80
	m.height = 24
	return m
}

func TestLoginShowsPlaceholderWhenEmpty(t *testing.T) {
	m := newTestLoginModel()
	view := m.View()
	if !strings.Contains(view, "you@example.com") {
		t.Errorf("expected placeholder in empty login view, got:\n%s", view)
	}
}

func TestLoginTypingRendersEmail(t *testing.T) {
	m := newTestLoginModel()
	for _, r := range "a@b.co" {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	view := m.View()
	if !strings.Contains(view, "a@b.co") {
		t.Errorf("expected typed email in view, got:\n%s", view)
	}
}

func TestLoginRejectsInvalidEmail(t *testing.T) {
	m := newTestLoginModel()
	m.email = "not-an-email"
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("expected no submit command for invalid email")
	}
	if !strings.Contains(m.View(), "valid email") {
		t.Errorf("expected validation error in view, got:\n%s", m.View())
	}
}

func TestLoginSubmitSetsInFlightState(t *testing.T) {
	m := newTestLoginModel()
	m.email = "ada@example.com"
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected submit command")
	}
	if !m.submitting {
		t.Error("expected submitting=true after enter")
	}
	if !strings.Contains(m.View(), "exchanging token") {
		t.Errorf("expected in-flight indicator, got:\n%s", m.View())
	}
}

func TestLoginIgnoresTypingWhileSubmitting(t *testing.T) {
	m := newTestLoginModel()
	m.email = "ada@example.com"
	m.submitting = true
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if m.email != "ada@example.com" {
		t.Errorf("expected email unchanged while submitting, got %q", m.email)
	}
}

func TestLoginFailureShowsError(t *testing.T) {
	m := newTestLoginModel()
	m.submitting = true
	m, _ = m.Update(loginDoneMsg{err: &testErr{msg: "HTTP 500: upstream down"}})
	if m.submitting {
		t.Error("expected submitting cleared after failure")
	}
	if !strings.Contains(m.View(), "upstream down") {
		t.Errorf("expected error message in view, got:\n%s", m.View())
	}
}

func TestLoginSuccessEmitsLoggedIn(t *testing.T) {
	m := newTestLoginModel()
	m.submitting = true
	profile := &domain.UserProfile{Name: "Ada"}
	m, cmd := m.Update(loginDoneMsg{profile: profile})
	if cmd == nil {
		t.Fatal("expected command after successful login")
	}
	msg, ok := cmd().(loggedInMsg)
	if !ok {
		t.Fatalf("expected loggedInMsg, got %T", cmd())
	}
	if msg.profile != profile {
		t.Error("expected profile forwarded in loggedInMsg")
	}
}

func TestLoginExpiredNoticeRendered(t *testing.T) {
	m := newTestLoginModel()
	m.notice = "session expired — log in again"
	if !strings.Contains(m.View(), "session expired") {
		t.Errorf("expected notice in view, got:\n%s", m.View())
	}
}
