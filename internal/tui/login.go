package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/evoss/adloom/pkg/client"
	"github.com/evoss/adloom/pkg/domain"
)

// loginModel is the unauthenticated entry point: a dev-login email form.
// It is also where a 401 from any service lands the user.
type loginModel struct {
	client     *client.Client
	email      string
	notice     string
	errMsg     string
	submitting bool
	width      int
	height     int
}

type loginDoneMsg struct {
	profile *domain.UserProfile
	err     error
}

func newLoginModel(c *client.Client) loginModel {
	return loginModel{client: c}
}

func (m loginModel) Init() tea.Cmd {
	return nil
}

func (m loginModel) submit() (loginModel, tea.Cmd) {
	email := strings.TrimSpace(m.email)
	if email == "" || !strings.Contains(email, "@") {
		m.errMsg = "enter a valid email address"
		return m, nil
	}
	if m.submitting {
		return m, nil
	}
	m.submitting = true
	m.errMsg = ""

	c := m.client
	return m, func() tea.Msg {
		tok, err := c.ExchangeDevToken(context.Background(), email)
		if err != nil {
			return loginDoneMsg{err: err}
		}
		c.Session().SetToken(tok.AccessToken)
		profile, err := c.Me(context.Background())
		if err != nil {
			return loginDoneMsg{err: err}
		}
		return loginDoneMsg{profile: profile}
	}
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loginDoneMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		return m, func() tea.Msg { return loggedInMsg{profile: msg.profile} }

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			return m.submit()
		default:
			if !m.submitting {
				m.email = editRune(m.email, msg.String())
			}
		}
	}
	return m, nil
}

func (m loginModel) View() string {
	var b strings.Builder

	b.WriteString("\n " + selectedStyle.Render("Log in") + "\n\n")
	b.WriteString(" " + dimStyle.Render("Dev login: any email gets a token from the auth service.") + "\n\n")

	cursor := ""
	if !m.submitting {
		cursor = accentStyle.Render("█")
	}
	if m.email == "" {
		b.WriteString(" " + inputPromptStyle.Render("email> ") + inputPlaceholderStyle.Render("you@example.com") + cursor + "\n")
	} else {
		b.WriteString(" " + inputPromptStyle.Render("email> ") + normalStyle.Render(m.email) + cursor + "\n")
	}

	b.WriteString("\n")
	switch {
	case m.submitting:
		b.WriteString(" " + dimStyle.Render("exchanging token...") + "\n")
	case m.errMsg != "":
		b.WriteString(" " + errStyle.Render(m.errMsg) + "\n")
	case m.notice != "":
		b.WriteString(" " + warnStyle.Render(m.notice) + "\n")
	}

	return b.String()
}
