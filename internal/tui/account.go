package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/evoss/adloom/pkg/client"
	"github.com/evoss/adloom/pkg/domain"
)

const ledgerLimit = 15

type accountModel struct {
	client  *client.Client
	profile *domain.UserProfile
	balance *domain.CreditBalance
	ledger  []domain.LedgerEntry
	loading bool
	errMsg  string
	width   int
	height  int
}

type ledgerLoadedMsg struct {
	entries []domain.LedgerEntry
	err     error
}

func newAccountModel(c *client.Client) accountModel {
	return accountModel{client: c}
}

func (m accountModel) Init() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		entries, err := c.Ledger(context.Background(), ledgerLimit)
		return ledgerLoadedMsg{entries: entries, err: err}
	}
}

func (m accountModel) Update(msg tea.Msg) (accountModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case profileLoadedMsg:
		if msg.err == nil {
			m.profile = msg.profile
			m.balance = msg.balance
		}
		return m, nil

	case ledgerLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, expiredCmd(msg.err)
		}
		m.errMsg = ""
		m.ledger = msg.entries
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "r" {
			m.loading = true
			c := m.client
			return m, tea.Batch(m.Init(), func() tea.Msg {
				profile, err := c.Me(context.Background())
				if err != nil {
					return profileLoadedMsg{err: err}
				}
				balance, err := c.Balance(context.Background())
				if err != nil {
					balance = nil
				}
				return profileLoadedMsg{profile: profile, balance: balance}
			})
		}
	}
	return m, nil
}

func (m accountModel) View() string {
	var b strings.Builder
	b.WriteString(" " + selectedStyle.Render("Account") + "\n\n")

	if m.profile == nil {
		b.WriteString(" " + dimStyle.Render("loading profile...") + "\n")
	} else {
		fmt.Fprintf(&b, " %s %s\n", metaStyle.Render("name   "), m.profile.Name)
		fmt.Fprintf(&b, " %s %s\n", metaStyle.Render("email  "), m.profile.Email)
		if m.balance != nil {
			fmt.Fprintf(&b, " %s %s\n", metaStyle.Render("credits"),
				creditStyle.Render(fmt.Sprintf("%d", m.balance.Balance)))
		} else {
			fmt.Fprintf(&b, " %s %s\n", metaStyle.Render("credits"),
				creditStyle.Render(fmt.Sprintf("%d", m.profile.CreditsBalance)))
		}
	}

	b.WriteString("\n " + selectedStyle.Render("Recent activity") + "\n\n")
	switch {
	case m.loading && len(m.ledger) == 0:
		b.WriteString(" " + dimStyle.Render("loading ledger...") + "\n")
	case m.errMsg != "":
		b.WriteString(" " + errStyle.Render(m.errMsg) + "\n")
	case len(m.ledger) == 0:
		b.WriteString(" " + dimStyle.Render("no credit activity yet") + "\n")
	default:
		for _, e := range m.ledger {
			fmt.Fprintf(&b, " %s  %-24s %s\n",
				deltaStyle(e.Delta).Render(fmt.Sprintf("%+5d", e.Delta)),
				normalStyle.Render(truncStr(e.Reason, 24)),
				metaStyle.Render(formatTime(e.CreatedAt)))
		}
	}
	return b.String()
}
