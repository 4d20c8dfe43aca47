package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/evoss/adloom/pkg/client"
	"github.com/evoss/adloom/pkg/domain"
)

type view int

const (
	viewLogin view = iota
	viewCampaigns
	viewAssets
	viewStudio
	viewAccount
)

// authRequiredMsg signals that a backend call came back 401. The session
// store has already been cleared by the response normalizer; the app's only
// job is to route the user back to the login view.
type authRequiredMsg struct{}

// loggedInMsg carries the profile fetched right after a token exchange.
type loggedInMsg struct {
	profile *domain.UserProfile
}

// openAssetsMsg switches to the assets view filtered to one campaign.
// A zero campaignID means unfiltered.
type openAssetsMsg struct {
	campaignID   int64
	campaignName string
}

// profileLoadedMsg carries the result of Me + Balance for the header line.
type profileLoadedMsg struct {
	profile *domain.UserProfile
	balance *domain.CreditBalance
	err     error
}

// expiredCmd converts a session-expired failure into the redirect signal.
// Views call it from every message handler that carries an error.
func expiredCmd(err error) tea.Cmd {
	if err != nil && client.IsSessionExpired(err) {
		return func() tea.Msg { return authRequiredMsg{} }
	}
	return nil
}

// App is the root Bubbletea model.
type App struct {
	client    *client.Client
	version   string
	view      view
	login     loginModel
	campaigns campaignsModel
	assets    assetsModel
	studio    studioModel
	account   accountModel
	profile   *domain.UserProfile
	balance   *domain.CreditBalance
	width     int
	height    int
	frame     int // logo shimmer animation frame
}

// NewApp creates the dashboard. It opens on the login view when the session
// holds no credential.
func NewApp(c *client.Client, version string) App {
	a := App{
		client:    c,
		version:   version,
		login:     newLoginModel(c),
		campaigns: newCampaignsModel(c),
		assets:    newAssetsModel(c),
		studio:    newStudioModel(c),
		account:   newAccountModel(c),
	}
	if c.Session().Authenticated() {
		a.view = viewCampaigns
	}
	return a
}

func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{shimmerTickCmd()}
	if a.view == viewCampaigns {
		cmds = append(cmds, a.campaigns.Init(), a.loadProfile())
	}
	return tea.Batch(cmds...)
}

func (a App) loadProfile() tea.Cmd {
	c := a.client
	return func() tea.Msg {
		profile, err := c.Me(context.Background())
		if err != nil {
			return profileLoadedMsg{err: err}
		}
		balance, err := c.Balance(context.Background())
		if err != nil {
			balance = nil
		}
		return profileLoadedMsg{profile: profile, balance: balance}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(2) + tabs(1) + help(1) = 4 lines
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 4}
		a.login, _ = a.login.Update(bodyMsg)
		a.campaigns, _ = a.campaigns.Update(bodyMsg)
		a.assets, _ = a.assets.Update(bodyMsg)
		a.studio, _ = a.studio.Update(bodyMsg)
		a.account, _ = a.account.Update(bodyMsg)
		return a, nil

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case authRequiredMsg:
		a.view = viewLogin
		a.profile = nil
		a.balance = nil
		a.login = newLoginModel(a.client)
		a.login.notice = "session expired — log in again"
		return a, nil

	case loggedInMsg:
		a.profile = msg.profile
		a.view = viewCampaigns
		return a, tea.Batch(a.campaigns.Init(), a.loadProfile())

	case openAssetsMsg:
		a.view = viewAssets
		a.assets = a.assets.withFilter(msg.campaignID, msg.campaignName)
		return a, a.assets.Init()

	case profileLoadedMsg:
		if msg.err == nil && msg.profile != nil {
			a.profile = msg.profile
			a.balance = msg.balance
		}
		if cmd := expiredCmd(msg.err); cmd != nil {
			return a, cmd
		}
		// Keep the account view's copy in sync.
		a.account, _ = a.account.Update(msg)
		return a, nil

	case tea.KeyMsg:
		// Global keys only apply outside text entry.
		if !a.isEditing() {
			switch msg.String() {
			case "q", "ctrl+c":
				return a, tea.Quit
			case "1":
				if a.view != viewCampaigns && a.view != viewLogin {
					a.view = viewCampaigns
					return a, a.campaigns.Init()
				}
				return a, nil
			case "2":
				if a.view != viewAssets && a.view != viewLogin {
					a.view = viewAssets
					return a, a.assets.Init()
				}
				return a, nil
			case "3":
				if a.view != viewStudio && a.view != viewLogin {
					a.view = viewStudio
					return a, nil
				}
				return a, nil
			case "4":
				if a.view != viewAccount && a.view != viewLogin {
					a.view = viewAccount
					return a, a.account.Init()
				}
				return a, nil
			}
		} else if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
	}

	var cmd tea.Cmd
	switch a.view {
	case viewLogin:
		a.login, cmd = a.login.Update(msg)
	case viewCampaigns:
		a.campaigns, cmd = a.campaigns.Update(msg)
	case viewAssets:
		a.assets, cmd = a.assets.Update(msg)
	case viewStudio:
		a.studio, cmd = a.studio.Update(msg)
	case viewAccount:
		a.account, cmd = a.account.Update(msg)
	}
	return a, cmd
}

func (a App) isEditing() bool {
	switch a.view {
	case viewLogin:
		return true
	case viewCampaigns:
		return a.campaigns.isEditing()
	case viewAssets:
		return a.assets.isEditing()
	case viewStudio:
		return a.studio.isEditing()
	}
	return false
}

func (a App) View() string {
	logo := renderShimmerLogo(a.frame)

	// Identity line below the logo.
	statsLine := ""
	if a.profile != nil {
		parts := []string{a.profile.Name}
		if a.balance != nil {
			parts = append(parts, creditStyle.Render(fmt.Sprintf("%d credits", a.balance.Balance)))
		}
		if exp, ok := a.client.Session().ExpiresAt(); ok {
			parts = append(parts, dimStyle.Render("session ends "+exp.Format(time.Kitchen)))
		}
		statsLine = metaStyle.Render(strings.Join(parts, " · "))
	}

	logoWidth := lipgloss.Width(logo)
	logoPad := (a.width - logoWidth) / 2
	if logoPad < 0 {
		logoPad = 0
	}
	header := strings.Repeat(" ", logoPad) + logo
	if statsLine != "" {
		statsWidth := lipgloss.Width(statsLine)
		statsPad := (a.width - statsWidth) / 2
		if statsPad < 0 {
			statsPad = 0
		}
		header += "\n" + strings.Repeat(" ", statsPad) + statsLine
	} else {
		header += "\n"
	}

	// Tab bar, hidden on the login view.
	tabBar := ""
	if a.view != viewLogin {
		type tabEntry struct {
			key  string
			name string
			v    view
		}
		tabs := []tabEntry{
			{"1", "Campaigns", viewCampaigns},
			{"2", "Assets", viewAssets},
			{"3", "Studio", viewStudio},
			{"4", "Account", viewAccount},
		}
		colWidth := 1
		if a.width > 0 {
			colWidth = a.width / len(tabs)
		}
		var bar strings.Builder
		for _, t := range tabs {
			var label string
			if t.v == a.view {
				label = accentStyle.Render(t.key) + " " + selectedStyle.Underline(true).Render(t.name)
			} else {
				label = metaStyle.Render(t.key) + " " + dimStyle.Render(t.name)
			}
			labelWidth := lipgloss.Width(label)
			leftPad := (colWidth - labelWidth) / 2
			if leftPad < 0 {
				leftPad = 0
			}
			rightPad := colWidth - labelWidth - leftPad
			if rightPad < 0 {
				rightPad = 0
			}
			bar.WriteString(strings.Repeat(" ", leftPad) + label + strings.Repeat(" ", rightPad))
		}
		tabBar = bar.String()
	}

	var body, help string
	switch a.view {
	case viewLogin:
		body = a.login.View()
		help = " " + helpEntry("enter", "log in") + "  " + helpEntry("ctrl+c", "quit")
	case viewCampaigns:
		body = a.campaigns.View()
		help = " " + helpEntry("1-4", "tabs") + "  " + a.campaigns.helpKeys()
	case viewAssets:
		body = a.assets.View()
		help = " " + helpEntry("1-4", "tabs") + "  " + a.assets.helpKeys()
	case viewStudio:
		body = a.studio.View()
		help = " " + a.studio.helpKeys()
	case viewAccount:
		body = a.account.View()
		help = " " + helpEntry("1-4", "tabs") + "  " + helpEntry("r", "refresh") + "  " + helpEntry("q", "quit")
	}

	chrome := 4
	body = strings.TrimRight(truncateToHeight(body, a.height-chrome), "\n")

	return fmt.Sprintf("%s\n%s\n%s\n%s", header, tabBar, body, help)
}
