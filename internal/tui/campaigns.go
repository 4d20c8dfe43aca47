package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/evoss/adloom/pkg/client"
	"github.com/evoss/adloom/pkg/domain"
)

type campaignsMode int

const (
	campaignsList campaignsMode = iota
	campaignsCreate
)

type campaignField int

const (
	campaignName campaignField = iota
	campaignGoal
	campaignAudience
	numCampaignFields
)

type campaignsModel struct {
	client  *client.Client
	page    *domain.Page[domain.Campaign]
	pageNum int
	cursor  int
	loading bool
	errMsg  string
	notice  string
	mode    campaignsMode
	width   int
	height  int

	// create form
	fields     [numCampaignFields]string
	focus      campaignField
	submitting bool

	// one status change in flight at a time, keyed by campaign id
	mutating int64
}

type campaignsLoadedMsg struct {
	page *domain.Page[domain.Campaign]
	err  error
}

type campaignCreatedMsg struct {
	campaign *domain.Campaign
	err      error
}

type campaignStatusMsg struct {
	campaign *domain.Campaign
	err      error
}

func newCampaignsModel(c *client.Client) campaignsModel {
	return campaignsModel{client: c, pageNum: 1}
}

func (m campaignsModel) Init() tea.Cmd {
	return m.load()
}

func (m campaignsModel) load() tea.Cmd {
	c := m.client
	pageNum := m.pageNum
	return func() tea.Msg {
		page, err := c.ListCampaigns(context.Background(), pageNum, pageSize)
		return campaignsLoadedMsg{page: page, err: err}
	}
}

func (m campaignsModel) isEditing() bool {
	return m.mode == campaignsCreate
}

func (m campaignsModel) selected() *domain.Campaign {
	if m.page == nil || m.cursor >= len(m.page.Items) {
		return nil
	}
	return &m.page.Items[m.cursor]
}

func (m campaignsModel) Update(msg tea.Msg) (campaignsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case campaignsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, expiredCmd(msg.err)
		}
		m.errMsg = ""
		m.page = msg.page
		if m.cursor >= len(m.page.Items) {
			m.cursor = 0
		}
		return m, nil

	case campaignCreatedMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, expiredCmd(msg.err)
		}
		m.mode = campaignsList
		m.fields = [numCampaignFields]string{}
		m.focus = campaignName
		m.notice = fmt.Sprintf("created campaign %q", msg.campaign.Name)
		return m, m.load()

	case campaignStatusMsg:
		m.mutating = 0
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, expiredCmd(msg.err)
		}
		// Re-render from the authoritative entity the service returned.
		if m.page != nil {
			for i := range m.page.Items {
				if m.page.Items[i].ID == msg.campaign.ID {
					m.page.Items[i] = *msg.campaign
				}
			}
		}
		m.notice = fmt.Sprintf("%s is now %s", msg.campaign.Name, msg.campaign.Status)
		return m, nil

	case tea.KeyMsg:
		if m.mode == campaignsCreate {
			return m.updateCreate(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m campaignsModel) updateList(msg tea.KeyMsg) (campaignsModel, tea.Cmd) {
	m.notice = ""
	switch msg.String() {
	case "j", "down":
		if m.page != nil && m.cursor < len(m.page.Items)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "]":
		if m.page != nil && m.page.HasNext() {
			m.pageNum++
			m.loading = true
			return m, m.load()
		}
	case "[":
		if m.page != nil && m.page.HasPrev() {
			m.pageNum--
			m.loading = true
			return m, m.load()
		}
	case "r":
		m.loading = true
		return m, m.load()
	case "n":
		m.mode = campaignsCreate
		m.errMsg = ""
	case "s":
		// Ask the service to advance the status; ignore while a change for
		// this campaign is still in flight.
		sel := m.selected()
		if sel == nil || m.mutating == sel.ID {
			return m, nil
		}
		m.mutating = sel.ID
		c := m.client
		id := sel.ID
		next := domain.NextStatus(sel.Status)
		return m, func() tea.Msg {
			campaign, err := c.UpdateCampaignStatus(context.Background(), id, next)
			return campaignStatusMsg{campaign: campaign, err: err}
		}
	case "enter":
		if sel := m.selected(); sel != nil {
			id := sel.ID
			name := sel.Name
			return m, func() tea.Msg { return openAssetsMsg{campaignID: id, campaignName: name} }
		}
	}
	return m, nil
}

func (m campaignsModel) updateCreate(msg tea.KeyMsg) (campaignsModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = campaignsList
		m.errMsg = ""
		return m, nil
	case "ctrl+s":
		return m.submitCreate()
	case "tab", "down":
		m.focus = (m.focus + 1) % numCampaignFields
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + numCampaignFields) % numCampaignFields
	case "enter":
		if m.focus == numCampaignFields-1 {
			return m.submitCreate()
		}
		m.focus++
	default:
		if !m.submitting {
			m.fields[m.focus] = editRune(m.fields[m.focus], msg.String())
		}
	}
	return m, nil
}

func (m campaignsModel) submitCreate() (campaignsModel, tea.Cmd) {
	name := strings.TrimSpace(m.fields[campaignName])
	goal := strings.TrimSpace(m.fields[campaignGoal])
	audience := strings.TrimSpace(m.fields[campaignAudience])
	if name == "" || goal == "" || audience == "" {
		m.errMsg = "name, goal and audience are required"
		return m, nil
	}
	if m.submitting {
		return m, nil
	}
	m.submitting = true
	m.errMsg = ""

	c := m.client
	return m, func() tea.Msg {
		campaign, err := c.CreateCampaign(context.Background(), client.CreateCampaignRequest{
			Name:     name,
			Goal:     goal,
			Audience: audience,
		})
		return campaignCreatedMsg{campaign: campaign, err: err}
	}
}

func (m campaignsModel) helpKeys() string {
	if m.mode == campaignsCreate {
		return helpEntry("tab", "next") + "  " + helpEntry("ctrl+s", "create") + "  " + helpEntry("esc", "cancel")
	}
	return helpEntry("j/k", "nav") + "  " + helpEntry("[/]", "page") + "  " + helpEntry("enter", "assets") + "  " +
		helpEntry("n", "new") + "  " + helpEntry("s", "status") + "  " + helpEntry("q", "quit")
}

func (m campaignsModel) View() string {
	if m.mode == campaignsCreate {
		return m.viewCreate()
	}
	return m.viewList()
}

func (m campaignsModel) viewList() string {
	if m.loading && m.page == nil {
		return " " + dimStyle.Render("loading campaigns...")
	}
	if m.errMsg != "" && m.page == nil {
		return " " + errStyle.Render("error: "+m.errMsg)
	}
	if m.page == nil || len(m.page.Items) == 0 {
		return " " + dimStyle.Render("no campaigns yet — press n to create one")
	}

	var b strings.Builder
	pages := totalPages(m.page.Total, m.page.Limit)
	fmt.Fprintf(&b, " %s %s\n\n",
		selectedStyle.Render(fmt.Sprintf("Campaigns (%d)", m.page.Total)),
		metaStyle.Render(fmt.Sprintf("page %d/%d", m.page.Page, pages)))

	for i, campaign := range m.page.Items {
		cursor := "  "
		nameStyle := normalStyle
		if i == m.cursor {
			cursor = accentStyle.Render("> ")
			nameStyle = selectedStyle
		}
		status := StatusStyle(campaign.Status).Render(campaign.Status)
		if m.mutating == campaign.ID {
			status = dimStyle.Render("updating...")
		}
		fmt.Fprintf(&b, " %s%-30s %-12s %s\n",
			cursor,
			nameStyle.Render(truncStr(campaign.Name, 28)),
			status,
			dimStyle.Render(truncStr(campaign.Goal, 40)))
	}

	b.WriteString("\n")
	if m.errMsg != "" {
		b.WriteString(" " + errStyle.Render(m.errMsg) + "\n")
	} else if m.notice != "" {
		b.WriteString(" " + okStyle.Render(m.notice) + "\n")
	}
	return b.String()
}

func (m campaignsModel) viewCreate() string {
	var b strings.Builder
	b.WriteString(" " + selectedStyle.Render("New campaign") + "\n\n")

	labels := [numCampaignFields]string{"name", "goal", "audience"}
	for i := campaignField(0); i < numCampaignFields; i++ {
		cursor := " "
		style := metaStyle
		if i == m.focus {
			cursor = ">"
			style = selectedStyle
		}
		value := m.fields[i]
		if i == m.focus && !m.submitting {
			value += "█"
		}
		fmt.Fprintf(&b, " %s %s: %s\n", cursor, style.Render(fmt.Sprintf("%-8s", labels[i])), value)
	}

	b.WriteString("\n")
	if m.submitting {
		b.WriteString(" " + dimStyle.Render("creating...") + "\n")
	} else if m.errMsg != "" {
		b.WriteString(" " + errStyle.Render(m.errMsg) + "\n")
	}
	return b.String()
}
