package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/evoss/adloom/pkg/client"
	"github.com/evoss/adloom/pkg/domain"
)

type assetsMode int

const (
	assetsList assetsMode = iota
	assetsDetail
	assetsEdit
	assetsCreate
	assetsVersions
)

type assetField int

const (
	assetTitle assetField = iota
	assetContent
	numAssetFields
)

type assetsModel struct {
	client       *client.Client
	campaignID   int64 // 0 = unfiltered
	campaignName string
	page         *domain.Page[domain.Asset]
	pageNum      int
	cursor       int
	loading      bool
	errMsg       string
	notice       string
	mode         assetsMode
	width        int
	height       int

	// detail + edit
	detail      *domain.Asset
	editContent string
	editNote    string
	editFocus   int // 0 content, 1 note
	saving      bool

	// version history
	versions []domain.AssetVersion

	// create form
	createFields [numAssetFields]string
	createFocus  assetField
	typeIdx      int
	creating     bool
}

type assetsLoadedMsg struct {
	page *domain.Page[domain.Asset]
	err  error
}

type assetRevisedMsg struct {
	asset *domain.Asset
	err   error
}

type assetCreatedMsg struct {
	asset *domain.Asset
	err   error
}

type assetSwitchedMsg struct {
	asset *domain.Asset
	err   error
}

type versionsLoadedMsg struct {
	versions []domain.AssetVersion
	err      error
}

type assetCopyMsg struct{ err error }

func newAssetsModel(c *client.Client) assetsModel {
	return assetsModel{client: c, pageNum: 1}
}

// withFilter returns the model scoped to one campaign, resetting paging and
// any open detail.
func (m assetsModel) withFilter(campaignID int64, campaignName string) assetsModel {
	m.campaignID = campaignID
	m.campaignName = campaignName
	m.pageNum = 1
	m.cursor = 0
	m.mode = assetsList
	m.detail = nil
	m.page = nil
	return m
}

func (m assetsModel) Init() tea.Cmd {
	return m.load()
}

func (m assetsModel) load() tea.Cmd {
	c := m.client
	campaignID := m.campaignID
	pageNum := m.pageNum
	return func() tea.Msg {
		page, err := c.ListAssets(context.Background(), campaignID, pageNum, pageSize)
		return assetsLoadedMsg{page: page, err: err}
	}
}

func (m assetsModel) isEditing() bool {
	return m.mode == assetsEdit || m.mode == assetsCreate
}

func (m assetsModel) selected() *domain.Asset {
	if m.page == nil || m.cursor >= len(m.page.Items) {
		return nil
	}
	return &m.page.Items[m.cursor]
}

// replaceAsset swaps the authoritative entity returned by the service into
// the list and the open detail. Views never mutate asset state locally.
func (m assetsModel) replaceAsset(asset *domain.Asset) assetsModel {
	if m.page != nil {
		for i := range m.page.Items {
			if m.page.Items[i].ID == asset.ID {
				m.page.Items[i] = *asset
			}
		}
	}
	if m.detail != nil && m.detail.ID == asset.ID {
		m.detail = asset
	}
	return m
}

func (m assetsModel) Update(msg tea.Msg) (assetsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case assetsLoadedMsg:
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

	case assetRevisedMsg:
		m.saving = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, expiredCmd(msg.err)
		}
		m = m.replaceAsset(msg.asset)
		m.mode = assetsDetail
		m.notice = fmt.Sprintf("saved as v%d", msg.asset.CurrentVersion)
		return m, nil

	case assetCreatedMsg:
		m.creating = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, expiredCmd(msg.err)
		}
		m.mode = assetsList
		m.createFields = [numAssetFields]string{}
		m.createFocus = assetTitle
		m.notice = fmt.Sprintf("created %q (v%d)", msg.asset.Title, msg.asset.CurrentVersion)
		return m, m.load()

	case assetSwitchedMsg:
		m.saving = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, expiredCmd(msg.err)
		}
		m = m.replaceAsset(msg.asset)
		m.notice = fmt.Sprintf("now at v%d", msg.asset.CurrentVersion)
		return m, nil

	case versionsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, expiredCmd(msg.err)
		}
		m.versions = msg.versions
		m.mode = assetsVersions
		return m, nil

	case assetCopyMsg:
		if msg.err != nil {
			m.errMsg = "copy failed: " + msg.err.Error()
		} else {
			m.notice = "content copied"
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case assetsList:
			return m.updateList(msg)
		case assetsDetail:
			return m.updateDetail(msg)
		case assetsEdit:
			return m.updateEdit(msg)
		case assetsCreate:
			return m.updateCreate(msg)
		case assetsVersions:
			return m.updateVersions(msg)
		}
	}
	return m, nil
}

func (m assetsModel) updateList(msg tea.KeyMsg) (assetsModel, tea.Cmd) {
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
	case "f":
		// Drop the campaign filter.
		if m.campaignID != 0 {
			m = m.withFilter(0, "")
			m.loading = true
			return m, m.load()
		}
	case "n":
		if m.campaignID == 0 {
			m.errMsg = "open a campaign first (press 1, then enter)"
			return m, nil
		}
		m.mode = assetsCreate
		m.errMsg = ""
	case "enter":
		if sel := m.selected(); sel != nil {
			asset := *sel
			m.detail = &asset
			m.mode = assetsDetail
			m.errMsg = ""
		}
	}
	return m, nil
}

func (m assetsModel) updateDetail(msg tea.KeyMsg) (assetsModel, tea.Cmd) {
	m.notice = ""
	switch msg.String() {
	case "esc":
		m.mode = assetsList
		m.detail = nil
	case "e":
		if m.detail != nil && !m.saving {
			m.editContent = m.detail.Content
			m.editNote = ""
			m.editFocus = 0
			m.mode = assetsEdit
			m.errMsg = ""
		}
	case "v":
		if m.detail != nil {
			m.loading = true
			c := m.client
			id := m.detail.ID
			return m, func() tea.Msg {
				versions, err := c.ListAssetVersions(context.Background(), id)
				return versionsLoadedMsg{versions: versions, err: err}
			}
		}
	case "u":
		return m.switchVersion(false)
	case "r":
		return m.switchVersion(true)
	case "c":
		if m.detail != nil {
			content := m.detail.Content
			return m, func() tea.Msg {
				return assetCopyMsg{err: clipboard.WriteAll(content)}
			}
		}
	}
	return m, nil
}

func (m assetsModel) switchVersion(redo bool) (assetsModel, tea.Cmd) {
	if m.detail == nil || m.saving {
		return m, nil
	}
	m.saving = true
	c := m.client
	id := m.detail.ID
	return m, func() tea.Msg {
		var asset *domain.Asset
		var err error
		if redo {
			asset, err = c.RedoAsset(context.Background(), id)
		} else {
			asset, err = c.UndoAsset(context.Background(), id)
		}
		return assetSwitchedMsg{asset: asset, err: err}
	}
}

func (m assetsModel) updateEdit(msg tea.KeyMsg) (assetsModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = assetsDetail
		m.errMsg = ""
	case "tab":
		m.editFocus = (m.editFocus + 1) % 2
	case "ctrl+s":
		return m.submitRevision()
	case "enter":
		if m.editFocus == 0 {
			m.editContent += "\n"
		} else {
			return m.submitRevision()
		}
	default:
		if !m.saving {
			if m.editFocus == 0 {
				m.editContent = editRune(m.editContent, msg.String())
			} else {
				m.editNote = editRune(m.editNote, msg.String())
			}
		}
	}
	return m, nil
}

// submitRevision sends the edit to the asset service. The new version number
// comes back from the service; the view shows nothing until it does.
func (m assetsModel) submitRevision() (assetsModel, tea.Cmd) {
	if m.detail == nil || m.saving {
		return m, nil
	}
	m.saving = true
	m.errMsg = ""

	c := m.client
	id := m.detail.ID
	req := client.ReviseAssetRequest{
		Content:    m.editContent,
		ChangeNote: strings.TrimSpace(m.editNote),
	}
	return m, func() tea.Msg {
		asset, err := c.ReviseAsset(context.Background(), id, req)
		return assetRevisedMsg{asset: asset, err: err}
	}
}

func (m assetsModel) updateCreate(msg tea.KeyMsg) (assetsModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = assetsList
		m.errMsg = ""
	case "ctrl+s":
		return m.submitCreate()
	case "tab", "down":
		m.createFocus = (m.createFocus + 1) % numAssetFields
	case "shift+tab", "up":
		m.createFocus = (m.createFocus - 1 + numAssetFields) % numAssetFields
	case "left", "ctrl+h":
		m.typeIdx = (m.typeIdx - 1 + len(domain.AssetTypes)) % len(domain.AssetTypes)
	case "right", "ctrl+l":
		m.typeIdx = (m.typeIdx + 1) % len(domain.AssetTypes)
	case "enter":
		if m.createFocus == assetContent {
			m.createFields[assetContent] += "\n"
		} else {
			m.createFocus++
		}
	default:
		if !m.creating {
			m.createFields[m.createFocus] = editRune(m.createFields[m.createFocus], msg.String())
		}
	}
	return m, nil
}

func (m assetsModel) submitCreate() (assetsModel, tea.Cmd) {
	title := strings.TrimSpace(m.createFields[assetTitle])
	if title == "" {
		m.errMsg = "title is required"
		return m, nil
	}
	if m.creating {
		return m, nil
	}
	m.creating = true
	m.errMsg = ""

	c := m.client
	req := client.CreateAssetRequest{
		CampaignID: m.campaignID,
		AssetType:  domain.AssetTypes[m.typeIdx],
		Title:      title,
		Content:    m.createFields[assetContent],
	}
	return m, func() tea.Msg {
		asset, err := c.CreateAsset(context.Background(), req)
		return assetCreatedMsg{asset: asset, err: err}
	}
}

func (m assetsModel) updateVersions(msg tea.KeyMsg) (assetsModel, tea.Cmd) {
	switch msg.String() {
	case "esc", "v":
		m.mode = assetsDetail
		m.versions = nil
	}
	return m, nil
}

func (m assetsModel) helpKeys() string {
	switch m.mode {
	case assetsDetail:
		return helpEntry("e", "edit") + "  " + helpEntry("v", "history") + "  " + helpEntry("u/r", "undo/redo") + "  " +
			helpEntry("c", "copy") + "  " + helpEntry("esc", "back")
	case assetsEdit:
		return helpEntry("tab", "note") + "  " + helpEntry("ctrl+s", "save") + "  " + helpEntry("esc", "cancel")
	case assetsCreate:
		return helpEntry("tab", "next") + "  " + helpEntry("←/→", "type") + "  " + helpEntry("ctrl+s", "create") + "  " + helpEntry("esc", "cancel")
	case assetsVersions:
		return helpEntry("esc", "back")
	}
	keys := helpEntry("j/k", "nav") + "  " + helpEntry("[/]", "page") + "  " + helpEntry("enter", "open") + "  " + helpEntry("n", "new")
	if m.campaignID != 0 {
		keys += "  " + helpEntry("f", "unfilter")
	}
	return keys + "  " + helpEntry("q", "quit")
}

func (m assetsModel) View() string {
	switch m.mode {
	case assetsDetail:
		return m.viewDetail()
	case assetsEdit:
		return m.viewEdit()
	case assetsCreate:
		return m.viewCreate()
	case assetsVersions:
		return m.viewVersions()
	}
	return m.viewList()
}

func (m assetsModel) viewList() string {
	if m.loading && m.page == nil {
		return " " + dimStyle.Render("loading assets...")
	}
	if m.errMsg != "" && m.page == nil {
		return " " + errStyle.Render("error: "+m.errMsg)
	}

	title := "Assets"
	if m.campaignName != "" {
		title = "Assets — " + m.campaignName
	}

	if m.page == nil || len(m.page.Items) == 0 {
		header := " " + selectedStyle.Render(title) + "\n\n"
		return header + " " + dimStyle.Render("no assets yet — press n to create one")
	}

	var b strings.Builder
	pages := totalPages(m.page.Total, m.page.Limit)
	fmt.Fprintf(&b, " %s %s\n\n",
		selectedStyle.Render(fmt.Sprintf("%s (%d)", title, m.page.Total)),
		metaStyle.Render(fmt.Sprintf("page %d/%d", m.page.Page, pages)))

	for i, asset := range m.page.Items {
		cursor := "  "
		titleStyle := normalStyle
		if i == m.cursor {
			cursor = accentStyle.Render("> ")
			titleStyle = selectedStyle
		}
		fmt.Fprintf(&b, " %s%-32s %-14s %s  %s\n",
			cursor,
			titleStyle.Render(truncStr(asset.Title, 30)),
			TypeStyle(asset.AssetType).Render(asset.AssetType),
			versionStyle.Render(fmt.Sprintf("v%d", asset.CurrentVersion)),
			metaStyle.Render(formatTime(asset.UpdatedAt)))
	}

	b.WriteString("\n")
	if m.errMsg != "" {
		b.WriteString(" " + errStyle.Render(m.errMsg) + "\n")
	} else if m.notice != "" {
		b.WriteString(" " + okStyle.Render(m.notice) + "\n")
	}
	return b.String()
}

func (m assetsModel) viewDetail() string {
	if m.detail == nil {
		return " " + dimStyle.Render("no asset selected")
	}
	a := m.detail

	var b strings.Builder
	fmt.Fprintf(&b, " %s  %s  %s\n",
		selectedStyle.Render(a.Title),
		TypeStyle(a.AssetType).Render(a.AssetType),
		versionStyle.Render(fmt.Sprintf("v%d", a.CurrentVersion)))
	fmt.Fprintf(&b, " %s\n\n", metaStyle.Render("updated "+formatTime(a.UpdatedAt)))

	bodyWidth := m.width - 2
	if bodyWidth < 20 {
		bodyWidth = 60
	}
	content := a.Content
	if content == "" {
		content = dimStyle.Render("(empty — press e to write content)")
	}
	wrapped := lipgloss.NewStyle().Width(bodyWidth).Render(content)
	for _, line := range strings.Split(wrapped, "\n") {
		b.WriteString(" " + line + "\n")
	}

	b.WriteString("\n")
	if m.saving {
		b.WriteString(" " + dimStyle.Render("working...") + "\n")
	} else if m.errMsg != "" {
		b.WriteString(" " + errStyle.Render(m.errMsg) + "\n")
	} else if m.notice != "" {
		b.WriteString(" " + okStyle.Render(m.notice) + "\n")
	}
	return b.String()
}

func (m assetsModel) viewEdit() string {
	if m.detail == nil {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, " %s %s\n\n",
		selectedStyle.Render("Revise "+m.detail.Title),
		versionStyle.Render(fmt.Sprintf("(editing v%d)", m.detail.CurrentVersion)))

	contentLabel := metaStyle
	noteLabel := metaStyle
	if m.editFocus == 0 {
		contentLabel = selectedStyle
	} else {
		noteLabel = selectedStyle
	}

	b.WriteString(" " + contentLabel.Render("content:") + "\n")
	content := m.editContent
	if m.editFocus == 0 && !m.saving {
		content += "█"
	}
	bodyWidth := m.width - 2
	if bodyWidth < 20 {
		bodyWidth = 60
	}
	wrapped := lipgloss.NewStyle().Width(bodyWidth).Render(content)
	for _, line := range strings.Split(wrapped, "\n") {
		b.WriteString(" " + line + "\n")
	}

	note := m.editNote
	if m.editFocus == 1 && !m.saving {
		note += "█"
	}
	fmt.Fprintf(&b, "\n %s %s\n", noteLabel.Render("change note:"), note)

	b.WriteString("\n")
	if m.saving {
		b.WriteString(" " + dimStyle.Render("saving revision...") + "\n")
	} else if m.errMsg != "" {
		b.WriteString(" " + errStyle.Render(m.errMsg) + "\n")
	}
	return b.String()
}

func (m assetsModel) viewCreate() string {
	var b strings.Builder
	fmt.Fprintf(&b, " %s\n\n", selectedStyle.Render("New asset — "+m.campaignName))

	assetType := domain.AssetTypes[m.typeIdx]
	fmt.Fprintf(&b, "   %s: %s  %s\n",
		metaStyle.Render("type    "),
		TypeStyle(assetType).Render(assetType),
		dimStyle.Render("(←/→ to cycle)"))

	labels := [numAssetFields]string{"title", "content"}
	for i := assetField(0); i < numAssetFields; i++ {
		cursor := " "
		style := metaStyle
		if i == m.createFocus {
			cursor = ">"
			style = selectedStyle
		}
		value := m.createFields[i]
		if i == m.createFocus && !m.creating {
			value += "█"
		}
		fmt.Fprintf(&b, " %s %s: %s\n", cursor, style.Render(fmt.Sprintf("%-8s", labels[i])), value)
	}

	b.WriteString("\n")
	if m.creating {
		b.WriteString(" " + dimStyle.Render("creating...") + "\n")
	} else if m.errMsg != "" {
		b.WriteString(" " + errStyle.Render(m.errMsg) + "\n")
	}
	return b.String()
}

func (m assetsModel) viewVersions() string {
	if m.detail == nil {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, " %s %s\n\n",
		selectedStyle.Render("History — "+m.detail.Title),
		versionStyle.Render(fmt.Sprintf("(current v%d)", m.detail.CurrentVersion)))

	if len(m.versions) == 0 {
		b.WriteString(" " + dimStyle.Render("no versions recorded") + "\n")
		return b.String()
	}

	for _, v := range m.versions {
		marker := "  "
		numStyle := versionStyle
		if v.VersionNumber == m.detail.CurrentVersion {
			marker = accentStyle.Render("> ")
			numStyle = selectedStyle
		}
		note := v.ChangeNote
		if note == "" {
			note = "-"
		}
		fmt.Fprintf(&b, " %s%s  %-20s %s\n",
			marker,
			numStyle.Render(fmt.Sprintf("v%-3d", v.VersionNumber)),
			dimStyle.Render(truncStr(note, 20)),
			normalStyle.Render(truncStr(strings.ReplaceAll(v.Content, "\n", " "), 50)))
	}
	return b.String()
}
