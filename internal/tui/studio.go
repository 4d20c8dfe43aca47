package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/evoss/adloom/internal/browser"
	"github.com/evoss/adloom/pkg/client"
	"github.com/evoss/adloom/pkg/domain"
)

type studioTab int

const (
	studioText studioTab = iota
	studioImage
	studioSuggest
	numStudioTabs
)

var studioTabNames = [numStudioTabs]string{"Copy", "Image", "Suggest"}

var studioTones = []string{"professional", "playful", "bold", "friendly", "urgent"}

var studioChannels = []string{"social", "email", "landing_page", "search_ad"}

var studioStyles = []string{"photorealistic", "illustration", "minimal", "retro"}

type imageSize struct{ w, h int }

var studioSizes = []imageSize{{1024, 1024}, {1024, 576}, {512, 512}}

type studioModel struct {
	client  *client.Client
	tab     studioTab
	focus   int
	width   int
	height  int
	working bool
	errMsg  string
	notice  string

	campaignID string // digits only
	prompt     string
	toneIdx    int
	channelIdx int
	styleIdx   int
	sizeIdx    int
	assetText  string

	// last results, shown in place of the form
	textResult  *client.GenerateTextResponse
	imageResult *client.GenerateImageResponse
	suggestions []string
	showResult  bool
	saving      bool

	// apply-as-revision prompt shown over the text result
	applying bool
	applyID  string
}

type textGeneratedMsg struct {
	resp *client.GenerateTextResponse
	err  error
}

type imageGeneratedMsg struct {
	resp *client.GenerateImageResponse
	err  error
}

type suggestionsMsg struct {
	resp *client.SuggestResponse
	err  error
}

type studioSavedMsg struct {
	asset *domain.Asset
	err   error
}

type studioAppliedMsg struct {
	asset *domain.Asset
	err   error
}

type studioCopyMsg struct{ err error }

type browserOpenedMsg struct{ err error }

func newStudioModel(c *client.Client) studioModel {
	return studioModel{client: c}
}

func (m studioModel) isEditing() bool {
	return !m.showResult || m.applying
}

// fieldCount is the number of focusable form rows on the active tab.
func (m studioModel) fieldCount() int {
	switch m.tab {
	case studioText:
		return 4 // campaign, prompt, tone, channel
	case studioImage:
		return 4 // campaign, prompt, style, size
	default:
		return 2 // campaign, text
	}
}

// cycling reports whether the focused field is a preset selector rather than
// free text.
func (m studioModel) cycling() bool {
	switch m.tab {
	case studioText:
		return m.focus >= 2
	case studioImage:
		return m.focus >= 2
	}
	return false
}

func (m studioModel) cycle(dir int) studioModel {
	switch {
	case m.tab == studioText && m.focus == 2:
		m.toneIdx = (m.toneIdx + dir + len(studioTones)) % len(studioTones)
	case m.tab == studioText && m.focus == 3:
		m.channelIdx = (m.channelIdx + dir + len(studioChannels)) % len(studioChannels)
	case m.tab == studioImage && m.focus == 2:
		m.styleIdx = (m.styleIdx + dir + len(studioStyles)) % len(studioStyles)
	case m.tab == studioImage && m.focus == 3:
		m.sizeIdx = (m.sizeIdx + dir + len(studioSizes)) % len(studioSizes)
	}
	return m
}

func (m studioModel) Update(msg tea.Msg) (studioModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case textGeneratedMsg:
		m.working = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, expiredCmd(msg.err)
		}
		m.textResult = msg.resp
		m.showResult = true
		m.errMsg = ""
		return m, nil

	case imageGeneratedMsg:
		m.working = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, expiredCmd(msg.err)
		}
		m.imageResult = msg.resp
		m.showResult = true
		m.errMsg = ""
		return m, nil

	case suggestionsMsg:
		m.working = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, expiredCmd(msg.err)
		}
		m.suggestions = msg.resp.Suggestions
		m.showResult = true
		m.errMsg = ""
		return m, nil

	case studioSavedMsg:
		m.saving = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, expiredCmd(msg.err)
		}
		m.notice = fmt.Sprintf("saved as asset %q", msg.asset.Title)
		return m, nil

	case studioAppliedMsg:
		m.saving = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, expiredCmd(msg.err)
		}
		m.applying = false
		m.applyID = ""
		m.notice = fmt.Sprintf("applied to %q as v%d", msg.asset.Title, msg.asset.CurrentVersion)
		return m, nil

	case studioCopyMsg:
		if msg.err != nil {
			m.errMsg = "copy failed: " + msg.err.Error()
		} else {
			m.notice = "copied"
		}
		return m, nil

	case browserOpenedMsg:
		if msg.err != nil {
			m.errMsg = "open failed: " + msg.err.Error()
		} else {
			m.notice = "opened in browser"
		}
		return m, nil

	case tea.KeyMsg:
		if m.showResult {
			return m.updateResult(msg)
		}
		return m.updateForm(msg)
	}
	return m, nil
}

func (m studioModel) updateForm(msg tea.KeyMsg) (studioModel, tea.Cmd) {
	m.notice = ""
	switch msg.String() {
	case "ctrl+t":
		m.tab = (m.tab + 1) % numStudioTabs
		m.focus = 0
		m.errMsg = ""
	case "tab", "down":
		m.focus = (m.focus + 1) % m.fieldCount()
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + m.fieldCount()) % m.fieldCount()
	case "left":
		if m.cycling() {
			m = m.cycle(-1)
		}
	case "right":
		if m.cycling() {
			m = m.cycle(1)
		}
	case "enter", "ctrl+s":
		return m.submit()
	default:
		if m.working || m.cycling() {
			return m, nil
		}
		if m.focus == 0 {
			m.campaignID = editDigits(m.campaignID, msg.String())
		} else if m.tab == studioSuggest {
			m.assetText = editRune(m.assetText, msg.String())
		} else {
			m.prompt = editRune(m.prompt, msg.String())
		}
	}
	return m, nil
}

func (m studioModel) updateResult(msg tea.KeyMsg) (studioModel, tea.Cmd) {
	if m.applying {
		switch msg.String() {
		case "esc":
			m.applying = false
			m.applyID = ""
		case "enter":
			return m.applyRevision()
		default:
			if !m.saving {
				m.applyID = editDigits(m.applyID, msg.String())
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.showResult = false
		m.notice = ""
		m.errMsg = ""
	case "c":
		if text := m.resultText(); text != "" {
			return m, func() tea.Msg {
				return studioCopyMsg{err: clipboard.WriteAll(text)}
			}
		}
	case "o":
		if m.tab == studioImage && m.imageResult != nil {
			url := m.imageResult.ImageURL
			return m, func() tea.Msg {
				return browserOpenedMsg{err: browser.Open(url)}
			}
		}
	case "s":
		return m.saveAsAsset()
	case "a":
		if m.tab == studioText && m.textResult != nil {
			m.applying = true
			m.applyID = ""
			m.errMsg = ""
			m.notice = ""
		}
	case "g":
		// Regenerate with the same inputs.
		m.showResult = false
		return m.submit()
	}
	return m, nil
}

// resultText is what the copy key puts on the clipboard for the active tab.
func (m studioModel) resultText() string {
	switch m.tab {
	case studioText:
		if m.textResult != nil {
			return m.textResult.Text()
		}
	case studioImage:
		if m.imageResult != nil {
			return m.imageResult.ImageURL
		}
	case studioSuggest:
		return strings.Join(m.suggestions, "\n")
	}
	return ""
}

func (m studioModel) campaign() (int64, bool) {
	id, err := strconv.ParseInt(m.campaignID, 10, 64)
	return id, err == nil && id > 0
}

func (m studioModel) submit() (studioModel, tea.Cmd) {
	if m.working {
		return m, nil
	}
	id, ok := m.campaign()
	if !ok {
		m.errMsg = "campaign id is required"
		return m, nil
	}
	c := m.client
	m.errMsg = ""

	switch m.tab {
	case studioText:
		if strings.TrimSpace(m.prompt) == "" {
			m.errMsg = "prompt is required"
			return m, nil
		}
		req := client.GenerateTextRequest{
			CampaignID: id,
			Prompt:     m.prompt,
			Tone:       studioTones[m.toneIdx],
			Channel:    studioChannels[m.channelIdx],
		}
		m.working = true
		return m, func() tea.Msg {
			resp, err := c.GenerateText(context.Background(), req)
			return textGeneratedMsg{resp: resp, err: err}
		}

	case studioImage:
		if strings.TrimSpace(m.prompt) == "" {
			m.errMsg = "prompt is required"
			return m, nil
		}
		size := studioSizes[m.sizeIdx]
		req := client.GenerateImageRequest{
			CampaignID: id,
			Prompt:     m.prompt,
			Style:      studioStyles[m.styleIdx],
			Width:      size.w,
			Height:     size.h,
		}
		m.working = true
		return m, func() tea.Msg {
			resp, err := c.GenerateImage(context.Background(), req)
			return imageGeneratedMsg{resp: resp, err: err}
		}

	default:
		if strings.TrimSpace(m.assetText) == "" {
			m.errMsg = "asset text is required"
			return m, nil
		}
		req := client.SuggestRequest{CampaignID: id, AssetText: m.assetText}
		m.working = true
		return m, func() tea.Msg {
			resp, err := c.Suggest(context.Background(), req)
			return suggestionsMsg{resp: resp, err: err}
		}
	}
}

// applyRevision appends the generated copy as a new version of an existing
// asset.
func (m studioModel) applyRevision() (studioModel, tea.Cmd) {
	if m.saving || m.textResult == nil {
		return m, nil
	}
	id, err := strconv.ParseInt(m.applyID, 10, 64)
	if err != nil || id <= 0 {
		m.errMsg = "asset id is required"
		return m, nil
	}
	m.saving = true
	m.errMsg = ""

	c := m.client
	req := client.ReviseAssetRequest{
		Content:    m.textResult.Text(),
		ChangeNote: "ai studio: " + truncStr(m.prompt, 40),
	}
	return m, func() tea.Msg {
		asset, err := c.ReviseAsset(context.Background(), id, req)
		return studioAppliedMsg{asset: asset, err: err}
	}
}

// saveAsAsset persists the generated result through the asset service so it
// picks up a real ID and version history.
func (m studioModel) saveAsAsset() (studioModel, tea.Cmd) {
	if m.saving {
		return m, nil
	}
	id, ok := m.campaign()
	if !ok {
		return m, nil
	}

	var req client.CreateAssetRequest
	switch m.tab {
	case studioText:
		if m.textResult == nil {
			return m, nil
		}
		req = client.CreateAssetRequest{
			CampaignID: id,
			AssetType:  domain.AssetAdCopy,
			Title:      truncStr(m.prompt, 60),
			Content:    m.textResult.Text(),
		}
	case studioImage:
		if m.imageResult == nil {
			return m, nil
		}
		req = client.CreateAssetRequest{
			CampaignID: id,
			AssetType:  domain.AssetImage,
			Title:      truncStr(m.prompt, 60),
			Content:    m.imageResult.ImageURL,
		}
	default:
		return m, nil
	}

	m.saving = true
	c := m.client
	return m, func() tea.Msg {
		asset, err := c.CreateAsset(context.Background(), req)
		return studioSavedMsg{asset: asset, err: err}
	}
}

func (m studioModel) helpKeys() string {
	if m.showResult {
		if m.applying {
			return helpEntry("enter", "apply") + "  " + helpEntry("esc", "cancel")
		}
		keys := helpEntry("c", "copy") + "  " + helpEntry("g", "regenerate")
		if m.tab != studioSuggest {
			keys += "  " + helpEntry("s", "save asset")
		}
		if m.tab == studioText {
			keys += "  " + helpEntry("a", "apply to asset")
		}
		if m.tab == studioImage {
			keys += "  " + helpEntry("o", "open")
		}
		return keys + "  " + helpEntry("esc", "back")
	}
	return helpEntry("ctrl+t", "mode") + "  " + helpEntry("tab", "next") + "  " +
		helpEntry("←/→", "presets") + "  " + helpEntry("enter", "generate")
}

func (m studioModel) View() string {
	var b strings.Builder
	b.WriteString(" " + m.viewTabs() + "\n\n")
	if m.showResult {
		b.WriteString(m.viewResult())
	} else {
		b.WriteString(m.viewForm())
	}
	return b.String()
}

func (m studioModel) viewTabs() string {
	parts := make([]string, 0, numStudioTabs)
	for i, name := range studioTabNames {
		if studioTab(i) == m.tab {
			parts = append(parts, selectedStyle.Render("["+name+"]"))
		} else {
			parts = append(parts, dimStyle.Render(" "+name+" "))
		}
	}
	return selectedStyle.Render("Studio") + "  " + strings.Join(parts, " ")
}

func (m studioModel) fieldRow(idx int, label, value string, cycles bool) string {
	cursor := " "
	style := metaStyle
	if idx == m.focus {
		cursor = ">"
		style = selectedStyle
		if cycles {
			value = "← " + value + " →"
		} else if !m.working {
			value += "█"
		}
	}
	return fmt.Sprintf(" %s %s: %s\n", cursor, style.Render(fmt.Sprintf("%-10s", label)), value)
}

func (m studioModel) viewForm() string {
	var b strings.Builder
	b.WriteString(m.fieldRow(0, "campaign", m.campaignID, false))

	switch m.tab {
	case studioText:
		b.WriteString(m.fieldRow(1, "prompt", m.prompt, false))
		b.WriteString(m.fieldRow(2, "tone", studioTones[m.toneIdx], true))
		b.WriteString(m.fieldRow(3, "channel", studioChannels[m.channelIdx], true))
	case studioImage:
		b.WriteString(m.fieldRow(1, "prompt", m.prompt, false))
		b.WriteString(m.fieldRow(2, "style", studioStyles[m.styleIdx], true))
		size := studioSizes[m.sizeIdx]
		b.WriteString(m.fieldRow(3, "size", fmt.Sprintf("%dx%d", size.w, size.h), true))
	default:
		b.WriteString(m.fieldRow(1, "asset text", truncStr(m.assetText, 60), false))
	}

	b.WriteString("\n")
	if m.working {
		b.WriteString(" " + dimStyle.Render("generating...") + "\n")
	} else if m.errMsg != "" {
		b.WriteString(" " + errStyle.Render(m.errMsg) + "\n")
	} else if m.notice != "" {
		b.WriteString(" " + okStyle.Render(m.notice) + "\n")
	}
	return b.String()
}

func (m studioModel) viewResult() string {
	var b strings.Builder
	bodyWidth := m.width - 2
	if bodyWidth < 20 {
		bodyWidth = 60
	}

	switch m.tab {
	case studioText:
		if m.textResult == nil {
			return ""
		}
		b.WriteString(" " + okStyle.Render("Generated copy") + "\n\n")
		wrapped := lipgloss.NewStyle().Width(bodyWidth).Render(m.textResult.Text())
		for _, line := range strings.Split(wrapped, "\n") {
			b.WriteString(" " + line + "\n")
		}

	case studioImage:
		if m.imageResult == nil {
			return ""
		}
		b.WriteString(" " + okStyle.Render("Generated image") + "\n\n")
		fmt.Fprintf(&b, " %s %s\n", metaStyle.Render("url:"), m.imageResult.ImageURL)

	case studioSuggest:
		b.WriteString(" " + okStyle.Render(fmt.Sprintf("Suggestions (%d)", len(m.suggestions))) + "\n\n")
		for i, s := range m.suggestions {
			wrapped := lipgloss.NewStyle().Width(bodyWidth - 4).Render(s)
			lines := strings.Split(wrapped, "\n")
			fmt.Fprintf(&b, " %s %s\n", versionStyle.Render(fmt.Sprintf("%2d.", i+1)), lines[0])
			for _, line := range lines[1:] {
				b.WriteString("     " + line + "\n")
			}
		}
	}

	b.WriteString("\n")
	if m.applying {
		cursor := ""
		if !m.saving {
			cursor = "█"
		}
		fmt.Fprintf(&b, " %s %s%s\n", selectedStyle.Render("apply to asset id:"), m.applyID, cursor)
	}
	if m.saving {
		b.WriteString(" " + dimStyle.Render("saving...") + "\n")
	} else if m.errMsg != "" {
		b.WriteString(" " + errStyle.Render(m.errMsg) + "\n")
	} else if m.notice != "" {
		b.WriteString(" " + okStyle.Render(m.notice) + "\n")
	}
	return b.String()
}
