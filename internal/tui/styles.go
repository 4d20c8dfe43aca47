package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/evoss/adloom/pkg/domain"
)

type shimmerTickMsg time.Time

func shimmerTickCmd() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(t time.Time) tea.Msg {
		return shimmerTickMsg(t)
	})
}

var (
	accentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#2dd4bf"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#e4e4ec")).Bold(true)
	normalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#c8c8d0"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	metaStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#f87171"))
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#34d474"))
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#d4a844"))
	creditStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#d4a844")).Bold(true)
	versionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#7c9ef4"))

	inputPromptStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#2dd4bf")).Bold(true)
	inputPlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
)

// statusColors maps campaign statuses to their display color.
var statusColors = map[string]string{
	domain.StatusDraft:     "245",
	domain.StatusActive:    "#34d474",
	domain.StatusPaused:    "#d4a844",
	domain.StatusCompleted: "#7c9ef4",
}

// StatusStyle returns the style for a campaign status chip.
func StatusStyle(status string) lipgloss.Style {
	if color, ok := statusColors[status]; ok {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	}
	return dimStyle
}

// typeColors maps asset types to their display color.
var typeColors = map[string]string{
	domain.AssetAdCopy:      "#2dd4bf",
	domain.AssetLandingPage: "#7c9ef4",
	domain.AssetEmail:       "#d4a844",
	domain.AssetSocialPost:  "#c084e0",
	domain.AssetImage:       "#f0a060",
}

// TypeStyle returns the style for an asset type chip.
func TypeStyle(assetType string) lipgloss.Style {
	if color, ok := typeColors[assetType]; ok {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	}
	return dimStyle
}

// deltaStyle colors a credit mutation: grants green, spends red.
func deltaStyle(delta int) lipgloss.Style {
	if delta >= 0 {
		return okStyle
	}
	return errStyle
}

const logoText = "ADLOOM"

// renderShimmerLogo renders the header logo with a slow brightness wave.
func renderShimmerLogo(frame int) string {
	baseR, baseG, baseB := hexToRGB("#2dd4bf")
	var b strings.Builder
	for i, r := range logoText {
		phase := float64(frame)*0.25 - float64(i)*0.7
		lum := 0.65 + 0.35*math.Sin(phase)
		color := fmt.Sprintf("#%02x%02x%02x",
			clampByte(float64(baseR)*lum),
			clampByte(float64(baseG)*lum),
			clampByte(float64(baseB)*lum))
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
		b.WriteString(style.Render(string(r)))
		if i < len(logoText)-1 {
			b.WriteString(" ")
		}
	}
	return b.String()
}

func clampByte(v float64) int {
	n := int(v)
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return n
}

func hexToRGB(hex string) (int, int, int) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 255, 255, 255
	}
	r, _ := strconv.ParseInt(hex[0:2], 16, 0) //nolint:errcheck // white fallback below
	g, _ := strconv.ParseInt(hex[2:4], 16, 0) //nolint:errcheck
	b, _ := strconv.ParseInt(hex[4:6], 16, 0) //nolint:errcheck
	return int(r), int(g), int(b)
}

// helpEntry renders a key/label pair for the bottom help line.
func helpEntry(key, label string) string {
	return accentStyle.Render(key) + " " + metaStyle.Render(label)
}
