package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/firstmap/internal/domain"
	"github.com/alexanderramin/firstmap/internal/scoring"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// MasteryColor returns the style for a section's mastery band.
func MasteryColor(m scoring.Mastery) lipgloss.Style {
	switch m {
	case scoring.MasteryStrong:
		return StyleGreen
	case scoring.MasteryDeveloping:
		return StyleYellow
	case scoring.MasteryNeedsSupport:
		return StyleRed
	default:
		return StyleDim
	}
}

// MasteryBadge returns a colored indicator such as "● Daří se 85 %".
func MasteryBadge(ss scoring.SectionScore) string {
	m := ss.Mastery()
	if m == scoring.MasteryUnscored {
		return StyleDim.Render("○ " + m.Label())
	}
	return MasteryColor(m).Render(fmt.Sprintf("● %s %.0f %%", m.Label(), ss.MasteredPct))
}

// StatusColor returns the style of a status chip.
func StatusColor(s domain.StatusKey) lipgloss.Style {
	switch s {
	case domain.StatusCanDo:
		return StyleGreen
	case domain.StatusWithHelp:
		return StyleYellow
	case domain.StatusCannot:
		return StyleRed
	case domain.StatusNotTested:
		return StyleBlue
	case domain.StatusNotInterested:
		return StylePurple
	default:
		return StyleDim
	}
}

// StatusChip renders the icon of an answer, or a dim dot when unanswered.
func StatusChip(s domain.StatusKey, ok bool) string {
	if !ok || !s.Valid() {
		return StyleDim.Render("·")
	}
	return StatusColor(s).Render(s.Icon())
}

// StatusLegend lists the status keys with their digit shortcuts.
func StatusLegend() string {
	parts := make([]string, 0, len(domain.Statuses))
	for i, s := range domain.Statuses {
		parts = append(parts, fmt.Sprintf("%d %s %s", i+1, StatusColor(s).Render(s.Icon()), s.Label()))
	}
	return Dim(strings.Join(parts, "  "))
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
