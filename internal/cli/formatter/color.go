package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/courseadvisor/internal/domain"
	"github.com/charmbracelet/lipgloss"
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
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// LoadStyle colors a period's credit load against the overload threshold:
// red once over it, yellow from two thirds of it.
func LoadStyle(load, threshold float64) lipgloss.Style {
	switch {
	case threshold <= 0:
		return StyleFg
	case load > threshold:
		return StyleRed
	case load >= threshold*2/3:
		return StyleYellow
	default:
		return StyleGreen
	}
}

// PeriodBadge renders a period tag in a fixed color per period.
func PeriodBadge(p domain.Period) string {
	switch p {
	case domain.PeriodP1:
		return StyleGreen.Render(string(p))
	case domain.PeriodP2:
		return StyleYellow.Render(string(p))
	case domain.PeriodP3:
		return StyleBlue.Render(string(p))
	case domain.PeriodP4:
		return StylePurple.Render(string(p))
	default:
		return StyleDim.Render("--")
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
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
