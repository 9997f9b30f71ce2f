package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/courseadvisor/internal/domain"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderLoad renders a period load bar like [████░░░░] 7.5/15.
// The bar fills towards the threshold and is colored by LoadStyle.
func RenderLoad(load, threshold float64, width int) string {
	if width < 2 {
		width = 2
	}
	pct := 0.0
	if threshold > 0 {
		pct = load / threshold
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}

	filled := int(pct * float64(width))
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := LoadStyle(load, threshold)
	return fmt.Sprintf("[%s] %s", style.Render(bar),
		style.Render(domain.FormatCredits(load))+Dim("/"+trimCredits(threshold)))
}

// trimCredits prints a threshold without a trailing ".0".
func trimCredits(c float64) string {
	return strings.TrimSuffix(domain.FormatCredits(c), ".0")
}
