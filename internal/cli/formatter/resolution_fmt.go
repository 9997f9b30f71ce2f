package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/courseadvisor/internal/domain"
	"github.com/alexanderramin/courseadvisor/internal/resolver"
)

// FormatResolution explains how a query resolved.
func FormatResolution(res resolver.Resolution) string {
	var b strings.Builder
	b.WriteString(Header("Resolution"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %q\n", Dim("Query:"), res.Query)
	fmt.Fprintf(&b, "%s %s\n", Dim("Phase:"), phaseLabel(res.Phase))
	if res.Phase == resolver.PhaseName {
		fmt.Fprintf(&b, "%s %.2f\n", Dim("Score:"), res.Score)
	}

	if !res.Resolved {
		b.WriteString(StyleRed.Render("✖ No course matched") + "\n")
		return b.String()
	}
	c := res.Course
	fmt.Fprintf(&b, "%s %s %s\n",
		StyleGreen.Render("✔"),
		Bold(c.String()),
		Dim(fmt.Sprintf("(%s credits, %s)", domain.FormatCredits(c.Credits), c.PeriodLabel())),
	)
	return b.String()
}

func phaseLabel(p resolver.Phase) string {
	switch p {
	case resolver.PhaseCode:
		return StyleBlue.Render("course code")
	case resolver.PhaseName:
		return StylePurple.Render("name similarity")
	default:
		return Dim("none")
	}
}
