package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/courseadvisor/internal/domain"
)

// FormatCatalog renders courses as a table in the order given.
func FormatCatalog(records []domain.CourseRecord) string {
	if len(records) == 0 {
		return Dim("No courses found.") + "\n"
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		badges := make([]string, len(r.Periods))
		for i, p := range r.Periods {
			badges[i] = PeriodBadge(p)
		}
		rows = append(rows, []string{
			Bold(r.Code),
			Truncate(r.Name, 56),
			domain.FormatCredits(r.Credits),
			strings.Join(badges, " "),
		})
	}

	table := RenderTableAligned(
		[]string{"CODE", "NAME", "CREDITS", "PERIODS"},
		[]Align{AlignLeft, AlignLeft, AlignRight, AlignLeft},
		rows,
	)
	return table + Dim(fmt.Sprintf("%d courses", len(records))) + "\n"
}
