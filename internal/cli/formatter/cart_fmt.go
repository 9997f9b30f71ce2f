package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/courseadvisor/internal/domain"
)

const loadBarWidth = 16

// FormatSchedule renders cart items grouped by period, followed by one load
// bar per period in use and the total.
func FormatSchedule(items []domain.ScheduledCourse, threshold float64) string {
	if len(items) == 0 {
		return Dim("Your schedule is empty.") + "\n"
	}

	sorted := append([]domain.ScheduledCourse(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Period < sorted[j].Period })

	rows := make([][]string, 0, len(sorted))
	loads := make(map[domain.Period]float64)
	var total float64
	for _, it := range sorted {
		rows = append(rows, []string{
			PeriodBadge(it.Period),
			Bold(it.Code),
			Truncate(it.Name, 48),
			domain.FormatCredits(it.Credits),
		})
		loads[it.Period] += it.Credits
		total += it.Credits
	}

	var b strings.Builder
	b.WriteString(RenderTableAligned(
		[]string{"PERIOD", "CODE", "NAME", "CREDITS"},
		[]Align{AlignLeft, AlignLeft, AlignLeft, AlignRight},
		rows,
	))
	b.WriteString("\n")
	for _, p := range domain.Periods() {
		load, ok := loads[p]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "%s  %s\n", PeriodBadge(p), RenderLoad(load, threshold, loadBarWidth))
	}
	fmt.Fprintf(&b, "\n%s %s\n", Dim("Total:"), Bold(domain.FormatCredits(total)+" credits"))
	return b.String()
}
