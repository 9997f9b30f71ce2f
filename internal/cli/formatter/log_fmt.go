package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/courseadvisor/internal/domain"
	"github.com/alexanderramin/courseadvisor/internal/repository"
	"github.com/alexanderramin/courseadvisor/internal/service"
)

// FormatDialogueLog renders the counters and entries of one session.
func FormatDialogueLog(sessionID string, counts repository.LogCounts, entries []repository.LogEntry) string {
	var b strings.Builder
	b.WriteString(Header("Dialogue log"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n", Dim("Session:"), sessionID)
	fmt.Fprintf(&b, "%s %s  %s %s\n",
		Dim("Turns:"), StyleGreen.Render(fmt.Sprint(counts.Turns)),
		Dim("Failures:"), failureCount(counts.Failures))
	if len(entries) == 0 {
		b.WriteString(Dim("No entries.") + "\n")
		return b.String()
	}
	b.WriteString("\n")
	for _, e := range entries {
		line := service.FormatLogLine(e)
		if e.Kind == repository.LogFailure {
			line = strings.Replace(line, "[FAIL]", StyleRed.Render("[FAIL]"), 1)
		} else {
			line = strings.Replace(line, "[OK]", StyleGreen.Render("[OK]"), 1)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func failureCount(n int) string {
	if n == 0 {
		return StyleGreen.Render("0")
	}
	return StyleRed.Render(fmt.Sprint(n))
}

// FormatSessions lists saved schedules, newest first.
func FormatSessions(list []repository.ScheduleSummary) string {
	if len(list) == 0 {
		return Dim("No saved schedules.") + "\n"
	}
	rows := make([][]string, 0, len(list))
	for _, s := range list {
		rows = append(rows, []string{
			TruncID(s.SessionID),
			fmt.Sprint(s.ItemCount),
			domain.FormatCredits(s.TotalCredits),
			HumanTimestamp(s.SavedAt),
		})
	}
	return RenderTableAligned(
		[]string{"SESSION", "COURSES", "CREDITS", "SAVED"},
		[]Align{AlignLeft, AlignRight, AlignRight, AlignLeft},
		rows,
	)
}
