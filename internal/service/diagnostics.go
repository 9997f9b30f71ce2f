package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/courseadvisor/internal/dialogue"
	"github.com/alexanderramin/courseadvisor/internal/repository"
)

var _ dialogue.Diagnostics = (*DiagnosticsRecorder)(nil)

// DiagnosticsRecorder appends dialogue turns and failures of one session to
// the dialogue log.
type DiagnosticsRecorder struct {
	sessionID string
	logs      repository.DialogueLogRepo
	now       func() time.Time
}

// NewDiagnosticsRecorder creates a recorder for sessionID.
func NewDiagnosticsRecorder(sessionID string, logs repository.DialogueLogRepo) *DiagnosticsRecorder {
	return &DiagnosticsRecorder{
		sessionID: sessionID,
		logs:      logs,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (d *DiagnosticsRecorder) RecordTurn(ctx context.Context, turn int, utterance string) error {
	return d.logs.Append(ctx, &repository.LogEntry{
		SessionID: d.sessionID,
		Kind:      repository.LogTurn,
		Seq:       turn,
		Utterance: utterance,
		CreatedAt: d.now(),
	})
}

func (d *DiagnosticsRecorder) RecordFailure(ctx context.Context, count int, reason, utterance string) error {
	return d.logs.Append(ctx, &repository.LogEntry{
		SessionID: d.sessionID,
		Kind:      repository.LogFailure,
		Seq:       count,
		Reason:    reason,
		Utterance: utterance,
		CreatedAt: d.now(),
	})
}

const logTimeLayout = "2006-01-02 15:04:05"

// FormatLogLine renders an entry in the dialogue log text format:
//
//	[2026-03-01 10:00:00] [OK] Turn: 3 | User: add deep learning
//	[2026-03-01 10:00:05] [FAIL] Count: 1 | Reason: No Response | User said: Silence/No Response
func FormatLogLine(e repository.LogEntry) string {
	ts := e.CreatedAt.Local().Format(logTimeLayout)
	if e.Kind == repository.LogTurn {
		return fmt.Sprintf("[%s] [OK] Turn: %d | User: %s", ts, e.Seq, e.Utterance)
	}
	said := "Silence/No Response"
	if e.Utterance != "" {
		said = "'" + e.Utterance + "'"
	}
	return fmt.Sprintf("[%s] [FAIL] Count: %d | Reason: %s | User said: %s", ts, e.Seq, e.Reason, said)
}
