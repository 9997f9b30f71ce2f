package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/courseadvisor/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialogueLogRepo_AppendFillsDefaults(t *testing.T) {
	repo := NewSQLiteDialogueLogRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	e := &LogEntry{SessionID: "s1", Kind: LogTurn, Seq: 1, Utterance: "yes"}
	require.NoError(t, repo.Append(ctx, e))
	assert.NotEmpty(t, e.ID)
	assert.False(t, e.CreatedAt.IsZero())

	got, err := repo.ListBySession(ctx, "s1", 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, e.ID, got[0].ID)
	assert.Equal(t, LogTurn, got[0].Kind)
	assert.Equal(t, "yes", got[0].Utterance)
	assert.WithinDuration(t, e.CreatedAt, got[0].CreatedAt, time.Millisecond)
}

func TestDialogueLogRepo_ListOrderAndLimit(t *testing.T) {
	repo := NewSQLiteDialogueLogRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	entries := []LogEntry{
		{SessionID: "s1", Kind: LogTurn, Seq: 1, Utterance: "yes", CreatedAt: base},
		{SessionID: "s1", Kind: LogFailure, Seq: 1, Reason: "No Response", CreatedAt: base.Add(time.Second)},
		{SessionID: "s1", Kind: LogTurn, Seq: 2, Utterance: "add DD2424", CreatedAt: base.Add(2 * time.Second)},
		{SessionID: "s2", Kind: LogTurn, Seq: 1, Utterance: "other session", CreatedAt: base},
	}
	for i := range entries {
		require.NoError(t, repo.Append(ctx, &entries[i]))
	}

	all, err := repo.ListBySession(ctx, "s1", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "yes", all[0].Utterance)
	assert.Equal(t, "No Response", all[1].Reason)
	assert.Equal(t, "add DD2424", all[2].Utterance)

	recent, err := repo.ListBySession(ctx, "s1", 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, LogFailure, recent[0].Kind, "newest two, oldest first")
	assert.Equal(t, 2, recent[1].Seq)
}

func TestDialogueLogRepo_Counts(t *testing.T) {
	repo := NewSQLiteDialogueLogRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	c, err := repo.Counts(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, LogCounts{}, c)

	require.NoError(t, repo.Append(ctx, &LogEntry{SessionID: "s1", Kind: LogTurn, Seq: 1}))
	require.NoError(t, repo.Append(ctx, &LogEntry{SessionID: "s1", Kind: LogTurn, Seq: 2}))
	require.NoError(t, repo.Append(ctx, &LogEntry{SessionID: "s1", Kind: LogFailure, Seq: 1}))

	c, err = repo.Counts(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, LogCounts{Turns: 2, Failures: 1}, c)
}

func TestDialogueLogRepo_RejectsUnknownKind(t *testing.T) {
	repo := NewSQLiteDialogueLogRepo(testutil.NewTestDB(t))

	err := repo.Append(context.Background(), &LogEntry{SessionID: "s1", Kind: "chatter", Seq: 1})
	assert.Error(t, err)
}
