package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	handle, err := Open(filepath.Join(t.TempDir(), "trackeval.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = handle.Close() })
	return NewStore(handle)
}

func TestRunLifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := openTestStore(t)

	require.NoError(t, store.CreateRun(ctx, "run-1", "jira-smoke", 2))

	require.NoError(t, store.RecordOutcome(ctx, OutcomeRecord{
		RunID: "run-1", CaseIndex: 0, CaseID: "create-issue",
		Passed:         true,
		TrajectoryJSON: `{"messages":[]}`,
		VerdictJSON:    `{"passed":true}`,
		StartedAt:      "2026-03-14T09:30:00Z", EndedAt: "2026-03-14T09:30:05Z",
	}))
	require.NoError(t, store.RecordOutcome(ctx, OutcomeRecord{
		RunID: "run-1", CaseIndex: 1, CaseID: "transition-issue",
		Passed: false, ShortCircuited: true, Failure: "agent run: context deadline exceeded",
		StartedAt: "2026-03-14T09:30:05Z", EndedAt: "2026-03-14T09:30:09Z",
	}))
	require.NoError(t, store.FinishRun(ctx, "run-1", 1, 1))

	runs, err := store.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "done", runs[0].Status)
	assert.Equal(t, 2, runs[0].TotalCases)
	assert.Equal(t, 1, runs[0].Passed)
	assert.Equal(t, 1, runs[0].Failed)

	outcomes, err := store.ListOutcomes(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, outcomes, 2)
	assert.Equal(t, "create-issue", outcomes[0].CaseID)
	assert.True(t, outcomes[0].Passed)
	assert.Equal(t, `{"messages":[]}`, outcomes[0].TrajectoryJSON)
	assert.False(t, outcomes[1].Passed)
	assert.True(t, outcomes[1].ShortCircuited)
	assert.Empty(t, outcomes[1].VerdictJSON)
	assert.Contains(t, outcomes[1].Failure, "deadline")
}

func TestFinishRunUnknownID(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)

	err := store.FinishRun(context.Background(), "missing", 0, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown run id")
}

func TestListOutcomesEmptyRun(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := openTestStore(t)

	require.NoError(t, store.CreateRun(ctx, "run-2", "jira-smoke", 0))
	outcomes, err := store.ListOutcomes(ctx, "run-2")
	require.NoError(t, err)
	assert.Empty(t, outcomes)
}

func TestDuplicateOutcomeRejected(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := openTestStore(t)

	require.NoError(t, store.CreateRun(ctx, "run-3", "jira-smoke", 1))
	record := OutcomeRecord{RunID: "run-3", CaseIndex: 0, CaseID: "a", StartedAt: "t", EndedAt: "t"}
	require.NoError(t, store.RecordOutcome(ctx, record))
	assert.Error(t, store.RecordOutcome(ctx, record))
}
