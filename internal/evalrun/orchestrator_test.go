package evalrun

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackeval/trackeval/internal/evalcase"
	"github.com/trackeval/trackeval/internal/trajectory"
	"github.com/trackeval/trackeval/internal/validation"
)

type stubAgent struct {
	errOn   map[string]error
	panicOn map[string]bool
	prompts []string
}

func (a *stubAgent) Run(_ context.Context, prompt string) ([]trajectory.Event, error) {
	a.prompts = append(a.prompts, prompt)
	if a.panicOn[prompt] {
		panic("runner state corrupted")
	}
	if err, ok := a.errOn[prompt]; ok {
		return nil, err
	}
	return []trajectory.Event{
		{Author: "agent", Timestamp: time.Unix(100, 0).UTC(), Parts: []trajectory.Part{trajectory.TextPart("done")}},
	}, nil
}

type stubCaller struct {
	response map[string]any
	calls    int
}

func (c *stubCaller) Call(context.Context, string, map[string]any) (map[string]any, error) {
	c.calls++
	return c.response, nil
}

type stubResetter struct {
	resets int
	err    error
}

func (r *stubResetter) EnsureReset(context.Context) error {
	r.resets++
	return r.err
}

func threeCases() []evalcase.Case {
	return []evalcase.Case{
		{ID: "one", InitialMessage: "first prompt"},
		{ID: "two", InitialMessage: "second prompt"},
		{ID: "three", InitialMessage: "third prompt"},
	}
}

func TestRunBatchIsolatesFailures(t *testing.T) {
	t.Parallel()

	agent := &stubAgent{errOn: map[string]error{"second prompt": errors.New("model unavailable")}}
	reset := &stubResetter{}
	outcomes := New(agent, &stubCaller{}, reset).RunBatch(context.Background(), threeCases())

	require.Len(t, outcomes, 3)
	assert.True(t, outcomes[0].Passed())
	assert.False(t, outcomes[1].Passed())
	require.Error(t, outcomes[1].Err)
	assert.Contains(t, outcomes[1].Err.Error(), "model unavailable")
	assert.Nil(t, outcomes[1].Trajectory)
	assert.True(t, outcomes[2].Passed())

	assert.Equal(t, []string{"first prompt", "second prompt", "third prompt"}, agent.prompts,
		"a failing case must not stop later cases")
}

func TestRunBatchRecoversPanics(t *testing.T) {
	t.Parallel()

	agent := &stubAgent{panicOn: map[string]bool{"second prompt": true}}
	outcomes := New(agent, &stubCaller{}, nil).RunBatch(context.Background(), threeCases())

	require.Len(t, outcomes, 3)
	require.Error(t, outcomes[1].Err)
	assert.Contains(t, outcomes[1].Err.Error(), "panicked")
	assert.True(t, outcomes[2].Passed())
}

func TestRunBatchResetsAfterEveryCase(t *testing.T) {
	t.Parallel()

	agent := &stubAgent{errOn: map[string]error{"third prompt": errors.New("boom")}}
	reset := &stubResetter{}
	New(agent, &stubCaller{}, reset).RunBatch(context.Background(), threeCases())

	assert.Equal(t, 3, reset.resets, "reset runs after every case, success or failure")
}

func TestRunBatchResetFailureDoesNotAbort(t *testing.T) {
	t.Parallel()

	agent := &stubAgent{}
	reset := &stubResetter{err: errors.New("docker daemon gone")}
	outcomes := New(agent, &stubCaller{}, reset).RunBatch(context.Background(), threeCases())

	require.Len(t, outcomes, 3)
	assert.Equal(t, 3, reset.resets)
	for _, o := range outcomes {
		assert.True(t, o.Passed())
	}
}

func TestRunCaseRunsValidation(t *testing.T) {
	t.Parallel()

	caller := &stubCaller{response: map[string]any{"issues": []any{map[string]any{"summary": "X"}}}}
	cases := []evalcase.Case{{
		ID:             "validated",
		InitialMessage: "create it",
		Validation: &validation.StateValidationConfig{
			Calls: []validation.ApiCallValidation{{
				ToolName:       "jira_search",
				ExpectedFields: map[string]any{"issues.0.summary": "X"},
			}},
		},
	}}

	outcomes := New(&stubAgent{}, caller, nil).RunBatch(context.Background(), cases)
	require.Len(t, outcomes, 1)
	require.NotNil(t, outcomes[0].Verdict)
	assert.True(t, outcomes[0].Verdict.Passed)
	assert.True(t, outcomes[0].Passed())
	assert.Equal(t, 1, caller.calls)
}

func TestRunCaseWithoutValidationHasNoVerdict(t *testing.T) {
	t.Parallel()

	caller := &stubCaller{}
	outcomes := New(&stubAgent{}, caller, nil).RunBatch(context.Background(), threeCases()[:1])

	require.Len(t, outcomes, 1)
	assert.Nil(t, outcomes[0].Verdict)
	assert.True(t, outcomes[0].Passed())
	assert.Zero(t, caller.calls)

	require.NotNil(t, outcomes[0].Trajectory)
	require.Len(t, outcomes[0].Trajectory.Messages, 2)
	prompt := outcomes[0].Trajectory.Messages[0].(*trajectory.UserMessage)
	assert.Equal(t, "first prompt", prompt.Text)
}

func TestOutcomePassedReflectsVerdict(t *testing.T) {
	t.Parallel()

	failed := validation.CaseVerdict{Passed: false}
	assert.False(t, Outcome{Verdict: &failed}.Passed())
	passed := validation.CaseVerdict{Passed: true}
	assert.True(t, Outcome{Verdict: &passed}.Passed())
	assert.False(t, Outcome{Err: errors.New("x")}.Passed())
}
