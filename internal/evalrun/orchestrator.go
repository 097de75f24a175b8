// Package evalrun drives evaluation cases end to end: agent run, trajectory
// reconstruction, state validation, and per-case outcome aggregation.
package evalrun

import (
	"context"
	"fmt"
	"time"

	"github.com/trackeval/trackeval/internal/evalcase"
	"github.com/trackeval/trackeval/internal/logging"
	"github.com/trackeval/trackeval/internal/trajectory"
	"github.com/trackeval/trackeval/internal/validation"
)

// AgentRunner executes one full agent run for a prompt and returns the raw
// event stream in emission order.
type AgentRunner interface {
	Run(ctx context.Context, prompt string) ([]trajectory.Event, error)
}

// Resetter restores the tool backend to a clean state between cases.
type Resetter interface {
	EnsureReset(ctx context.Context) error
}

// Outcome is the result of one evaluation case. Exactly one Outcome exists
// per case regardless of how the case ended.
type Outcome struct {
	CaseIndex  int
	CaseID     string
	Trajectory *trajectory.Trajectory
	Verdict    *validation.CaseVerdict
	Err        error
	StartedAt  time.Time
	EndedAt    time.Time
}

// Passed reports whether the case ran to completion and, when it declared
// validation, whether the validation held. Cases without validation pass by
// running cleanly.
func (o Outcome) Passed() bool {
	if o.Err != nil {
		return false
	}
	return o.Verdict == nil || o.Verdict.Passed
}

// Orchestrator runs batches of evaluation cases strictly sequentially. The
// tool backend is a single stateful process, so cases never overlap.
type Orchestrator struct {
	agent  AgentRunner
	caller validation.ToolCaller
	reset  Resetter
}

// New creates an Orchestrator. reset may be nil when the backend needs no
// between-case cleanup (tests, dry runs).
func New(agent AgentRunner, caller validation.ToolCaller, reset Resetter) *Orchestrator {
	return &Orchestrator{agent: agent, caller: caller, reset: reset}
}

// RunBatch executes every case and returns one outcome per case, in order.
// A failing case is recorded and the batch moves on; nothing escapes past
// this boundary. The backend reset runs after every case, success or not.
func (o *Orchestrator) RunBatch(ctx context.Context, cases []evalcase.Case) []Outcome {
	outcomes := make([]Outcome, 0, len(cases))
	for i, c := range cases {
		logger := logging.CaseLogger(c.ID)
		logger.Info().Int("case", i+1).Int("total", len(cases)).Msg("running evaluation case")

		outcome := o.runCase(ctx, i, c)
		if outcome.Err != nil {
			logger.Error().Err(outcome.Err).Msg("evaluation case failed")
		} else {
			logger.Info().Bool("passed", outcome.Passed()).Msg("evaluation case finished")
		}
		outcomes = append(outcomes, outcome)

		if o.reset != nil {
			if err := o.reset.EnsureReset(ctx); err != nil {
				logger.Error().Err(err).Msg("tool backend reset failed")
			}
		}
	}
	return outcomes
}

func (o *Orchestrator) runCase(ctx context.Context, index int, c evalcase.Case) (outcome Outcome) {
	outcome = Outcome{CaseIndex: index, CaseID: c.ID, StartedAt: time.Now().UTC()}
	defer func() {
		if r := recover(); r != nil {
			outcome.Err = fmt.Errorf("case %q panicked: %v", c.ID, r)
		}
		outcome.EndedAt = time.Now().UTC()
	}()

	submitted := time.Now().UTC()
	events, err := o.agent.Run(ctx, c.Prompt())
	if err != nil {
		outcome.Err = fmt.Errorf("agent run: %w", err)
		return outcome
	}
	outcome.Trajectory = trajectory.Reconstruct(c.Prompt(), submitted, events)

	if c.Validation != nil {
		verdict := validation.NewRunner(o.caller).Run(ctx, *c.Validation)
		outcome.Verdict = &verdict
	}
	return outcome
}
