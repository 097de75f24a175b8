package validation

import (
	"context"

	"github.com/rs/zerolog/log"
)

// ToolCaller issues one named tool call against the tracker backend and
// returns its decoded JSON response.
type ToolCaller interface {
	Call(ctx context.Context, toolName string, arguments map[string]any) (map[string]any, error)
}

// Runner executes a StateValidationConfig against a ToolCaller.
type Runner struct {
	caller ToolCaller
}

// NewRunner creates a Runner backed by the given caller.
func NewRunner(caller ToolCaller) *Runner {
	return &Runner{caller: caller}
}

// Run issues the declared calls strictly in order and aggregates their
// verdicts. A transport failure marks that call failed with a distinct
// reason but does not abort the plan unless fail_fast is set. With
// fail_fast, the first failing call stops the plan; remaining calls are
// never issued and the case verdict is marked short-circuited.
func (r *Runner) Run(ctx context.Context, cfg StateValidationConfig) CaseVerdict {
	verdict := CaseVerdict{Passed: true}

	for i, call := range cfg.Calls {
		cv := r.runCall(ctx, call)
		verdict.Calls = append(verdict.Calls, cv)
		if cv.Passed {
			continue
		}
		verdict.Passed = false
		if cfg.FailFast {
			if i < len(cfg.Calls)-1 {
				verdict.ShortCircuited = true
				log.Warn().Str("tool", call.ToolName).Int("skipped", len(cfg.Calls)-i-1).
					Msg("validation failed, fail_fast skipping remaining calls")
			}
			break
		}
	}

	return verdict
}

func (r *Runner) runCall(ctx context.Context, call ApiCallValidation) CallVerdict {
	response, err := r.caller.Call(ctx, call.ToolName, call.Arguments)
	if err != nil {
		log.Error().Err(err).Str("tool", call.ToolName).Msg("validation tool call failed")
		return CallVerdict{
			ToolName:       call.ToolName,
			Passed:         false,
			TransportError: err.Error(),
		}
	}
	return Evaluate(call, response)
}
