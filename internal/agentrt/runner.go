// Package agentrt runs the agent under evaluation through the ADK runtime
// and exposes its event stream in trajectory form.
package agentrt

import (
	"context"
	"fmt"

	"google.golang.org/adk/agent"
	adkrunner "google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/genai"

	"github.com/trackeval/trackeval/internal/config"
	"github.com/trackeval/trackeval/internal/trajectory"
)

// ADKRunner executes one full agent run per prompt on a fresh in-memory
// session and collects the emitted events in order.
type ADKRunner struct {
	appName   string
	userID    string
	sessionID string
	agent     agent.Agent
}

// NewADKRunner wraps an ADK agent for evaluation runs.
func NewADKRunner(evalCfg config.EvalConfig, ag agent.Agent) (*ADKRunner, error) {
	if ag == nil {
		return nil, fmt.Errorf("agent is required")
	}
	return &ADKRunner{
		appName:   evalCfg.AppName,
		userID:    evalCfg.UserID,
		sessionID: evalCfg.SessionID,
		agent:     ag,
	}, nil
}

// Run submits the prompt, drains the agent's full event stream, and returns
// the events in emission order.
func (r *ADKRunner) Run(ctx context.Context, prompt string) ([]trajectory.Event, error) {
	sessionService := session.InMemoryService()
	runner, err := adkrunner.New(adkrunner.Config{
		AppName:        r.appName,
		Agent:          r.agent,
		SessionService: sessionService,
	})
	if err != nil {
		return nil, fmt.Errorf("create ADK runner: %w", err)
	}

	created, err := sessionService.Create(ctx, &session.CreateRequest{
		AppName:   r.appName,
		UserID:    r.userID,
		SessionID: r.sessionID,
	})
	if err != nil {
		return nil, fmt.Errorf("create ADK session: %w", err)
	}

	message := genai.NewContentFromText(prompt, genai.RoleUser)

	var events []trajectory.Event
	for ev, runErr := range runner.Run(ctx, r.userID, created.Session.ID(), message, agent.RunConfig{}) {
		if runErr != nil {
			return nil, fmt.Errorf("agent run: %w", runErr)
		}
		if ev == nil {
			continue
		}
		events = append(events, eventFromSession(ev))
	}
	return events, nil
}

// eventFromSession converts one ADK session event into the reconstructor's
// boundary shape. genai parts cannot express an empty-but-present text part,
// so only non-empty text survives the conversion.
func eventFromSession(ev *session.Event) trajectory.Event {
	out := trajectory.Event{Author: ev.Author, Timestamp: ev.Timestamp}
	if ev.Content == nil {
		return out
	}
	for _, p := range ev.Content.Parts {
		if p == nil {
			continue
		}
		switch {
		case p.FunctionCall != nil:
			out.Parts = append(out.Parts, trajectory.Part{FunctionCall: p.FunctionCall})
		case p.FunctionResponse != nil:
			out.Parts = append(out.Parts, trajectory.Part{FunctionResponse: p.FunctionResponse})
		case p.Text != "":
			text := p.Text
			out.Parts = append(out.Parts, trajectory.Part{Text: &text})
		}
	}
	return out
}
