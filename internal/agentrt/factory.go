package agentrt

import (
	"fmt"
	"io"
	"strings"

	"github.com/metalagman/ainvoke/adk"
	"google.golang.org/adk/agent"

	"github.com/trackeval/trackeval/internal/config"
)

type agentSpec struct {
	defaultSubcommand string
	extraFlags        []string
}

var agentSpecs = map[string]agentSpec{
	"codex": {
		defaultSubcommand: "exec",
		extraFlags:        []string{"--full-auto", "--skip-git-repo-check"},
	},
	"opencode": {
		defaultSubcommand: "run",
	},
	"gemini": {
		extraFlags: []string{"--output-format", "text", "--approval-mode", "yolo"},
	},
	"claude": {
		extraFlags: []string{"--output-format", "text", "--print", "--dangerously-skip-permissions"},
	},
}

// NewAgent builds the ADK agent under evaluation from configuration. Known
// agent types run their CLI through an exec agent; "exec" runs an arbitrary
// command.
func NewAgent(cfg config.AgentConfig, runDir string, stdout, stderr io.Writer) (agent.Agent, error) {
	var cmd []string
	if cfg.Type == "exec" {
		if len(cfg.Cmd) == 0 {
			return nil, fmt.Errorf("exec agent requires cmd")
		}
		cmd = cfg.Cmd
	} else if spec, ok := agentSpecs[cfg.Type]; ok {
		cmd = prepareCmd(cfg.Type, spec, cfg.Model)
	} else {
		return nil, fmt.Errorf("unknown agent type %q", cfg.Type)
	}

	opts := []adk.OptExecAgentOptionsSetter{
		adk.WithExecAgentRunDir(runDir),
		adk.WithExecAgentUseTTY(cfg.UseTTY != nil && *cfg.UseTTY),
		adk.WithExecAgentStdout(writerOrDiscard(stdout)),
		adk.WithExecAgentStderr(writerOrDiscard(stderr)),
		adk.WithExecAgentPrompt(trackerAgentPrompt()),
	}

	ag, err := adk.NewExecAgent(
		"tracker-agent",
		"Issue tracker agent under evaluation",
		cmd,
		opts...,
	)
	if err != nil {
		return nil, fmt.Errorf("create exec agent: %w", err)
	}
	return ag, nil
}

func prepareCmd(baseCmd string, spec agentSpec, model string) []string {
	out := []string{baseCmd}
	if spec.defaultSubcommand != "" {
		out = append(out, spec.defaultSubcommand)
	}
	if model != "" {
		out = append(out, "--model", model)
	}
	out = append(out, spec.extraFlags...)
	return out
}

func writerOrDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}

func trackerAgentPrompt() string {
	var b strings.Builder
	b.WriteString("You operate an issue tracker through the available Jira tools.\n")
	b.WriteString("- Carry out the user's request by calling tools; do not just describe what you would do.\n")
	b.WriteString("- Use the exact project keys, summaries, and field values the user provides.\n")
	b.WriteString("- When you are done, reply with a short confirmation that names the issues you touched.\n")
	return b.String()
}
