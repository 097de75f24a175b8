package mcptool

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/trackeval/trackeval/internal/config"
)

// Supervisor owns the backend container lifecycle. The mcp-atlassian
// container keeps per-session state and is known to hang on reuse, so the
// orchestrator resets it between cases through EnsureReset.
type Supervisor struct {
	mcpCfg config.MCPConfig
	jira   config.JiraConfig
	client *Client
}

// NewSupervisor creates a supervisor; call Start before issuing tool calls.
func NewSupervisor(mcpCfg config.MCPConfig, jira config.JiraConfig) *Supervisor {
	return &Supervisor{mcpCfg: mcpCfg, jira: jira}
}

// Start removes any stale container and connects a fresh MCP session.
func (s *Supervisor) Start(ctx context.Context) error {
	if err := s.removeContainer(ctx); err != nil {
		return err
	}
	client, err := Connect(ctx, s.mcpCfg, s.jira)
	if err != nil {
		return err
	}
	s.client = client
	return nil
}

// Call proxies a tool call to the current session.
func (s *Supervisor) Call(ctx context.Context, toolName string, arguments map[string]any) (map[string]any, error) {
	if s.client == nil {
		return nil, fmt.Errorf("MCP backend not started")
	}
	return s.client.Call(ctx, toolName, arguments)
}

// ListTools proxies to the current session.
func (s *Supervisor) ListTools(ctx context.Context) ([]string, error) {
	if s.client == nil {
		return nil, fmt.Errorf("MCP backend not started")
	}
	return s.client.ListTools(ctx)
}

// EnsureReset tears the backend down and brings a clean instance up. It runs
// after every case, success or failure; a reset that fails is reported so the
// caller can decide whether to continue.
func (s *Supervisor) EnsureReset(ctx context.Context) error {
	if s.client != nil {
		if err := s.client.Close(); err != nil {
			log.Warn().Err(err).Msg("close MCP session before reset")
		}
		s.client = nil
	}
	return s.Start(ctx)
}

// Close shuts the session down and removes the container.
func (s *Supervisor) Close(ctx context.Context) {
	if s.client != nil {
		if err := s.client.Close(); err != nil {
			log.Warn().Err(err).Msg("close MCP session")
		}
		s.client = nil
	}
	if err := s.removeContainer(ctx); err != nil {
		log.Warn().Err(err).Msg("remove MCP container")
	}
}

// removeContainer force-removes the backend container. A container that does
// not exist is not an error.
func (s *Supervisor) removeContainer(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, "docker", "rm", "-f", s.mcpCfg.ContainerName)
	out, err := cmd.CombinedOutput()
	if err != nil {
		if strings.Contains(string(out), "No such container") {
			return nil
		}
		return fmt.Errorf("remove container %q: %w: %s", s.mcpCfg.ContainerName, err, strings.TrimSpace(string(out)))
	}
	log.Debug().Str("container", s.mcpCfg.ContainerName).Msg("removed MCP container")
	return nil
}
