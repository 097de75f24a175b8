// Package mcptool connects to the dockerized MCP tracker backend and issues
// tool calls against it on behalf of the validation engine.
package mcptool

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/trackeval/trackeval/internal/config"
)

// Client is a stdio MCP client session against the tracker backend.
type Client struct {
	session *mcp.ClientSession
}

// Connect starts the backend container and establishes an MCP session over
// its stdio transport.
func Connect(ctx context.Context, mcpCfg config.MCPConfig, jira config.JiraConfig) (*Client, error) {
	client := mcp.NewClient(&mcp.Implementation{Name: "trackeval", Version: "0.1.0"}, nil)

	session, err := client.Connect(ctx, &mcp.CommandTransport{Command: dockerCommand(ctx, mcpCfg, jira)}, nil)
	if err != nil {
		return nil, fmt.Errorf("connect MCP backend: %w", err)
	}
	return &Client{session: session}, nil
}

// dockerCommand builds the `docker run` command hosting the MCP server.
// Credentials travel via the process environment, not argv.
func dockerCommand(ctx context.Context, mcpCfg config.MCPConfig, jira config.JiraConfig) *exec.Cmd {
	args := []string{
		"run", "--rm", "-i",
		"--name", mcpCfg.ContainerName,
		"-e", config.EnvJiraURL,
		"-e", config.EnvJiraUsername,
		"-e", config.EnvJiraAPIToken,
		"-e", config.EnvEnabledTools,
		mcpCfg.Image,
	}
	cmd := exec.CommandContext(ctx, "docker", args...)
	cmd.Env = append(os.Environ(),
		config.EnvJiraURL+"="+jira.URL,
		config.EnvJiraUsername+"="+jira.Username,
		config.EnvJiraAPIToken+"="+jira.APIToken,
		config.EnvEnabledTools+"="+jira.EnabledTools,
	)
	return cmd
}

// Call invokes one named tool and decodes its JSON text content into a tree.
func (c *Client) Call(ctx context.Context, toolName string, arguments map[string]any) (map[string]any, error) {
	result, err := c.session.CallTool(ctx, &mcp.CallToolParams{Name: toolName, Arguments: arguments})
	if err != nil {
		return nil, fmt.Errorf("call tool %q: %w", toolName, err)
	}
	return decodeToolResult(toolName, result)
}

// ListTools reports the tool names the backend exposes.
func (c *Client) ListTools(ctx context.Context) ([]string, error) {
	result, err := c.session.ListTools(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list tools: %w", err)
	}
	names := make([]string, 0, len(result.Tools))
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
	}
	return names, nil
}

// Close terminates the MCP session.
func (c *Client) Close() error {
	return c.session.Close()
}

// decodeToolResult extracts the first text content of a call result and
// parses it as a JSON object.
func decodeToolResult(toolName string, result *mcp.CallToolResult) (map[string]any, error) {
	text, ok := firstText(result)
	if !ok {
		return nil, fmt.Errorf("tool %q returned no text content", toolName)
	}
	if result.IsError {
		return nil, fmt.Errorf("tool %q reported an error: %s", toolName, text)
	}

	var tree map[string]any
	if err := json.Unmarshal([]byte(text), &tree); err != nil {
		// Some tools return a bare JSON array; wrap it so field paths
		// still have a mapping root.
		var seq []any
		if seqErr := json.Unmarshal([]byte(text), &seq); seqErr == nil {
			return map[string]any{"results": seq}, nil
		}
		return nil, fmt.Errorf("decode %q response: %w", toolName, err)
	}
	return tree, nil
}

func firstText(result *mcp.CallToolResult) (string, bool) {
	for _, content := range result.Content {
		if text, ok := content.(*mcp.TextContent); ok {
			return text.Text, true
		}
	}
	return "", false
}
