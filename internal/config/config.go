// Package config provides configuration loading and management for trackeval.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Required environment variables for talking to the tracker backend.
const (
	EnvJiraURL      = "JIRA_URL"
	EnvJiraUsername = "JIRA_USERNAME"
	EnvJiraAPIToken = "JIRA_API_TOKEN"
	EnvEnabledTools = "ENABLED_TOOLS"
)

// Config is the root configuration.
type Config struct {
	Agent AgentConfig `json:"agent" mapstructure:"agent"`
	MCP   MCPConfig   `json:"mcp"   mapstructure:"mcp"`
	Eval  EvalConfig  `json:"eval"  mapstructure:"eval"`
}

// AgentConfig describes how to run the agent under evaluation.
type AgentConfig struct {
	Type   string   `json:"type"              mapstructure:"type"`
	Cmd    []string `json:"cmd,omitempty"     mapstructure:"cmd"`
	Model  string   `json:"model,omitempty"   mapstructure:"model"`
	UseTTY *bool    `json:"use_tty,omitempty" mapstructure:"use_tty"`
}

// MCPConfig describes the dockerized MCP tracker backend.
type MCPConfig struct {
	Image         string `json:"image,omitempty"          mapstructure:"image"`
	ContainerName string `json:"container_name,omitempty" mapstructure:"container_name"`
}

// EvalConfig holds run identity defaults for agent sessions.
type EvalConfig struct {
	AppName   string `json:"app_name,omitempty"   mapstructure:"app_name"`
	UserID    string `json:"user_id,omitempty"    mapstructure:"user_id"`
	SessionID string `json:"session_id,omitempty" mapstructure:"session_id"`
}

// JiraConfig carries tracker credentials. These are secrets and come from the
// environment, never the config file.
type JiraConfig struct {
	URL          string
	Username     string
	APIToken     string
	EnabledTools string
}

// Load reads the config file at path and applies defaults.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	applyDefaults(&cfg)

	if cfg.Agent.Type == "" {
		return Config{}, fmt.Errorf("agent.type is required")
	}
	if cfg.Agent.Type == "exec" && len(cfg.Agent.Cmd) == 0 {
		return Config{}, fmt.Errorf("agent.cmd is required for exec agents")
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.MCP.Image == "" {
		cfg.MCP.Image = "ghcr.io/sooperset/mcp-atlassian:latest"
	}
	if cfg.MCP.ContainerName == "" {
		cfg.MCP.ContainerName = "mcp-atlassian"
	}
	if cfg.Eval.AppName == "" {
		cfg.Eval.AppName = "trackeval"
	}
	if cfg.Eval.UserID == "" {
		cfg.Eval.UserID = "eval-user"
	}
	if cfg.Eval.SessionID == "" {
		cfg.Eval.SessionID = "eval-session"
	}
}

// JiraFromEnv resolves tracker credentials from the environment. A missing
// required variable is fatal: no case can run without backend access.
func JiraFromEnv() (JiraConfig, error) {
	jira := JiraConfig{
		URL:          os.Getenv(EnvJiraURL),
		Username:     os.Getenv(EnvJiraUsername),
		APIToken:     os.Getenv(EnvJiraAPIToken),
		EnabledTools: os.Getenv(EnvEnabledTools),
	}
	missing := []string{}
	if jira.URL == "" {
		missing = append(missing, EnvJiraURL)
	}
	if jira.Username == "" {
		missing = append(missing, EnvJiraUsername)
	}
	if jira.APIToken == "" {
		missing = append(missing, EnvJiraAPIToken)
	}
	if len(missing) > 0 {
		return JiraConfig{}, fmt.Errorf("missing required environment variables: %v", missing)
	}
	return jira, nil
}
