package trajectory

import "time"

// Role identifies which side of the conversation produced a message.
type Role string

// Message roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message is one normalized unit of a Trajectory. Exactly three
// implementations exist, one per role, so each role's payload shape is fixed
// at compile time. Messages are immutable once constructed.
type Message interface {
	Role() Role
	message()
}

// ToolCall is a tool-invocation request extracted from an assistant event.
type ToolCall struct {
	CallID    string         `json:"call_id,omitempty"`
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// ToolResult is the outcome of one tool invocation. IsError is structural:
// true iff the result mapping contains an "error" key.
type ToolResult struct {
	CallID  string         `json:"call_id,omitempty"`
	Name    string         `json:"name"`
	Result  map[string]any `json:"result"`
	IsError bool           `json:"is_error"`
}

// UserMessage carries text input submitted by the user.
type UserMessage struct {
	Timestamp time.Time
	Author    string
	Text      string
}

func (*UserMessage) Role() Role { return RoleUser }
func (*UserMessage) message()   {}

// AssistantMessage carries the agent's output: optional text and/or an
// ordered list of tool-invocation requests. Text is nil when the source event
// had no text parts at all.
type AssistantMessage struct {
	Timestamp time.Time
	Author    string
	Text      *string
	ToolCalls []ToolCall
}

func (*AssistantMessage) Role() Role { return RoleAssistant }
func (*AssistantMessage) message()   {}

// ToolMessage carries the ordered results of tool invocations reported by one
// event.
type ToolMessage struct {
	Timestamp time.Time
	Author    string
	Results   []ToolResult
}

func (*ToolMessage) Role() Role { return RoleTool }
func (*ToolMessage) message()   {}

// Trajectory is the full ordered reconstruction of one agent run. It is
// constructed once per run and never mutated afterwards.
type Trajectory struct {
	Messages []Message
}
