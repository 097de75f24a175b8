package trajectory

import (
	"encoding/json"
	"fmt"
	"time"
)

// wireMessage is the serialized envelope shared by all message roles. The
// role tag selects which payload fields are meaningful.
type wireMessage struct {
	Role      Role         `json:"role"`
	Timestamp time.Time    `json:"timestamp"`
	Author    string       `json:"author"`
	Text      *string      `json:"text,omitempty"`
	ToolCalls []ToolCall   `json:"tool_calls,omitempty"`
	Results   []ToolResult `json:"results,omitempty"`
}

type wireTrajectory struct {
	Messages []wireMessage `json:"messages"`
}

// MarshalJSON serializes the trajectory as a role-tagged message list.
func (t *Trajectory) MarshalJSON() ([]byte, error) {
	wire := wireTrajectory{Messages: make([]wireMessage, 0, len(t.Messages))}
	for _, m := range t.Messages {
		switch msg := m.(type) {
		case *UserMessage:
			text := msg.Text
			wire.Messages = append(wire.Messages, wireMessage{
				Role:      RoleUser,
				Timestamp: msg.Timestamp,
				Author:    msg.Author,
				Text:      &text,
			})
		case *AssistantMessage:
			wire.Messages = append(wire.Messages, wireMessage{
				Role:      RoleAssistant,
				Timestamp: msg.Timestamp,
				Author:    msg.Author,
				Text:      msg.Text,
				ToolCalls: msg.ToolCalls,
			})
		case *ToolMessage:
			wire.Messages = append(wire.Messages, wireMessage{
				Role:      RoleTool,
				Timestamp: msg.Timestamp,
				Author:    msg.Author,
				Results:   msg.Results,
			})
		default:
			return nil, fmt.Errorf("marshal trajectory: unknown message type %T", m)
		}
	}
	return json.Marshal(wire)
}

// UnmarshalJSON restores a trajectory from its serialized form, rebuilding
// the concrete message type for each role.
func (t *Trajectory) UnmarshalJSON(data []byte) error {
	var wire wireTrajectory
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("unmarshal trajectory: %w", err)
	}

	messages := make([]Message, 0, len(wire.Messages))
	for i, wm := range wire.Messages {
		switch wm.Role {
		case RoleUser:
			var text string
			if wm.Text != nil {
				text = *wm.Text
			}
			messages = append(messages, &UserMessage{
				Timestamp: wm.Timestamp,
				Author:    wm.Author,
				Text:      text,
			})
		case RoleAssistant:
			messages = append(messages, &AssistantMessage{
				Timestamp: wm.Timestamp,
				Author:    wm.Author,
				Text:      wm.Text,
				ToolCalls: wm.ToolCalls,
			})
		case RoleTool:
			messages = append(messages, &ToolMessage{
				Timestamp: wm.Timestamp,
				Author:    wm.Author,
				Results:   wm.Results,
			})
		default:
			return fmt.Errorf("unmarshal trajectory: message %d has unknown role %q", i, wm.Role)
		}
	}

	t.Messages = messages
	return nil
}
