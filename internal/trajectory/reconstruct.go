package trajectory

import (
	"strings"
	"time"
)

// userAuthor is the literal author the runtime assigns to user-originated
// events.
const userAuthor = "user"

// Reconstruct normalizes an ordered event stream into a Trajectory. Each
// event independently yields up to three messages, in this order: a user
// message when a user-authored event carries text, a tool message when the
// event carries tool responses, and an assistant message when a non-user
// event carries text or tool-invocation requests. A synthetic user message
// built from the submitted prompt always leads the trajectory.
//
// Reconstruction is deterministic: the same events produce an identical
// Trajectory.
func Reconstruct(prompt string, submittedAt time.Time, events []Event) *Trajectory {
	messages := []Message{
		&UserMessage{Timestamp: submittedAt, Author: userAuthor, Text: prompt},
	}

	for _, ev := range events {
		if m := userMessage(ev); m != nil {
			messages = append(messages, m)
		}
		if m := toolMessage(ev); m != nil {
			messages = append(messages, m)
		}
		if m := assistantMessage(ev); m != nil {
			messages = append(messages, m)
		}
	}

	return &Trajectory{Messages: messages}
}

// textParts collects the event's plain text parts, skipping parts that also
// carry a tool call or response. Empty strings count as present text.
func textParts(ev Event) []string {
	var texts []string
	for _, p := range ev.Parts {
		if p.Text == nil || p.FunctionCall != nil || p.FunctionResponse != nil {
			continue
		}
		texts = append(texts, *p.Text)
	}
	return texts
}

func userMessage(ev Event) Message {
	if ev.Author != userAuthor {
		return nil
	}
	texts := textParts(ev)
	if len(texts) == 0 {
		return nil
	}
	return &UserMessage{
		Timestamp: ev.Timestamp,
		Author:    ev.Author,
		Text:      strings.Join(texts, ""),
	}
}

func toolMessage(ev Event) Message {
	var results []ToolResult
	for _, p := range ev.Parts {
		fr := p.FunctionResponse
		if fr == nil {
			continue
		}
		// A response missing its name or result body is malformed and
		// dropped rather than surfaced as a broken entry.
		if fr.Name == "" || fr.Response == nil {
			continue
		}
		results = append(results, ToolResult{
			CallID:  fr.ID,
			Name:    fr.Name,
			Result:  fr.Response,
			IsError: isErrorResult(fr.Response),
		})
	}
	if len(results) == 0 {
		return nil
	}
	return &ToolMessage{
		Timestamp: ev.Timestamp,
		Author:    ev.Author,
		Results:   results,
	}
}

func assistantMessage(ev Event) Message {
	if ev.Author == userAuthor {
		return nil
	}

	var text *string
	if texts := textParts(ev); len(texts) > 0 {
		joined := strings.Join(texts, "")
		text = &joined
	}

	var calls []ToolCall
	for _, p := range ev.Parts {
		fc := p.FunctionCall
		if fc == nil || fc.Name == "" || fc.Args == nil {
			continue
		}
		calls = append(calls, ToolCall{
			CallID:    fc.ID,
			Name:      fc.Name,
			Arguments: fc.Args,
		})
	}

	if (text == nil || *text == "") && len(calls) == 0 {
		return nil
	}
	return &AssistantMessage{
		Timestamp: ev.Timestamp,
		Author:    ev.Author,
		Text:      text,
		ToolCalls: calls,
	}
}

// isErrorResult reports whether a tool result mapping carries an "error" key.
// Purely structural; the value under the key is irrelevant.
func isErrorResult(result map[string]any) bool {
	_, ok := result["error"]
	return ok
}
