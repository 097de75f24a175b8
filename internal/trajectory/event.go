// Package trajectory reconstructs a typed, replayable trajectory from the raw
// event stream an agent runtime emits during a single run.
package trajectory

import (
	"time"

	"google.golang.org/genai"
)

// Event is one opaque record of activity from the agent runtime. Adapters
// translate runtime-specific events into this shape; the reconstructor only
// ever reads it.
type Event struct {
	Author    string
	Timestamp time.Time
	Parts     []Part
}

// Part is one content part of an Event: free text, a tool-invocation request,
// or a tool-invocation response. Text is a pointer so that an empty string is
// distinguishable from no text at all.
type Part struct {
	Text             *string
	FunctionCall     *genai.FunctionCall
	FunctionResponse *genai.FunctionResponse
}

// TextPart builds a text-only content part.
func TextPart(text string) Part {
	return Part{Text: &text}
}

// CallPart builds a tool-invocation request part.
func CallPart(id, name string, args map[string]any) Part {
	return Part{FunctionCall: &genai.FunctionCall{ID: id, Name: name, Args: args}}
}

// ResponsePart builds a tool-invocation response part.
func ResponsePart(id, name string, response map[string]any) Part {
	return Part{FunctionResponse: &genai.FunctionResponse{ID: id, Name: name, Response: response}}
}
