// Package evalcase defines the declarative evaluation cases authors write and
// the loaders that read them from suite files.
package evalcase

import "github.com/trackeval/trackeval/internal/validation"

// Case is one evaluation unit: the prompt handed to the agent plus the state
// assertions that must hold afterwards. Read-only once loaded.
type Case struct {
	ID             string `yaml:"id"              json:"id"`
	Goal           string `yaml:"goal"            json:"goal"`
	InitialMessage string `yaml:"initial_message" json:"initial_message"`

	// ExpectedTools and FinalMsgFacts are informational annotations carried
	// from dataset rows; they are reported alongside outcomes but not
	// asserted automatically.
	ExpectedTools []string `yaml:"expected_tools,omitempty" json:"expected_tools,omitempty"`
	FinalMsgFacts string   `yaml:"final_msg_facts,omitempty" json:"final_msg_facts,omitempty"`

	Validation *validation.StateValidationConfig `yaml:"validation,omitempty" json:"validation,omitempty"`
}

// Prompt returns the text submitted to the agent for this case.
func (c Case) Prompt() string {
	return c.InitialMessage
}

// Suite groups cases loaded from one file.
type Suite struct {
	Suite       string `yaml:"suite"                 json:"suite"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Cases       []Case `yaml:"cases"                 json:"cases"`
}
