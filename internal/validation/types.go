// Package validation verifies real-world side effects of an agent run by
// replaying declared tool calls against the tracker and checking the JSON
// responses with dot-notation field expectations.
package validation

// ApiCallValidation declares one tool call to make after an agent run and the
// expectations to check against its response. Field paths use fieldpath
// notation, e.g. "issues.0.status.name".
type ApiCallValidation struct {
	ToolName  string         `json:"tool_name"        yaml:"tool_name"        mapstructure:"tool_name"`
	Arguments map[string]any `json:"arguments"        yaml:"arguments"        mapstructure:"arguments"`

	// ExpectedFields maps field paths to the values they must hold.
	ExpectedFields map[string]any `json:"expected_fields,omitempty" yaml:"expected_fields,omitempty" mapstructure:"expected_fields"`

	// ExpectedFieldPresence lists field paths that must resolve, whatever
	// their value (null included).
	ExpectedFieldPresence []string `json:"expected_field_presence,omitempty" yaml:"expected_field_presence,omitempty" mapstructure:"expected_field_presence"`
}

// StateValidationConfig is the ordered validation plan for one evaluation
// case. Calls execute in declared order.
type StateValidationConfig struct {
	Calls    []ApiCallValidation `json:"calls"     yaml:"calls"     mapstructure:"calls"`
	FailFast bool                `json:"fail_fast" yaml:"fail_fast" mapstructure:"fail_fast"`
}

// FieldFailure describes one expectation that did not hold.
type FieldFailure struct {
	Path     string `json:"path"`
	Missing  bool   `json:"missing"`
	Expected any    `json:"expected,omitempty"`
	Actual   any    `json:"actual,omitempty"`
}

// CallVerdict is the outcome of evaluating one ApiCallValidation.
type CallVerdict struct {
	ToolName string         `json:"tool_name"`
	Passed   bool           `json:"passed"`
	Failures []FieldFailure `json:"failures,omitempty"`

	// TransportError is set when the tool call itself could not complete;
	// the verdict is then a failure regardless of expectations.
	TransportError string `json:"transport_error,omitempty"`
}

// CaseVerdict aggregates the call verdicts for one evaluation case.
type CaseVerdict struct {
	Passed bool          `json:"passed"`
	Calls  []CallVerdict `json:"calls"`

	// ShortCircuited is true when fail_fast stopped the plan before all
	// declared calls were issued.
	ShortCircuited bool `json:"short_circuited,omitempty"`
}
