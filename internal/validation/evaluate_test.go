package validation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeResponse(t *testing.T, raw string) map[string]any {
	t.Helper()
	var tree map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &tree))
	return tree
}

func TestEvaluateEmptyExpectationsPass(t *testing.T) {
	t.Parallel()

	v := ApiCallValidation{ToolName: "jira_search", Arguments: map[string]any{"jql": "project = MBA"}}
	verdict := Evaluate(v, decodeResponse(t, `{"issues": []}`))

	assert.True(t, verdict.Passed)
	assert.Empty(t, verdict.Failures)
}

func TestEvaluateExpectedFields(t *testing.T) {
	t.Parallel()

	response := decodeResponse(t, `{
		"issues": [{"summary": "X", "status": {"name": "To Do"}, "watchers": 2, "resolution": null}]
	}`)

	tests := []struct {
		name     string
		expected map[string]any
		passed   bool
	}{
		{name: "matching value", expected: map[string]any{"issues.0.summary": "X"}, passed: true},
		{name: "mismatching value", expected: map[string]any{"issues.0.summary": "Y"}, passed: false},
		{name: "nested match", expected: map[string]any{"issues.0.status.name": "To Do"}, passed: true},
		{name: "absent path", expected: map[string]any{"issues.1.summary": "X"}, passed: false},
		{name: "yaml int equals json number", expected: map[string]any{"issues.0.watchers": 2}, passed: true},
		{name: "null expected and present", expected: map[string]any{"issues.0.resolution": nil}, passed: true},
		{name: "subtree equality", expected: map[string]any{"issues.0.status": map[string]any{"name": "To Do"}}, passed: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			v := ApiCallValidation{ToolName: "jira_search", ExpectedFields: tt.expected}
			verdict := Evaluate(v, response)
			assert.Equal(t, tt.passed, verdict.Passed)
		})
	}
}

func TestEvaluateFieldPresence(t *testing.T) {
	t.Parallel()

	response := decodeResponse(t, `{"issues": [{"key": "MBA-1", "assignee": null}]}`)

	v := ApiCallValidation{
		ToolName:              "jira_search",
		ExpectedFieldPresence: []string{"issues.0.key", "issues.0.assignee"},
	}
	verdict := Evaluate(v, response)
	assert.True(t, verdict.Passed, "present-but-null must satisfy a presence check")

	v.ExpectedFieldPresence = append(v.ExpectedFieldPresence, "issues.0.reporter")
	verdict = Evaluate(v, response)
	require.False(t, verdict.Passed)
	require.Len(t, verdict.Failures, 1)
	assert.Equal(t, "issues.0.reporter", verdict.Failures[0].Path)
	assert.True(t, verdict.Failures[0].Missing)
}

func TestEvaluateReportsExpectedVersusActual(t *testing.T) {
	t.Parallel()

	response := decodeResponse(t, `{"issues": [{"summary": "Actual title"}]}`)
	v := ApiCallValidation{
		ToolName:       "jira_get_issue",
		ExpectedFields: map[string]any{"issues.0.summary": "Wanted title"},
	}

	verdict := Evaluate(v, response)
	require.False(t, verdict.Passed)
	require.Len(t, verdict.Failures, 1)
	failure := verdict.Failures[0]
	assert.Equal(t, "issues.0.summary", failure.Path)
	assert.False(t, failure.Missing)
	assert.Equal(t, "Wanted title", failure.Expected)
	assert.Equal(t, "Actual title", failure.Actual)
}

func TestEvaluateConjunction(t *testing.T) {
	t.Parallel()

	response := decodeResponse(t, `{"issues": [{"summary": "X", "key": "MBA-1"}]}`)
	v := ApiCallValidation{
		ToolName: "jira_search",
		ExpectedFields: map[string]any{
			"issues.0.summary": "X",
			"issues.0.key":     "MBA-9",
		},
		ExpectedFieldPresence: []string{"issues.0.summary"},
	}

	verdict := Evaluate(v, response)
	assert.False(t, verdict.Passed, "one failing entry fails the whole verdict")
	assert.Len(t, verdict.Failures, 1)
}
