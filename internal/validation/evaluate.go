package validation

import (
	"encoding/json"
	"reflect"
	"sort"

	"github.com/trackeval/trackeval/internal/fieldpath"
)

// Evaluate checks one declared validation against a concrete response tree.
// It is pure: no tool calls, no side effects. The verdict fails an
// expected-field entry when the path is absent or the resolved value is not
// structurally equal to the expected value, and fails a presence entry when
// the path is absent. Empty expectations pass vacuously.
func Evaluate(v ApiCallValidation, response map[string]any) CallVerdict {
	verdict := CallVerdict{ToolName: v.ToolName, Passed: true}

	// Iterate expected fields in a stable order so verdicts are
	// deterministic across runs.
	paths := make([]string, 0, len(v.ExpectedFields))
	for path := range v.ExpectedFields {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		expected := v.ExpectedFields[path]
		actual, ok := fieldpath.Resolve(response, path)
		if !ok {
			verdict.Failures = append(verdict.Failures, FieldFailure{Path: path, Missing: true, Expected: expected})
			continue
		}
		if !structurallyEqual(expected, actual) {
			verdict.Failures = append(verdict.Failures, FieldFailure{Path: path, Expected: expected, Actual: actual})
		}
	}

	for _, path := range v.ExpectedFieldPresence {
		if _, ok := fieldpath.Resolve(response, path); !ok {
			verdict.Failures = append(verdict.Failures, FieldFailure{Path: path, Missing: true})
		}
	}

	verdict.Passed = len(verdict.Failures) == 0
	return verdict
}

// structurallyEqual compares two JSON-shaped values after normalizing both
// through a JSON round-trip. Normalization folds YAML-decoded values (ints,
// map[any]any) into the encoding/json universe so that an expected 2 from a
// case file equals a 2 decoded from a tool response.
func structurallyEqual(expected, actual any) bool {
	return reflect.DeepEqual(normalize(expected), normalize(actual))
}

func normalize(v any) any {
	raw, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return v
	}
	return out
}
