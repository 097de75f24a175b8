package evalcase

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// LoadCSV loads cases from a legacy dataset CSV with the columns prompt,
// expected_tools (comma separated) and final_msg_facts. CSV rows carry no
// state validation; they exercise the agent and record the trajectory only.
func LoadCSV(path string) ([]Case, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read dataset %q: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("dataset %q is empty", path)
	}

	columns := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		columns[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"prompt", "expected_tools", "final_msg_facts"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("dataset %q is missing column %q", path, required)
		}
	}

	cases := make([]Case, 0, len(rows)-1)
	for i, row := range rows[1:] {
		prompt := row[columns["prompt"]]
		if prompt == "" {
			return nil, fmt.Errorf("dataset %q row %d has an empty prompt", path, i+2)
		}
		cases = append(cases, Case{
			ID:             fmt.Sprintf("csv-%03d", i+1),
			Goal:           prompt,
			InitialMessage: prompt,
			ExpectedTools:  splitTools(row[columns["expected_tools"]]),
			FinalMsgFacts:  row[columns["final_msg_facts"]],
		})
	}
	return cases, nil
}

func splitTools(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tools := make([]string, 0, len(parts))
	for _, p := range parts {
		if tool := strings.TrimSpace(p); tool != "" {
			tools = append(tools, tool)
		}
	}
	return tools
}
