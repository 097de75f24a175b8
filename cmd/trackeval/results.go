package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/trackeval/trackeval/internal/db"
	"github.com/trackeval/trackeval/internal/evalrun"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	passStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

func resultsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "results [run-id]",
		Short:        "Show stored evaluation runs and their case outcomes",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			storeDB, _, closeFn, err := openDB()
			if err != nil {
				return err
			}
			defer closeFn()
			store := db.NewStore(storeDB)

			if len(args) == 0 {
				return listRuns(cmd, store)
			}
			return listOutcomes(cmd, store, args[0])
		},
	}
	return cmd
}

func listRuns(cmd *cobra.Command, store *db.Store) error {
	runs, err := store.ListRuns(cmd.Context())
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		cmd.Println("no evaluation runs recorded")
		return nil
	}

	cmd.Println(headerStyle.Render(fmt.Sprintf("%-24s %-20s %-8s %7s %7s %7s", "RUN", "SUITE", "STATUS", "CASES", "PASSED", "FAILED")))
	for _, r := range runs {
		line := fmt.Sprintf("%-24s %-20s %-8s %7d %7d %7d", r.RunID, r.Suite, r.Status, r.TotalCases, r.Passed, r.Failed)
		if r.Failed > 0 {
			line = failStyle.Render(line)
		}
		cmd.Println(line)
	}
	return nil
}

func listOutcomes(cmd *cobra.Command, store *db.Store, runID string) error {
	outcomes, err := store.ListOutcomes(cmd.Context(), runID)
	if err != nil {
		return err
	}
	if len(outcomes) == 0 {
		cmd.Printf("no outcomes recorded for %s\n", runID)
		return nil
	}

	cmd.Println(headerStyle.Render(fmt.Sprintf("%4s %-24s %-6s %s", "#", "CASE", "STATE", "DETAIL")))
	for _, o := range outcomes {
		state := passStyle.Render("pass")
		detail := ""
		if !o.Passed {
			state = failStyle.Render("fail")
			detail = o.Failure
			if detail == "" {
				detail = "state validation failed"
			}
			if o.ShortCircuited {
				detail += dimStyle.Render(" (short-circuited)")
			}
		}
		cmd.Printf("%4d %-24s %-6s %s\n", o.CaseIndex+1, o.CaseID, state, detail)
	}
	return nil
}

func printRunSummary(runID string, outcomes []evalrun.Outcome) {
	passed := 0
	for _, o := range outcomes {
		if o.Passed() {
			passed++
		}
	}
	summary := fmt.Sprintf("%s: %d/%d cases passed", runID, passed, len(outcomes))
	if passed == len(outcomes) {
		fmt.Println(passStyle.Render(summary))
		return
	}
	fmt.Println(failStyle.Render(summary))
	for _, o := range outcomes {
		if o.Passed() {
			continue
		}
		reason := "state validation failed"
		if o.Err != nil {
			reason = o.Err.Error()
		}
		fmt.Printf("  %s: %s\n", o.CaseID, reason)
	}
}
