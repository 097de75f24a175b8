package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func casesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "cases <suite.yaml|dir|dataset.csv>",
		Short:        "Validate case files and list the cases they define",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			suiteName, cases, err := loadCases(args[0])
			if err != nil {
				return err
			}

			cmd.Printf("%s: %d cases\n", suiteName, len(cases))
			for _, c := range cases {
				checks := "no state checks"
				if c.Validation != nil && len(c.Validation.Calls) > 0 {
					checks = fmt.Sprintf("%d state checks", len(c.Validation.Calls))
					if c.Validation.FailFast {
						checks += ", fail fast"
					}
				}
				cmd.Printf("  %-24s %s  [%s]\n", c.ID, truncate(c.Prompt(), 60), checks)
			}
			return nil
		},
	}
	return cmd
}

// truncate collapses whitespace and shortens s to at most max runes. It cuts
// on rune boundaries so multi-byte prompts stay valid UTF-8.
func truncate(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
