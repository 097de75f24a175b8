package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/trackeval/trackeval/internal/agentrt"
	"github.com/trackeval/trackeval/internal/config"
	"github.com/trackeval/trackeval/internal/db"
	"github.com/trackeval/trackeval/internal/evalrun"
	"github.com/trackeval/trackeval/internal/mcptool"
)

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "run <suite.yaml|dir|dataset.csv>",
		Short:        "Run evaluation cases against the agent and validate tracker state",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			jira, err := config.JiraFromEnv()
			if err != nil {
				return err
			}
			suiteName, cases, err := loadCases(args[0])
			if err != nil {
				return err
			}

			storeDB, stateDir, closeFn, err := openDB()
			if err != nil {
				return err
			}
			defer closeFn()
			store := db.NewStore(storeDB)

			runID := fmt.Sprintf("run-%s", time.Now().UTC().Format("20060102-150405"))
			runDir := filepath.Join(stateDir, "runs", runID)
			if err := os.MkdirAll(runDir, 0o755); err != nil {
				return fmt.Errorf("create run dir: %w", err)
			}

			supervisor := mcptool.NewSupervisor(cfg.MCP, jira)
			if err := supervisor.Start(ctx); err != nil {
				return err
			}
			defer supervisor.Close(ctx)

			ag, err := agentrt.NewAgent(cfg.Agent, runDir, os.Stdout, os.Stderr)
			if err != nil {
				return err
			}
			runner, err := agentrt.NewADKRunner(cfg.Eval, ag)
			if err != nil {
				return err
			}

			if err := store.CreateRun(ctx, runID, suiteName, len(cases)); err != nil {
				return err
			}
			log.Info().Str("run", runID).Str("suite", suiteName).Int("cases", len(cases)).Msg("starting evaluation run")

			outcomes := evalrun.New(runner, supervisor, supervisor).RunBatch(ctx, cases)

			passed, failed := persistOutcomes(ctx, store, runID, outcomes)
			if err := store.FinishRun(ctx, runID, passed, failed); err != nil {
				return err
			}

			printRunSummary(runID, outcomes)
			return nil
		},
	}
	return cmd
}

func persistOutcomes(ctx context.Context, store *db.Store, runID string, outcomes []evalrun.Outcome) (passed, failed int) {
	for _, o := range outcomes {
		record := db.OutcomeRecord{
			RunID:     runID,
			CaseIndex: o.CaseIndex,
			CaseID:    o.CaseID,
			Passed:    o.Passed(),
			StartedAt: o.StartedAt.Format(time.RFC3339),
			EndedAt:   o.EndedAt.Format(time.RFC3339),
		}
		if o.Err != nil {
			record.Failure = o.Err.Error()
		}
		if o.Verdict != nil {
			record.ShortCircuited = o.Verdict.ShortCircuited
			if raw, err := json.Marshal(o.Verdict); err != nil {
				log.Error().Err(err).Str("case", o.CaseID).Msg("marshal verdict")
			} else {
				record.VerdictJSON = string(raw)
			}
		}
		if o.Trajectory != nil {
			if raw, err := json.Marshal(o.Trajectory); err != nil {
				log.Error().Err(err).Str("case", o.CaseID).Msg("marshal trajectory")
			} else {
				record.TrajectoryJSON = string(raw)
			}
		}
		if err := store.RecordOutcome(ctx, record); err != nil {
			log.Error().Err(err).Str("case", o.CaseID).Msg("persist outcome")
		}
		if record.Passed {
			passed++
		} else {
			failed++
		}
	}
	return passed, failed
}
