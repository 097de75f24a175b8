package main

import (
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/trackeval/trackeval/internal/logging"
)

var (
	cfgFile string
	debug   bool
	rootCmd = &cobra.Command{
		Use:   "trackeval",
		Short: "trackeval evaluates an issue-tracker agent against real tracker state",
	}
)

// Execute runs the root command.
func Execute() error {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", filepath.Join(".trackeval", "config.json"), "config file path")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		logging.Init(debug)
		if err := godotenv.Load(); err != nil {
			log.Debug().Msg("no .env file loaded")
		}
	}
	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(casesCmd())
	rootCmd.AddCommand(resultsCmd())
	return rootCmd.Execute()
}
