package main

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/conchshell/conch"
	"github.com/conchshell/conch/internal/config"
	"github.com/conchshell/conch/internal/logging"
	"github.com/conchshell/conch/pkg/observability"
)

// runCmd starts an interactive session with the demo command set.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start an interactive shell session",
	Long:  `Starts the conch shell on the current terminal. Type 'help' at the prompt to list the available commands; type 'EOF' or close the input stream to leave.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
			cfg.LogLevel = lvl
		}
		logger := logging.New(logging.ParseLevel(cfg.LogLevel))

		metrics := observability.New(prometheus.NewRegistry())

		shell := conch.New(
			conch.WithPrompt(cfg.Prompt),
			conch.WithLogger(logger),
			conch.WithMetrics(metrics),
		)
		if err := registerDemoCommands(shell, cfg); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		signals := conch.NewSignalManager()
		defer signals.Stop()

		if err := shell.Run(signals.Context()); err != nil {
			logger.Debug("session ended", "err", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Make 'run' the default when no subcommand is given.
	rootCmd.Run = runCmd.Run
}
