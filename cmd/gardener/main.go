package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"spec-gardener/internal/config"
	"spec-gardener/internal/orchestrator"
)

func main() {
	root := &cobra.Command{
		Use:          "gardener",
		Short:        "Turn issue and PR descriptions into refined specifications",
		SilenceUsage: true,
	}
	root.AddCommand(runCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Process the inbound event from the environment",
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			cfg, err := config.LoadRuntime()
			if err != nil {
				return err
			}
			agents, err := config.LoadAgents(cfg.AgentsFile)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			app := orchestrator.New(cfg, agents)
			if err := app.Process(ctx); err != nil {
				log.Printf("run failed: %v", err)
				return err
			}
			return nil
		},
	}
}
