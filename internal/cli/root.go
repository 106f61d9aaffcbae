// Package cli implements the runsnap command line.
package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Backland-Labs/runsnap/internal/config"
	"github.com/Backland-Labs/runsnap/internal/logger"
	"github.com/Backland-Labs/runsnap/internal/snapshot"
	"github.com/Backland-Labs/runsnap/internal/trigger"
)

const version = "0.1.0"

// Execute runs the CLI
func Execute() error {
	err := NewRootCommand(NewRealDependencies()).Execute()
	_ = logger.GetLogger().Sync()
	return err
}

// NewRootCommand creates the root command
func NewRootCommand(deps *Dependencies) *cobra.Command {
	var prod bool
	var dev bool

	cmd := &cobra.Command{
		Use:   "runsnap [--prod | --dev]",
		Short: "runsnap - snapshot the latest Trigger.dev run",
		Long: `runsnap - snapshot the latest Trigger.dev run

runsnap fetches the most recent run from the Trigger.dev API and writes a
Markdown report to .agent/snapshots/, updating .agent/snapshots/latest.md.

The secret key is read from TRIGGER_SECRET_KEY_PROD (--prod) or
TRIGGER_SECRET_KEY_STAGING (--dev, the default), falling back to
TRIGGER_SECRET_KEY. A .env file in the current directory is loaded first.

Examples:
  runsnap              # Snapshot the latest dev run
  runsnap --prod       # Snapshot the latest production run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Runtime failures are reported by runSnapshot
			cmd.SilenceUsage = true
			cmd.SilenceErrors = true

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runSnapshot(ctx, config.ResolveEnvironment(prod, dev), deps)
		},
	}

	cmd.Flags().BoolVar(&prod, "prod", false, "Snapshot the production environment")
	cmd.Flags().BoolVar(&dev, "dev", false, "Snapshot the development environment (default)")

	return cmd
}

// runSnapshot resolves config, takes one snapshot and reports the outcome
func runSnapshot(ctx context.Context, env config.Environment, deps *Dependencies) error {
	printer := deps.Printer

	cfg, err := deps.ConfigLoader.Load(env)
	if err != nil {
		var missing *config.MissingKeyError
		if errors.As(err, &missing) {
			printer.Error("No API key found for environment: %s", env)
			printer.Error("Please set %s in your .env file.", missing.Variable)
		} else {
			printer.Error("Invalid configuration: %v", err)
		}
		return err
	}

	client, err := deps.ClientFactory.NewClient(cfg)
	if err != nil {
		printer.Error("Failed to create Trigger.dev client: %v", err)
		return err
	}

	if cfg.IsProduction() {
		printer.Warning("Using the production environment")
	}
	printer.Step("Snapshotting latest Trigger.dev run (%s)...", env)

	runner := snapshot.NewRunner(client, snapshot.NewStore(cfg.SnapshotDir), string(env)).
		WithFoundHook(func(run trigger.RunSummary) {
			printer.Info("Found run: %s (%s)", run.ID, run.Status)
		})
	if deps.Now != nil {
		runner = runner.WithClock(deps.Now)
	}

	result, err := runner.Run(ctx)
	if err != nil {
		// the printer line below is the user-facing report
		logger.WithError(err).WithFields(map[string]interface{}{
			"environment": string(env),
			"stage":       string(snapshot.StageOf(err)),
			"run_id":      snapshot.RunIDOf(err),
		}).Debug("snapshot failed")
		if runID := snapshot.RunIDOf(err); runID != "" {
			printer.Error("Failed to snapshot run %s: %v", runID, err)
		} else {
			printer.Error("Failed to snapshot run: %v", err)
		}
		return err
	}

	if !result.Written() {
		printer.Info("No runs found.")
		return nil
	}

	printer.Detail("task: %s", result.Task)
	printer.Detail("status: %s", result.Run.Status)
	printer.Saved("Snapshot saved to", result.Path, result.Bytes)
	printer.Saved("Updated latest snapshot", result.LatestPath, result.Bytes)
	return nil
}
