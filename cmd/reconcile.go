package cmd

import (
	"fmt"
	"net/http"

	"stack-manager/core/logger"
	"stack-manager/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// reconcileCmd triggers a full reconciliation on a running server.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reapply the stack limit to every tracked generator",
	Long: `Asks a running server to remove destroyed generators from its tracked set
and reapply the resolved stack limit to every remaining generator.

Examples:
  stack-manager reconcile --actor Bob
  stack-manager reconcile --addr http://10.0.0.5:8080`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		var report reconcile.ReconcileReport
		if err := client.do(http.MethodPost, "/stacks/reconcile", nil, &report); err != nil {
			return err
		}

		cliLogger().Info("Reconciliation complete",
			zap.Int("applied", report.Applied),
			zap.Int("failed", report.Failed),
			zap.Int("removed", report.Removed),
		)
		return nil
	},
}

// reloadCmd makes a running server re-read the settings store.
var reloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Reload settings from the store on a running server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		var report reconcile.ReconcileReport
		if err := client.do(http.MethodPost, "/stacks/reload", nil, &report); err != nil {
			return err
		}

		cliLogger().Info("Settings reloaded", zap.Int("applied", report.Applied), zap.Int("failed", report.Failed))
		return nil
	},
}

// statusCmd prints the reconciler status of a running server.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show tracked and queued generator counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		var status reconcile.Status
		if err := client.do(http.MethodGet, "/stacks/status", nil, &status); err != nil {
			return err
		}

		fmt.Printf("Tracked:        %d\n", status.Tracked)
		fmt.Printf("Queued:         %d\n", status.Queued)
		fmt.Printf("Default limit:  %d\n", status.Settings.DefaultLimit)
		fmt.Printf("Batching:       %t (size %d)\n", status.Settings.BatchEnabled, status.Settings.BatchSize)
		fmt.Printf("Cleanup:        %s\n", status.Settings.CleanupInterval)
		if !status.LastSweep.IsZero() {
			fmt.Printf("Last sweep:     %s (%d removed)\n", status.LastSweep.Format("2006-01-02 15:04:05"), status.LastSweepRemoved)
		}
		return nil
	},
}

// cliLogger returns the console logger used for command output.
func cliLogger() *zap.Logger {
	l, err := logger.New(&logger.Config{Level: "info", Format: "console"})
	if err != nil {
		return zap.NewNop()
	}
	return l
}

func init() {
	for _, c := range []*cobra.Command{reconcileCmd, reloadCmd, statusCmd} {
		addClientFlags(c)
		RootCmd.AddCommand(c)
	}
}
