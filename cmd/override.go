package cmd

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"text/tabwriter"

	"stack-manager/core/reconcile"
	"stack-manager/core/utils"
	"stack-manager/feature/stacks"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// overrideCmd is the parent command for override operations.
var overrideCmd = &cobra.Command{
	Use:   "override",
	Short: "Manage per-generator stack limit overrides",
	Long: `Manage the stack limit overrides of a running server.

An override is addressed by a kind and a key:
  id      network id of a single generator
  name    short name shared by a generator type
  prefab  prefab path shared by a generator type

Resolution order is id, then name, then prefab, then the global default.
Changes are persisted and applied to matching generators immediately.

Examples:
  stack-manager override set id 42 200 --actor Bob
  stack-manager override set prefab assets/prefabs/deployable/generator.small.prefab 1,500
  stack-manager override get name generator.small
  stack-manager override delete id 42
  stack-manager override default 1000
  stack-manager override list`,
}

var overrideSetCmd = &cobra.Command{
	Use:   "set <kind> <key> <limit>",
	Short: "Set an override and apply it immediately",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := reconcile.ParseKey(args[0], args[1])
		if err != nil {
			return err
		}
		limit, err := utils.ParseLimit(args[2])
		if err != nil {
			return err
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		var result stacks.OverrideResult
		if err := client.do(http.MethodPut, overridePath(key), stacks.LimitRequest{Limit: limit}, &result); err != nil {
			return err
		}

		cliLogger().Info("Override set",
			zap.Stringer("key", key),
			zap.Int("limit", result.Limit),
			zap.Int("applied", result.Report.Applied),
			zap.Int("failed", result.Report.Failed),
		)
		return nil
	},
}

var overrideGetCmd = &cobra.Command{
	Use:   "get <kind> <key>",
	Short: "Show the override stored under a key",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := reconcile.ParseKey(args[0], args[1])
		if err != nil {
			return err
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		var entry reconcile.OverrideEntry
		if err := client.do(http.MethodGet, overridePath(key), nil, &entry); err != nil {
			return err
		}

		fmt.Printf("%s:%s = %d\n", entry.Kind, entry.Key, entry.Limit)
		return nil
	},
}

var overrideDeleteCmd = &cobra.Command{
	Use:   "delete <kind> <key>",
	Short: "Remove an override and apply the resolved limit",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := reconcile.ParseKey(args[0], args[1])
		if err != nil {
			return err
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		var result stacks.OverrideResult
		if err := client.do(http.MethodDelete, overridePath(key), nil, &result); err != nil {
			return err
		}

		cliLogger().Info("Override removed",
			zap.Stringer("key", key),
			zap.Int("previous_limit", result.Limit),
			zap.Int("applied", result.Report.Applied),
		)
		return nil
	},
}

var overrideDefaultCmd = &cobra.Command{
	Use:   "default <limit>",
	Short: "Set the global default stack limit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, err := utils.ParseLimit(args[0])
		if err != nil {
			return err
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		var report reconcile.ReconcileReport
		if err := client.do(http.MethodPut, "/stacks/default", stacks.LimitRequest{Limit: limit}, &report); err != nil {
			return err
		}

		cliLogger().Info("Default stack limit set", zap.Int("limit", limit), zap.Int("applied", report.Applied))
		return nil
	},
}

var overrideListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the default limit and every override",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		var listing stacks.Listing
		if err := client.do(http.MethodGet, "/stacks", nil, &listing); err != nil {
			return err
		}

		fmt.Printf("Default limit: %d\n", listing.DefaultLimit)
		if len(listing.Overrides) == 0 {
			fmt.Println("No overrides.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "KIND\tKEY\tLIMIT")
		for _, entry := range listing.Overrides {
			fmt.Fprintf(w, "%s\t%s\t%d\n", entry.Kind, entry.Key, entry.Limit)
		}
		return w.Flush()
	},
}

// overridePath returns the API path of key.
func overridePath(key reconcile.Key) string {
	value := key.Text
	if key.Kind == reconcile.KindID {
		value = fmt.Sprintf("%d", key.ID)
	}
	return "/stacks/overrides/" + string(key.Kind) + "/" + url.PathEscape(value)
}

func init() {
	for _, c := range []*cobra.Command{overrideSetCmd, overrideGetCmd, overrideDeleteCmd, overrideDefaultCmd, overrideListCmd} {
		addClientFlags(c)
		overrideCmd.AddCommand(c)
	}
	RootCmd.AddCommand(overrideCmd)
}
