package cmd

import (
	"fmt"
	"os"

	"stack-manager/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "stack-manager",
	Short: "Generator Stack Manager",
	Long: `Stack Manager keeps the inventory stack sizes of deployed resource generators
within a configurable limit. The limit resolves per generator from a network id,
short name or prefab override, falling back to a global default.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with the development config so CLI errors stay readable.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
