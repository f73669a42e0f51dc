package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"PouchCell/internal/logging"
)

var (
	verbose bool
	logger  = zap.NewNop()
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cellcalc",
		Short: "Pouch cell capacity and energy density calculator",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logging.New(verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging on stderr")

	rootCmd.AddCommand(calcCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(workbookCmd())
	rootCmd.AddCommand(importCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
