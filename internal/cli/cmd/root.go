// Package cmd implements the clipvault command line interface.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	configFile string
	verbose    bool
	quiet      bool

	// Shared resources
	logger *zap.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "clipvault",
	Short: "Clipboard history engine with bounded, pin-aware storage",
	Long: `Clipvault observes the system clipboard and keeps a bounded history:
  • Content classification (text, image, link, color, file list)
  • Capacity, count and retention limits with pin-aware eviction
  • Substring and type-filtered search over the history
  • Paste-back in original or plain-text form`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogger()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			logger.Sync()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.config/clipvault/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "minimize output")

	rootCmd.AddCommand(
		newRunCmd(),
		newHistoryCmd(),
		newPinCmd(),
		newPasteCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)
}

func setupLogger() {
	var cfg zap.Config

	switch {
	case verbose:
		cfg = zap.NewDevelopmentConfig()
	case quiet:
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	default:
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	var err error
	logger, err = cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logger: %v\n", err)
		logger = zap.NewNop()
	}
}
