package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is overridden at build time via -ldflags.
var Version = "dev"

// newVersionCmd creates the version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the clipvault version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("clipvault %s\n", Version)
		},
	}
}
