package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newPinCmd creates the pin command
func newPinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pin <id>",
		Short: "Toggle the pinned state of a history entry",
		Long: `Toggle the pinned state of a history entry. Pinned entries are exempt
from count, age and capacity eviction and survive "history clear"; only an
explicit delete removes them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := openEngine()
			if err != nil {
				return err
			}
			defer eng.close()

			pinned, found := eng.store.TogglePin(args[0])
			if !found {
				return fmt.Errorf("no history entry with id %s", args[0])
			}
			if pinned {
				fmt.Println("pinned")
			} else {
				fmt.Println("unpinned")
			}
			return nil
		},
	}
}
