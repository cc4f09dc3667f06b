package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clipvault/clipvault/internal/clipboard"
)

// newPasteCmd creates the paste command
func newPasteCmd() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "paste <id>",
		Short: "Write a history entry back to the system clipboard",
		Long: `Write a history entry back to the system clipboard. By default the
original representation is preserved (image bytes, file list, raw text);
--plain coerces any entry to its plain-text projection.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := openEngine()
			if err != nil {
				return err
			}
			defer eng.close()

			item := eng.store.Get(args[0])
			if item == nil {
				return fmt.Errorf("no history entry with id %s", args[0])
			}

			mode := clipboard.FormatOriginal
			if plain {
				mode = clipboard.FormatPlainText
			}

			dispatcher := clipboard.NewDispatcher(eng.clip, eng.marker, logger)
			if err := dispatcher.Writeback(item, mode); err != nil {
				return fmt.Errorf("writeback failed: %w", err)
			}

			fmt.Printf("copied %s entry to clipboard\n", item.Type)
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "paste as plain text")

	return cmd
}
