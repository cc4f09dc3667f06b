package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clipvault/clipvault/internal/types"
	"github.com/clipvault/clipvault/pkg/format"
)

// newHistoryCmd creates the history command with all subcommands
func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse and manage clipboard history",
		Long: `Browse and manage clipboard history:
  • List recent entries
  • Search entries by substring and type
  • Delete individual entries
  • Clear all unpinned entries`,
	}

	cmd.AddCommand(newHistoryListCmd())
	cmd.AddCommand(newHistorySearchCmd())
	cmd.AddCommand(newHistoryDeleteCmd())
	cmd.AddCommand(newHistoryClearCmd())

	return cmd
}

// newHistoryListCmd creates the list subcommand
func newHistoryListCmd() *cobra.Command {
	var (
		limit      int
		typeFilter string
		compact    bool
		noColors   bool
		noIcons    bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List clipboard history",
		Long: `List clipboard history entries, newest first.

Examples:
  clipvault history list                # show last 10 entries
  clipvault history list -n 20          # show last 20 entries
  clipvault history list --type image   # only image entries
  clipvault history list --compact      # one line per entry`,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := parseTypeFilter(typeFilter)
			if err != nil {
				return err
			}

			eng, err := openEngine()
			if err != nil {
				return err
			}
			defer eng.close()

			items := eng.store.Search("", filter)
			printItems(items, limit, compact, noColors, noIcons)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "maximum number of entries to show")
	cmd.Flags().StringVarP(&typeFilter, "type", "t", "", "only show entries of this type (text, image, link, color, file)")
	cmd.Flags().BoolVar(&compact, "compact", false, "compact single-line format")
	cmd.Flags().BoolVar(&noColors, "no-colors", false, "disable colored output")
	cmd.Flags().BoolVar(&noIcons, "no-icons", false, "disable icons")

	return cmd
}

// newHistorySearchCmd creates the search subcommand
func newHistorySearchCmd() *cobra.Command {
	var (
		limit      int
		typeFilter string
		compact    bool
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search clipboard history",
		Long: `Search history entries by case-insensitive substring. Text and link
entries match on their content, colors on the hex code, file lists on
their file names, images on "image" plus their size string.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := parseTypeFilter(typeFilter)
			if err != nil {
				return err
			}

			eng, err := openEngine()
			if err != nil {
				return err
			}
			defer eng.close()

			items := eng.store.Search(args[0], filter)
			if len(items) == 0 {
				fmt.Println("no matching entries")
				return nil
			}
			printItems(items, limit, compact, false, false)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of entries to show")
	cmd.Flags().StringVarP(&typeFilter, "type", "t", "", "only search entries of this type")
	cmd.Flags().BoolVar(&compact, "compact", false, "compact single-line format")

	return cmd
}

// newHistoryDeleteCmd creates the delete subcommand
func newHistoryDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete history entries by id",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := openEngine()
			if err != nil {
				return err
			}
			defer eng.close()

			removed := eng.store.Remove(args...)
			fmt.Printf("deleted %d of %d entries\n", removed, len(args))
			return nil
		},
	}
}

// newHistoryClearCmd creates the clear subcommand
func newHistoryClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all unpinned history entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := openEngine()
			if err != nil {
				return err
			}
			defer eng.close()

			removed := eng.store.Clear()
			fmt.Printf("cleared %d entries, %d pinned entries kept\n", removed, eng.store.Len())
			return nil
		},
	}
}

func parseTypeFilter(value string) (*types.ContentType, error) {
	if value == "" {
		return nil, nil
	}
	t := types.ContentType(value)
	if !t.Valid() {
		return nil, fmt.Errorf("unknown content type %q (expected one of %v)", value, types.AllContentTypes)
	}
	return &t, nil
}

func printItems(items []*types.ClipboardItem, limit int, compact, noColors, noIcons bool) {
	opts := format.DefaultOptions()
	if compact {
		opts = format.CompactOptions()
	}
	if noColors {
		opts.UseColors = false
	}
	if noIcons {
		opts.UseIcons = false
	}

	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	for _, it := range items {
		if compact {
			fmt.Println(format.FormatLine(it, opts))
		} else {
			fmt.Println(format.FormatItem(it, opts))
		}
	}
}
