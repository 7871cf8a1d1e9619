package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	historyLimitFlag  int
	historyFormatFlag string
	historyYesFlag    bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse visited pages",
	Long:  "List, search and clear the pages visited outside private mode.",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent visits, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := parseFormat(historyFormatFlag)
		if err != nil {
			return err
		}
		items, err := history.Recent(historyLimitFlag)
		if err != nil {
			return err
		}
		if len(items) == 0 && format != FormatJSON {
			fmt.Fprintln(cmd.OutOrStdout(), "No history")
			return nil
		}
		return historyTable(items).write(cmd.OutOrStdout(), format)
	},
}

var historySearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search visits by title or url",
	Long: `Search visited pages whose title or url contains the query.

Examples:
  widescreen history search golang
  widescreen history search github.com --format json`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := parseFormat(historyFormatFlag)
		if err != nil {
			return err
		}
		items, err := history.Search(strings.Join(args, " "), historyLimitFlag)
		if err != nil {
			return err
		}
		if len(items) == 0 && format != FormatJSON {
			fmt.Fprintln(cmd.OutOrStdout(), "No matching history")
			return nil
		}
		return historyTable(items).write(cmd.OutOrStdout(), format)
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all history",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !historyYesFlag {
			ok, err := confirm("Delete all history?")
			if err != nil || !ok {
				return err
			}
		}
		if err := history.Clear(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✓ History cleared")
		return nil
	},
}

func init() {
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historySearchCmd)
	historyCmd.AddCommand(historyClearCmd)

	historyCmd.PersistentFlags().IntVarP(&historyLimitFlag, "limit", "n", 50, "Maximum number of entries")
	historyCmd.PersistentFlags().StringVar(&historyFormatFlag, "format", "tsv", "Output format (json, tsv, csv)")
	historyClearCmd.Flags().BoolVarP(&historyYesFlag, "yes", "y", false, "Skip confirmation")
}

// GetHistoryCommand returns the history command
func GetHistoryCommand() *cobra.Command {
	return historyCmd
}
