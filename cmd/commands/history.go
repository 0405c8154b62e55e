package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewHistoryCommand creates the command printing recent searches.
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent searches",
		RunE:  runHistory,
	}

	cmd.Flags().Int("limit", 10, "maximum number of entries to show")

	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	store, err := openStore(cmd, cfg)
	if err != nil {
		return err
	}
	if store == nil {
		return fmt.Errorf("no database configured; set database.path in the config")
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	records, err := store.RecentSearches(limit)
	if err != nil {
		return fmt.Errorf("reading search history: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintln(out, "No searches recorded yet.")
		return nil
	}

	for _, rec := range records {
		fmt.Fprintf(out, "%s  %s (%d×)\n", rec.LastUsed.Format("2006-01-02 15:04"), rec.Query, rec.Count)
	}
	return nil
}
