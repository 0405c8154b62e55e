package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/orhun/manga-tui/internal/mangadex"
)

// NewSearchCommand creates the one-shot search command for scripting
// and quick lookups without entering the TUI.
func NewSearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the catalog and print results",
		Long: `Search the MangaDex catalog and print matching titles to stdout.

Examples:
  manga-tui search "one piece"
  manga-tui search berserk --tags`,
		Args: cobra.MinimumNArgs(1),
		RunE: runSearch,
	}

	cmd.Flags().Bool("tags", false, "include tags in the output")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	client, err := mangadex.NewClient(cfg)
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.API.HTTPTimeout)
	defer cancel()

	outcome := client.SearchManga(ctx, query)
	switch outcome.Kind {
	case mangadex.OutcomeFailed:
		return fmt.Errorf("search failed: %w", outcome.Err)
	case mangadex.OutcomeEmpty:
		fmt.Fprintf(cmd.OutOrStdout(), "No results for %q\n", query)
		return nil
	}

	showTags, _ := cmd.Flags().GetBool("tags")

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Results for %q (%d total)\n\n", query, outcome.Response.Total)
	for _, manga := range outcome.Response.Data {
		fmt.Fprintf(out, "  %s\n", manga.Attributes.Title.Preferred())
		if status := manga.Attributes.Status; status != "" {
			fmt.Fprintf(out, "    status: %s\n", status)
		}
		if showTags {
			if tags := manga.TagNames(); len(tags) > 0 {
				fmt.Fprintf(out, "    tags: %s\n", strings.Join(tags, ", "))
			}
		}
	}
	return nil
}
