package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/orhun/manga-tui/internal/config"
	"github.com/orhun/manga-tui/internal/debuglog"
	"github.com/orhun/manga-tui/internal/mangadex"
	"github.com/orhun/manga-tui/internal/storage"
	"github.com/orhun/manga-tui/internal/tui"
)

// Version is set during build with -ldflags
var Version = "dev"

// NewRootCommand creates the root command. Running it with no
// subcommand launches the TUI.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manga-tui",
		Short: "Search manga and preview covers in your terminal",
		Long: `manga-tui is a terminal client for the MangaDex catalog. It searches
as you type, renders cover art directly in the terminal, and caches
covers locally so repeat searches stay fast.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}

	cmd.PersistentFlags().String("config", "", "path to configuration file")
	cmd.PersistentFlags().String("db", "", "path to database file (overrides config)")
	cmd.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")

	cmd.AddCommand(NewSearchCommand())
	cmd.AddCommand(NewHistoryCommand())
	cmd.AddCommand(NewConfigCommand())

	return cmd
}

// Execute runs the command tree.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	level, _ := cmd.Flags().GetString("log-level")
	if err := debuglog.Setup(debuglog.ParseLogLevel(level)); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}
	defer debuglog.Close()

	store, err := openStore(cmd, cfg)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	client, err := mangadex.NewClient(cfg)
	if err != nil {
		return err
	}

	app := tui.NewApp(cfg, client, store)
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("starting terminal interface: %w", err)
	}
	return nil
}

// loadConfig reads the config honoring the --config flag.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// openStore opens the cover/history database. A missing path disables
// caching rather than failing startup.
func openStore(cmd *cobra.Command, cfg *config.Config) (*storage.Store, error) {
	path, _ := cmd.Flags().GetString("db")
	if path == "" {
		path = cfg.Database.Path
	}
	if path == "" {
		return nil, nil
	}

	path = expandTilde(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	store, err := storage.NewStore(path, cfg.Database.Timeout)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return store, nil
}

func expandTilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
