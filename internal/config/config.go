package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Database DatabaseConfig `mapstructure:"database"`
	UI       UIConfig       `mapstructure:"ui"`
	Media    MediaConfig    `mapstructure:"media"`
	Keys     KeyConfig      `mapstructure:"keys"`
}

type APIConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	CoverBaseURL string        `mapstructure:"cover_base_url"`
	HTTPTimeout  time.Duration `mapstructure:"http_timeout"`
	UserAgent    string        `mapstructure:"user_agent"`
	SearchLimit  int           `mapstructure:"search_limit"`
}

type DatabaseConfig struct {
	Path    string        `mapstructure:"path"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type UIConfig struct {
	Colors               UIColors      `mapstructure:"colors"`
	CoverWorkers         int           `mapstructure:"cover_workers"`
	TickInterval         time.Duration `mapstructure:"tick_interval"`
	MaxDescriptionLength int           `mapstructure:"max_description_length"`
	WordWrapMaxWidth     int           `mapstructure:"word_wrap_max_width"`
	WordWrapMinWidth     int           `mapstructure:"word_wrap_min_width"`
}

type UIColors struct {
	Primary   string `mapstructure:"primary"`
	Secondary string `mapstructure:"secondary"`
	Accent    string `mapstructure:"accent"`
	Text      string `mapstructure:"text"`
	Muted     string `mapstructure:"muted"`
	Error     string `mapstructure:"error"`
	Success   string `mapstructure:"success"`
}

type MediaConfig struct {
	Darwin        MediaViewers `mapstructure:"darwin"`
	Linux         MediaViewers `mapstructure:"linux"`
	Windows       MediaViewers `mapstructure:"windows"`
	DefaultOpener string       `mapstructure:"default_opener"`
}

type MediaViewers struct {
	Image []string `mapstructure:"image"`
}

type KeyConfig struct {
	StartTyping string `mapstructure:"start_typing"`
	ScrollDown  string `mapstructure:"scroll_down"`
	ScrollUp    string `mapstructure:"scroll_up"`
	OpenCover   string `mapstructure:"open_cover"`
	Quit        string `mapstructure:"quit"`
}

func defaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	dbPath := filepath.Join(homeDir, ".manga-tui.db")

	return &Config{
		API: APIConfig{
			BaseURL:      "https://api.mangadex.org",
			CoverBaseURL: "https://uploads.mangadex.org/covers",
			HTTPTimeout:  30 * time.Second,
			UserAgent:    "manga-tui/1.0 (https://github.com/orhun/manga-tui)",
			SearchLimit:  10,
		},
		Database: DatabaseConfig{
			Path:    dbPath,
			Timeout: 1 * time.Second,
		},
		UI: UIConfig{
			Colors: UIColors{
				Primary:   "#FF6B6B",
				Secondary: "#4ECDC4",
				Accent:    "#95E1D3",
				Text:      "#EAEAEA",
				Muted:     "#94A3B8",
				Error:     "#F87171",
				Success:   "#4ADE80",
			},
			CoverWorkers:         2,
			TickInterval:         100 * time.Millisecond,
			MaxDescriptionLength: 500,
			WordWrapMaxWidth:     120,
			WordWrapMinWidth:     40,
		},
		Media: MediaConfig{
			Darwin: MediaViewers{
				Image: []string{"preview", "open"},
			},
			Linux: MediaViewers{
				Image: []string{"sxiv", "feh", "eog", "xdg-open"},
			},
			Windows: MediaViewers{
				Image: []string{"start"},
			},
			DefaultOpener: getDefaultOpener(),
		},
		Keys: KeyConfig{
			StartTyping: "s",
			ScrollDown:  "j",
			ScrollUp:    "k",
			OpenCover:   "o",
			Quit:        "q",
		},
	}
}

func getDefaultOpener() string {
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "linux":
		return "xdg-open"
	case "windows":
		return "start"
	default:
		return "xdg-open"
	}
}

// DefaultConfigPath returns the conventional location of the config file.
func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "manga-tui", "config.toml")
}

// Load reads the configuration from the given path, falling back to the
// default location and then to built-in defaults when no file exists.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("toml")

	cfg := defaultConfig()
	setDefaults(v, cfg)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil
		}
		v.AddConfigPath(filepath.Join(home, ".config", "manga-tui"))
		v.SetConfigName("config")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && configPath == "" {
			return cfg, nil
		}
		if configPath == "" && os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("api.base_url", cfg.API.BaseURL)
	v.SetDefault("api.cover_base_url", cfg.API.CoverBaseURL)
	v.SetDefault("api.http_timeout", cfg.API.HTTPTimeout)
	v.SetDefault("api.user_agent", cfg.API.UserAgent)
	v.SetDefault("api.search_limit", cfg.API.SearchLimit)
	v.SetDefault("database.path", cfg.Database.Path)
	v.SetDefault("database.timeout", cfg.Database.Timeout)
	v.SetDefault("ui.cover_workers", cfg.UI.CoverWorkers)
	v.SetDefault("ui.tick_interval", cfg.UI.TickInterval)
	v.SetDefault("ui.max_description_length", cfg.UI.MaxDescriptionLength)
	v.SetDefault("ui.word_wrap_max_width", cfg.UI.WordWrapMaxWidth)
	v.SetDefault("ui.word_wrap_min_width", cfg.UI.WordWrapMinWidth)
	v.SetDefault("keys.start_typing", cfg.Keys.StartTyping)
	v.SetDefault("keys.scroll_down", cfg.Keys.ScrollDown)
	v.SetDefault("keys.scroll_up", cfg.Keys.ScrollUp)
	v.SetDefault("keys.open_cover", cfg.Keys.OpenCover)
	v.SetDefault("keys.quit", cfg.Keys.Quit)
}

// Save writes the configuration to disk as TOML.
func Save(cfg *Config, path string) error {
	v := viper.New()
	v.SetConfigType("toml")

	apiCfg := map[string]interface{}{
		"base_url":       cfg.API.BaseURL,
		"cover_base_url": cfg.API.CoverBaseURL,
		"http_timeout":   cfg.API.HTTPTimeout.String(),
		"user_agent":     cfg.API.UserAgent,
		"search_limit":   cfg.API.SearchLimit,
	}

	dbCfg := map[string]interface{}{
		"path":    cfg.Database.Path,
		"timeout": cfg.Database.Timeout.String(),
	}

	v.Set("api", apiCfg)
	v.Set("database", dbCfg)
	v.Set("ui", cfg.UI)
	v.Set("media", cfg.Media)
	v.Set("keys", cfg.Keys)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return v.WriteConfigAs(path)
}

func GenerateDefaultConfig(path string) error {
	return Save(defaultConfig(), path)
}
