package config

import "time"

// TestConfig returns a config suitable for testing
func TestConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:      "http://127.0.0.1:0",
			CoverBaseURL: "http://127.0.0.1:0/covers",
			HTTPTimeout:  5 * time.Second,
			UserAgent:    "manga-tui-test/1.0",
			SearchLimit:  10,
		},
		Database: DatabaseConfig{
			Path:    "", // Tests supply a temp path when they need a store
			Timeout: 1 * time.Second,
		},
		UI:    defaultConfig().UI,
		Media: defaultConfig().Media,
		Keys:  defaultConfig().Keys,
	}
}
