package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the engine's own settings file (YAML). The resume profile that
// drives scoring is a separate document, referenced by profile_path.
type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	ProfilePath string `yaml:"profile_path" json:"profile_path"`

	Polling struct {
		ScrapeSeconds int `yaml:"scrape_seconds" json:"scrape_seconds"`
		CleanupHours  int `yaml:"cleanup_hours" json:"cleanup_hours"`
	} `yaml:"polling" json:"polling"`

	Source struct {
		RemoteOK struct {
			Enabled bool   `yaml:"enabled" json:"enabled"`
			BaseURL string `yaml:"base_url" json:"base_url"`
			Limit   int    `yaml:"limit" json:"limit"`
			// TokenAccount names the OS-keychain account holding an optional
			// API token; empty means anonymous access.
			TokenAccount string `yaml:"token_account" json:"token_account"`
		} `yaml:"remoteok" json:"remoteok"`
	} `yaml:"source" json:"source"`

	// Relevance keywords prefilter fetched postings before scoring.
	Relevance struct {
		Keywords []string `yaml:"keywords" json:"keywords"`
	} `yaml:"relevance" json:"relevance"`

	Dashboard struct {
		Dir string `yaml:"dir" json:"dir"`
	} `yaml:"dashboard" json:"dashboard"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
