package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// HTTPConfig carries the client identity presented to upstream sites.
type HTTPConfig struct {
	UserAgent      string `yaml:"user_agent"`
	AcceptLanguage string `yaml:"accept_language"`
	TimeoutSec     int    `yaml:"timeout"`
}

// WebNewsConfig configures the news index page adapter.
type WebNewsConfig struct {
	IndexURL    string `yaml:"index_url"`
	Origin      string `yaml:"origin"`
	Selector    string `yaml:"selector"`
	MaxArticles int    `yaml:"max_articles"`
}

// VideoConfig configures the video channel feed adapter.
type VideoConfig struct {
	FeedURL      string   `yaml:"feed_url"`
	Keywords     []string `yaml:"keywords"`
	MaxEntries   int      `yaml:"max_entries"`
	SnippetLimit int      `yaml:"snippet_limit"`
	MinDelaySec  float64  `yaml:"min_delay"`
	MaxDelaySec  float64  `yaml:"max_delay"`
}

// PodcastConfig configures the podcast RSS adapter.
type PodcastConfig struct {
	FeedURL      string `yaml:"feed_url"`
	MaxEpisodes  int    `yaml:"max_episodes"`
	SnippetLimit int    `yaml:"snippet_limit"`
}

// Config is the full application configuration.
type Config struct {
	HTTP         HTTPConfig    `yaml:"http"`
	WebNews      WebNewsConfig `yaml:"web_news"`
	Video        VideoConfig   `yaml:"video"`
	Podcast      PodcastConfig `yaml:"podcast"`
	DatabasePath string        `yaml:"database_path"`
	OutputDir    string        `yaml:"output_dir"`
}

// Default returns the built-in configuration targeting CNBC's public
// surfaces, matching what the collector shipped with originally.
func Default() Config {
	return Config{
		HTTP: HTTPConfig{
			UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
			AcceptLanguage: "en-US,en;q=0.9",
			TimeoutSec:     30,
		},
		WebNews: WebNewsConfig{
			IndexURL:    "https://www.cnbc.com/finance/",
			Origin:      "https://www.cnbc.com",
			Selector:    ".Card-title",
			MaxArticles: 15,
		},
		Video: VideoConfig{
			// CNBC Television channel uploads feed.
			FeedURL:      "https://www.youtube.com/feeds/videos.xml?channel_id=UCrp_UI8XtuYfpiqluWLD7Lw",
			Keywords:     []string{"cramer", "morning", "club", "investing", "stock"},
			MaxEntries:   5,
			SnippetLimit: 500,
			MinDelaySec:  1,
			MaxDelaySec:  3,
		},
		Podcast: PodcastConfig{
			// "Squawk on the Street" on Simplecast.
			FeedURL:      "https://feeds.simplecast.com/GcylmXl7",
			MaxEpisodes:  3,
			SnippetLimit: 400,
		},
		DatabasePath: FallbackDBPath(),
		OutputDir:    ".",
	}
}

// Load reads the config file at path, or the default location when path
// is empty. A missing file yields the built-in defaults; a present file
// only overrides the fields it sets.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		p, err := defaultConfigPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}
	b, err := os.ReadFile(ExpandPath(path))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.DatabasePath = ExpandPath(cfg.DatabasePath)
	cfg.OutputDir = ExpandPath(cfg.OutputDir)
	return cfg, nil
}

// FallbackDBPath returns the archive path used when none is configured.
func FallbackDBPath() string {
	if runtime.GOOS == "darwin" {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "Finwire", "finwire.db")
	}
	return "finwire.db"
}

func defaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "finwire", "config.yaml"), nil
}

// ExpandPath expands leading ~ and environment variables in a filesystem path.
func ExpandPath(p string) string {
	if p == "" {
		return p
	}
	p = os.ExpandEnv(p)
	if strings.HasPrefix(p, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			if p == "~" {
				p = home
			} else if strings.HasPrefix(p, "~/") {
				p = filepath.Join(home, p[2:])
			}
		}
	}
	return p
}
