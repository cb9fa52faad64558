package model

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds all runtime configuration. Values come from defaults,
// the config file, LAPSUS_* environment variables, and CLI flags, in
// rising priority.
type Config struct {
	Content   ContentConfig   `yaml:"content"`
	HTTP      HTTPConfig      `yaml:"http"`
	Cache     CacheConfig     `yaml:"cache"`
	Store     StoreConfig     `yaml:"store"`
	Game      GameConfig      `yaml:"game"`
	Match     MatchConfig     `yaml:"match"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Output    OutputConfig    `yaml:"output"`
}

// ContentConfig selects where puzzle content comes from.
type ContentConfig struct {
	// CatalogPath points at a YAML or JSON catalog file. Empty means the
	// compiled-in catalog.
	CatalogPath string `yaml:"catalog_path"`
	// Language is the wiki language subdomain for fetch-form articles.
	Language string `yaml:"language"`
}

// HTTPConfig tunes the outbound HTTP client.
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	HTTPProxy    string        `yaml:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy"`
	NoProxy      string        `yaml:"no_proxy"`
}

// CacheConfig tunes the fetched-extract cache.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// StoreConfig selects the completion store backend: "bolt" or "file".
type StoreConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

// GameConfig tunes the play session.
type GameConfig struct {
	MaxTries int `yaml:"max_tries"`
}

// MatchConfig tunes the fuzzy guess matcher. MinFuzzyLen is the shortest
// token eligible for non-exact matching; MaxLenDelta caps how far apart
// in length a token and a word may be and still match.
type MatchConfig struct {
	MinFuzzyLen int `yaml:"min_fuzzy_len"`
	MaxLenDelta int `yaml:"max_len_delta"`
}

// RateLimitConfig throttles outbound requests per host.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// OutputConfig tunes terminal output. Colors is the auto-mode
// preference; the --color flag forces colors on or off regardless.
type OutputConfig struct {
	Colors  bool `yaml:"colors"`
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns the built-in defaults. Data lives under
// ~/.lapsus; when the home directory cannot be resolved the current
// directory is used instead.
func DefaultConfig() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	base := filepath.Join(home, ".lapsus")

	return &Config{
		Content: ContentConfig{
			CatalogPath: filepath.Join(base, "articles.yaml"),
			Language:    "en",
		},
		HTTP: HTTPConfig{
			Timeout:      15 * time.Second,
			UserAgent:    "Lapsus/0.3 (+https://github.com/akosenkov/lapsus)",
			MaxBodyBytes: 2_000_000,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       filepath.Join(base, "cache"),
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Store: StoreConfig{
			Backend: "bolt",
			Path:    filepath.Join(base, "lapsus.db"),
		},
		Game: GameConfig{
			MaxTries: 3,
		},
		Match: MatchConfig{
			MinFuzzyLen: 3,
			MaxLenDelta: 2,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 1,
			Burst:             2,
		},
		Output: OutputConfig{
			Colors: true,
		},
	}
}
