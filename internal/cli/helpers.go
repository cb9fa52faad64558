package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/akosenkov/lapsus/internal/cache"
	"github.com/akosenkov/lapsus/internal/game"
	"github.com/akosenkov/lapsus/internal/model"
	"github.com/akosenkov/lapsus/internal/output"
	"github.com/akosenkov/lapsus/internal/puzzle"
	"github.com/akosenkov/lapsus/internal/store"
	"github.com/akosenkov/lapsus/internal/validate"
	"github.com/akosenkov/lapsus/internal/wiki"
)

// buildConfig resolves the effective configuration: defaults, overridden
// by config-file/env values (via viper), overridden by global flags.
func buildConfig() *model.Config {
	cfg := model.DefaultConfig()

	if v := viper.GetString("content.catalog_path"); v != "" {
		cfg.Content.CatalogPath = v
	}
	if v := viper.GetString("content.language"); v != "" {
		cfg.Content.Language = v
	}

	if v := viper.GetDuration("http.timeout"); v > 0 {
		cfg.HTTP.Timeout = v
	}
	if v := viper.GetString("http.user_agent"); v != "" {
		cfg.HTTP.UserAgent = v
	}
	if v := viper.GetInt64("http.max_body_bytes"); v > 0 {
		cfg.HTTP.MaxBodyBytes = v
	}
	if v := viper.GetString("http.http_proxy"); v != "" {
		cfg.HTTP.HTTPProxy = v
	}
	if v := viper.GetString("http.https_proxy"); v != "" {
		cfg.HTTP.HTTPSProxy = v
	}
	if v := viper.GetString("http.no_proxy"); v != "" {
		cfg.HTTP.NoProxy = v
	}

	if viper.IsSet("cache.enabled") {
		cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	}
	if v := viper.GetString("cache.dir"); v != "" {
		cfg.Cache.Dir = v
	}
	if v := viper.GetDuration("cache.memory_ttl"); v > 0 {
		cfg.Cache.MemoryTTL = v
	}
	if v := viper.GetDuration("cache.disk_ttl"); v > 0 {
		cfg.Cache.DiskTTL = v
	}

	if v := viper.GetString("store.backend"); v != "" {
		cfg.Store.Backend = v
	}
	if v := viper.GetString("store.path"); v != "" {
		cfg.Store.Path = v
	}

	if v := viper.GetInt("game.max_tries"); v > 0 {
		cfg.Game.MaxTries = v
	}
	if v := viper.GetInt("match.min_fuzzy_len"); v > 0 {
		cfg.Match.MinFuzzyLen = v
	}
	if v := viper.GetInt("match.max_len_delta"); v > 0 {
		cfg.Match.MaxLenDelta = v
	}

	if v := viper.GetFloat64("rate_limit.requests_per_second"); v > 0 {
		cfg.RateLimit.RequestsPerSecond = v
	}
	if v := viper.GetInt("rate_limit.burst"); v > 0 {
		cfg.RateLimit.Burst = v
	}

	if viper.IsSet("output.colors") {
		cfg.Output.Colors = viper.GetBool("output.colors")
	}
	cfg.Output.Verbose = verbose || viper.GetBool("verbose")

	return cfg
}

// newPrinter builds the printer for the resolved color settings.
func newPrinter(cfg *model.Config) (*output.Printer, error) {
	mode, err := output.ParseColorMode(colorFlag)
	if err != nil {
		return nil, err
	}
	return output.NewPrinter(output.ResolveColors(mode, cfg.Output.Colors)), nil
}

// loadCatalog resolves puzzle content: the configured catalog file when it
// exists, the built-in catalog otherwise.
func loadCatalog(cfg *model.Config) (*model.Catalog, error) {
	path := cfg.Content.CatalogPath
	if path == "" {
		return model.DefaultCatalog(), nil
	}
	if _, err := os.Stat(path); err != nil {
		if cfg.Output.Verbose {
			fmt.Fprintf(os.Stderr, "No catalog at %s, using the built-in one\n", path)
		}
		return model.DefaultCatalog(), nil
	}
	return model.LoadCatalog(path)
}

// buildEngine wires the full game stack. The returned cleanup closes the
// store and must be called.
func buildEngine(cfg *model.Config) (*game.Engine, store.Store, func(), error) {
	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	st, err := store.Open(cfg.Store)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open completion store: %w", err)
	}

	client := wiki.NewClient(cfg, cache.FromConfig(cfg.Cache))
	eng := game.NewEngine(cfg, cat, client, st)
	cleanup := func() { _ = st.Close() }
	return eng, st, cleanup, nil
}

// resolveDate turns the --date / --puzzle flags into a civil date. Both
// unset means today; both set is an error.
func resolveDate(dateFlag string, puzzleFlag int) (model.Date, error) {
	if dateFlag != "" && puzzleFlag != 0 {
		return model.Date{}, fmt.Errorf("--date and --puzzle are mutually exclusive")
	}
	if dateFlag != "" {
		d, err := model.ParseDate(dateFlag)
		if err != nil {
			return model.Date{}, fmt.Errorf("invalid --date: %w", err)
		}
		return d, nil
	}
	if puzzleFlag != 0 {
		if puzzleFlag < 1 {
			return model.Date{}, fmt.Errorf("--puzzle must be at least 1")
		}
		return puzzle.DateFor(puzzleFlag), nil
	}
	return model.Today(), nil
}

// parseSelections turns typed words into selections. A word may carry an
// explicit instance tag ("capital@2" means the second highlighted
// instance); a bare word that matches exactly one highlighted token
// inherits that token's tag, the way clicking it would.
func parseSelections(words []string, tokens []puzzle.Token) ([]validate.Selection, error) {
	sels := make([]validate.Selection, 0, len(words))
	for _, w := range words {
		text, occ, err := splitOccurrence(w)
		if err != nil {
			return nil, err
		}
		if occ == 0 {
			occ = soleInstance(text, tokens)
		}
		sels = append(sels, validate.Selection{Text: text, Occurrence: occ})
	}
	return sels, nil
}

func splitOccurrence(w string) (string, int, error) {
	at := strings.LastIndex(w, "@")
	if at < 0 {
		return w, 0, nil
	}
	n, err := strconv.Atoi(w[at+1:])
	if err != nil || n < 1 {
		return "", 0, fmt.Errorf("bad instance tag in %q: want word@number", w)
	}
	return w[:at], n, nil
}

// soleInstance returns the ordinal of the single tagged token matching
// text, or zero when there are none or several.
func soleInstance(text string, tokens []puzzle.Token) int {
	n := validate.Normalize(text)
	if n == "" {
		return 0
	}
	found := 0
	count := 0
	for _, tok := range tokens {
		if tok.WrongOccurrence != 0 && validate.Normalize(tok.Text) == n {
			found = tok.WrongOccurrence
			count++
		}
	}
	if count == 1 {
		return found
	}
	return 0
}
