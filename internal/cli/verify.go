package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/akosenkov/lapsus/internal/cache"
	"github.com/akosenkov/lapsus/internal/verify"
	"github.com/akosenkov/lapsus/internal/wiki"
)

var (
	verifyOffline bool
	verifyWorkers int
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check catalog content for broken puzzles",
	Long: `Verify audits every catalog entry: misconfigured articles, extracts that
never contain their planted words, occurrence targets beyond the instance
count, and fetch-form word pairs that would miss against today's live
text. Run it after editing a catalog, before the defect becomes someone's
daily puzzle.`,
	Args: cobra.NoArgs,
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().BoolVar(&verifyOffline, "offline", false, "skip live fetch checks")
	verifyCmd.Flags().IntVar(&verifyWorkers, "workers", 4, "concurrent live fetches")
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfg := buildConfig()
	printer, err := newPrinter(cfg)
	if err != nil {
		return err
	}

	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	var source verify.TextSource
	if !verifyOffline {
		source = wiki.NewClient(cfg, cache.FromConfig(cfg.Cache))
	}

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "⚙️  Checking %d article(s)...\n", len(cat.Articles)+len(cat.Scheduled))
	}

	findings := verify.NewChecker(source, verifyWorkers).Check(context.Background(), cat)

	problems := 0
	for _, f := range findings {
		label := f.Article
		if label == "" {
			label = "catalog"
		}
		switch f.Severity {
		case verify.Problem:
			problems++
			printer.Error("%s: %s", label, f.Message)
		default:
			printer.Warning("%s: %s", label, f.Message)
		}
	}

	if problems > 0 {
		return fmt.Errorf("%d problem(s) in the catalog", problems)
	}
	printer.Success("Catalog OK: %d article(s), %d warning(s)", len(cat.Articles)+len(cat.Scheduled), len(findings))
	return nil
}
