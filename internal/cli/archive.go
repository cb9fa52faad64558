package cli

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/akosenkov/lapsus/internal/output"
	"github.com/akosenkov/lapsus/internal/puzzle"
	"github.com/akosenkov/lapsus/internal/store"
)

var archiveLimit int

// archiveCmd represents the archive command
var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "List completed puzzles",
	Long: `Archive lists every recorded date with its puzzle number, outcome, and
article title, most recent first.`,
	Args: cobra.NoArgs,
	RunE: runArchive,
}

func init() {
	rootCmd.AddCommand(archiveCmd)

	archiveCmd.Flags().IntVar(&archiveLimit, "limit", 0, "show at most this many entries (0 = all)")
}

func runArchive(cmd *cobra.Command, args []string) error {
	cfg := buildConfig()
	printer, err := newPrinter(cfg)
	if err != nil {
		return err
	}

	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	st, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	dates, err := st.Dates()
	if err != nil {
		return err
	}
	if len(dates) == 0 {
		printer.Print("Nothing played yet. Start with \"lapsus play\".")
		return nil
	}

	// Most recent first.
	for i, j := 0, len(dates)-1; i < j; i, j = i+1, j-1 {
		dates[i], dates[j] = dates[j], dates[i]
	}
	if archiveLimit > 0 && len(dates) > archiveLimit {
		dates = dates[:archiveLimit]
	}

	table := output.NewTable(os.Stdout, []string{"Date", "Puzzle", "Result", "Title"})
	for _, d := range dates {
		rec, ok, err := st.Get(d)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		result := "lost"
		if rec.Won {
			result = "won"
		}
		title := ""
		if a, err := puzzle.Select(d, cat); err == nil {
			title = a.Title
		}
		table.AddRow([]string{
			d.String(),
			"#" + strconv.Itoa(puzzle.Number(d)),
			result,
			title,
		})
	}
	table.Render()
	return nil
}
