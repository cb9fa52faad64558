package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/akosenkov/lapsus/internal/model"
	"github.com/akosenkov/lapsus/internal/stats"
	"github.com/akosenkov/lapsus/internal/store"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate play statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg := buildConfig()
	printer, err := newPrinter(cfg)
	if err != nil {
		return err
	}

	st, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	sum, err := stats.Compute(st, model.Today())
	if err != nil {
		return err
	}

	if sum.Played == 0 {
		printer.Print("Nothing played yet. Start with \"lapsus play\".")
		return nil
	}

	printer.Header("Lapsus statistics")
	printer.Print("Played          %d", sum.Played)
	printer.Print("Won             %d", sum.Won)
	printer.Print("Win rate        %.0f%%", sum.WinRate*100)
	printer.Print("Current streak  %d", sum.Current)
	printer.Print("Longest streak  %d", sum.Max)
	printer.Print("History         %s", historySpan(sum))
	return nil
}

func historySpan(sum stats.Summary) string {
	if sum.First == sum.Last {
		return sum.First.String()
	}
	return fmt.Sprintf("%s to %s", sum.First, sum.Last)
}
