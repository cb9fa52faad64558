package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/akosenkov/lapsus/internal/puzzle"
)

var (
	showDate   string
	showPuzzle int
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a puzzle without playing it",
	Long: `Show prints a puzzle's text and metadata without starting a round.
Nothing is consumed and no answer is revealed.

Example:
  lapsus show
  lapsus show --puzzle 153`,
	Args: cobra.NoArgs,
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().StringVar(&showDate, "date", "", "show the puzzle for a date (YYYY-MM-DD)")
	showCmd.Flags().IntVar(&showPuzzle, "puzzle", 0, "show a puzzle by number")
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg := buildConfig()
	printer, err := newPrinter(cfg)
	if err != nil {
		return err
	}

	date, err := resolveDate(showDate, showPuzzle)
	if err != nil {
		return err
	}

	eng, _, cleanup, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	round, err := eng.Load(context.Background(), date)
	if errors.Is(err, puzzle.ErrNoContent) {
		printer.Print("No puzzle for %s.", date)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load puzzle: %w", err)
	}

	if round.Completed() {
		renderCompleted(printer, round)
		return nil
	}

	renderRound(printer, round)
	printer.Print("")
	printer.Print("Run \"lapsus play\" to guess.")
	return nil
}
