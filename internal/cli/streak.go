package cli

import (
	"github.com/spf13/cobra"

	"github.com/akosenkov/lapsus/internal/model"
	"github.com/akosenkov/lapsus/internal/store"
)

// streakCmd represents the streak command
var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show the current win streak",
	Args:  cobra.NoArgs,
	RunE:  runStreak,
}

func init() {
	rootCmd.AddCommand(streakCmd)
}

func runStreak(cmd *cobra.Command, args []string) error {
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

	today := model.Today()
	streak, err := store.Streak(st, today)
	if err != nil {
		return err
	}

	if streak == 0 {
		printer.Print("No streak going. Today's puzzle is a fresh start.")
		return nil
	}

	rec, ok, err := st.Get(today)
	if err != nil {
		return err
	}
	printer.Print("Current streak: %d %s.", streak, days(streak))
	if !ok {
		printer.Print("Today's puzzle is still open. Win it to make %d.", streak+1)
	} else if rec.Won {
		printer.Print("Today is already in the bag.")
	}
	return nil
}
