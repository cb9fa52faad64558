package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/akosenkov/lapsus/internal/game"
	"github.com/akosenkov/lapsus/internal/model"
	"github.com/akosenkov/lapsus/internal/output"
	"github.com/akosenkov/lapsus/internal/puzzle"
	"github.com/akosenkov/lapsus/internal/session"
	"github.com/akosenkov/lapsus/internal/store"
)

var (
	playDate   string
	playPuzzle int
	playWidth  int
	noCache    bool
)

// playCmd represents the play command
var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the daily puzzle",
	Long: `Play presents the day's text with one word quietly replaced by a wrong
one. Type the word you think is planted; if the same word appears several
times, add its highlighted instance number ("capital@2"). Three tries.

Example:
  lapsus play
  lapsus play --date 2024-06-01
  lapsus play --puzzle 153`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().StringVar(&playDate, "date", "", "play the puzzle for a date (YYYY-MM-DD)")
	playCmd.Flags().IntVar(&playPuzzle, "puzzle", 0, "play a puzzle by number")
	playCmd.Flags().IntVar(&playWidth, "width", 72, "wrap puzzle text at this width")
	playCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg := buildConfig()
	if noCache {
		cfg.Cache.Enabled = false
	}
	printer, err := newPrinter(cfg)
	if err != nil {
		return err
	}

	date, err := resolveDate(playDate, playPuzzle)
	if err != nil {
		return err
	}

	eng, st, cleanup, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "⚙️  Loading puzzle for %s...\n", date)
	}

	round, err := eng.Load(context.Background(), date)
	if errors.Is(err, puzzle.ErrNoContent) {
		printer.Print("No puzzle today. Come back tomorrow.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("load puzzle: %w", err)
	}

	if round.Completed() {
		renderCompleted(printer, round)
		showStreak(printer, st, round.Date)
		return nil
	}

	if cfg.Output.Verbose {
		if round.Fallback {
			fmt.Fprintf(os.Stderr, "⚠ Live fetch failed, serving the built-in puzzle\n")
		}
		fmt.Fprintf(os.Stderr, "✓ Puzzle #%d ready\n", round.Number)
	}

	renderRound(printer, round)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprintf(os.Stdout, "\nGuess (%s left) > ", tries(round.Session.TriesLeft))
		if !scanner.Scan() {
			fmt.Fprintln(os.Stdout)
			printer.Print("Leaving the puzzle unfinished.")
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "quit", "exit", "q":
			printer.Print("Leaving the puzzle unfinished.")
			return nil
		case "help", "?":
			renderHelp(printer)
			continue
		}

		sels, err := parseSelections(strings.Fields(line), round.Tokens)
		if err != nil {
			printer.Print("%v", err)
			continue
		}

		sr, err := eng.Submit(round, sels)
		if errors.Is(err, game.ErrEmptyGuess) {
			printer.Print("Select at least one word.")
			continue
		}
		if errors.Is(err, game.ErrRoundOver) || errors.Is(err, game.ErrSuperseded) {
			return nil
		}
		if err != nil && sr == nil {
			return err
		}
		if err != nil {
			// The outcome stands even when recording it failed.
			printer.Warning("%v", err)
		}

		if sr.Outcome != nil {
			renderOutcome(printer, round, sr, cfg.Game.MaxTries)
			showStreak(printer, st, round.Date)
			return nil
		}
		renderFeedback(printer, sr)
	}
}

func renderRound(printer *output.Printer, round *game.Round) {
	printer.Header(fmt.Sprintf("Lapsus #%d  ·  %s", round.Number, round.Date))
	meta := round.Article.CategoryOrDefault()
	if round.Article.Description != "" {
		meta += "  ·  " + round.Article.Description
	}
	printer.Print("%s", printer.Dim(meta))
	printer.Print("")
	printer.Print("%s", printer.PuzzleText(round.Tokens, nil, playWidth))
	printer.Print("")
	printer.Print("One word above was planted to make the text false. Type it to guess;")
	printer.Print("\"help\" explains instance tags, \"quit\" abandons the round.")
}

func renderHelp(printer *output.Printer) {
	printer.Print("Type the word you think is wrong, for example: capital")
	printer.Print("If that word appears more than once, pick the instance with @:")
	printer.Print("  capital@2   means its second appearance in the text")
	printer.Print("Puzzles with several planted words take them all in one guess:")
	printer.Print("  roman viruses")
}

func renderFeedback(printer *output.Printer, sr *game.SubmitResult) {
	res := sr.Result
	switch {
	case res.WrongInstance > 0:
		printer.Print("Right word, wrong spot. Another instance of it is the planted one.")
	case res.Hits > 0 && res.TrueFacts+res.Extras > 0:
		printer.Print("Partly right, but the selection is not exact.")
	case res.Hits > 0:
		printer.Print("You found a planted word, but not the full set in one guess.")
	case res.TrueFacts > 0:
		printer.Print("That part of the text is actually true.")
	default:
		printer.Print("Not the planted word.")
	}
	printer.Print("%s left.", tries(sr.TriesLeft))
}

func renderOutcome(printer *output.Printer, round *game.Round, sr *game.SubmitResult, maxTries int) {
	printer.Print("")
	won := sr.Outcome.Status == session.Won
	if won {
		printer.Success("Correct, in %s.", sr.Outcome.Elapsed.Round(time.Second))
	} else {
		printer.Print("Out of tries.")
	}

	for _, c := range round.Corrections() {
		printer.Print("  %s → %s", printer.Bold(c.Wrong), c.Correct)
	}

	triesUsed := maxTries - sr.Outcome.TriesLeft + 1
	printer.Print("")
	printer.Print("%s", output.ShareLine(round.Number, won, triesUsed, maxTries))
}

func renderCompleted(printer *output.Printer, round *game.Round) {
	printer.Header(fmt.Sprintf("Lapsus #%d  ·  %s", round.Number, round.Date))
	result := "lost"
	if round.Record.Won {
		result = "won"
	}
	title := round.Article.Title
	if title != "" {
		title = " (" + title + ")"
	}
	printer.Print("Already played%s: %s on %s.", title, result,
		round.Record.CompletedAt.Local().Format("2006-01-02 15:04"))
	printer.Print("A finished day stays finished. Try another date or come back tomorrow.")
}

func showStreak(printer *output.Printer, st store.Store, d model.Date) {
	if d != model.Today() {
		return
	}
	streak, err := store.Streak(st, d)
	if err != nil || streak == 0 {
		return
	}
	printer.Print("Current streak: %d %s.", streak, days(streak))
}

func tries(n int) string {
	if n == 1 {
		return "1 try"
	}
	return fmt.Sprintf("%d tries", n)
}

func days(n int) string {
	if n == 1 {
		return "day"
	}
	return "days"
}
