package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/akosenkov/lapsus/internal/puzzle"
)

// ColorMode controls whether terminal colors are emitted.
type ColorMode int

const (
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// ParseColorMode parses the --color flag value.
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "auto", "":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("invalid color mode %q: must be auto, always, or never", s)
	}
}

// ResolveColors decides whether to color output. Auto mode honors
// NO_COLOR and TERM=dumb before falling back to the config setting.
func ResolveColors(mode ColorMode, configColors bool) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			return false
		}
		if os.Getenv("TERM") == "dumb" {
			return false
		}
		return configColors
	}
}

// Printer writes game output to the terminal. Results and prompts go to
// stdout; warnings and errors go to stderr.
type Printer struct {
	out       io.Writer
	err       io.Writer
	useColors bool
}

// NewPrinter builds a printer writing to stdout/stderr.
func NewPrinter(useColors bool) *Printer {
	return &Printer{out: os.Stdout, err: os.Stderr, useColors: useColors}
}

// NewPrinterWithWriters builds a printer with custom writers, for tests.
func NewPrinterWithWriters(out, err io.Writer, useColors bool) *Printer {
	return &Printer{out: out, err: err, useColors: useColors}
}

// Print writes a plain line to stdout.
func (p *Printer) Print(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Success writes a good-news line.
func (p *Printer) Success(format string, args ...interface{}) {
	if p.useColors {
		color.New(color.FgGreen).Fprintf(p.out, "✓ "+format+"\n", args...)
	} else {
		fmt.Fprintf(p.out, "[OK] "+format+"\n", args...)
	}
}

// Warning writes a warning line to stderr.
func (p *Printer) Warning(format string, args ...interface{}) {
	if p.useColors {
		color.New(color.FgYellow).Fprintf(p.err, "⚠ "+format+"\n", args...)
	} else {
		fmt.Fprintf(p.err, "[WARN] "+format+"\n", args...)
	}
}

// Error writes an error line to stderr.
func (p *Printer) Error(format string, args ...interface{}) {
	if p.useColors {
		color.New(color.FgRed).Fprintf(p.err, "✗ "+format+"\n", args...)
	} else {
		fmt.Fprintf(p.err, "[ERROR] "+format+"\n", args...)
	}
}

// Header writes a section header.
func (p *Printer) Header(title string) {
	if p.useColors {
		color.New(color.FgWhite, color.Bold).Fprintf(p.out, "\n%s\n", title)
		fmt.Fprintf(p.out, "%s\n", strings.Repeat("─", len([]rune(title))))
	} else {
		fmt.Fprintf(p.out, "\n%s\n%s\n", title, strings.Repeat("-", len([]rune(title))))
	}
}

// Bold returns text in bold when colors are on.
func (p *Printer) Bold(text string) string {
	if p.useColors {
		return color.New(color.Bold).Sprint(text)
	}
	return text
}

// Dim returns dimmed text when colors are on.
func (p *Printer) Dim(text string) string {
	if p.useColors {
		return color.New(color.Faint).Sprint(text)
	}
	return text
}

// PuzzleText renders the tokenized puzzle text wrapped to width, with the
// selected tokens highlighted. selected is keyed by token index.
func (p *Printer) PuzzleText(tokens []puzzle.Token, selected map[int]bool, width int) string {
	words := make([]string, 0, len(tokens))
	for i, tok := range tokens {
		w := tok.Text
		if selected[i] {
			if p.useColors {
				w = color.New(color.FgBlack, color.BgYellow).Sprint(tok.Text)
			} else {
				w = "[" + tok.Text + "]"
			}
		}
		words = append(words, w)
	}
	return Wrap(strings.Join(words, " "), width)
}

// Wrap breaks text into lines no wider than width, on word boundaries.
// Words longer than the width stand on their own line. ANSI escapes in a
// word count toward its width, so wrapping highlighted text is
// conservative rather than exact.
func Wrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var b strings.Builder
	lineLen := 0
	for _, word := range strings.Fields(text) {
		wordLen := len([]rune(word))
		switch {
		case lineLen == 0:
			b.WriteString(word)
			lineLen = wordLen
		case lineLen+1+wordLen <= width:
			b.WriteString(" ")
			b.WriteString(word)
			lineLen += 1 + wordLen
		default:
			b.WriteString("\n")
			b.WriteString(word)
			lineLen = wordLen
		}
	}
	return b.String()
}
