package output

import (
	"fmt"
	"strings"
)

// ShareLine renders the post-game share text: the puzzle number, the
// score, and a glyph row with one red square per wrong guess and a green
// square for the winning one. Plain text only; copying it anywhere is the
// player's business.
//
//	Lapsus #153 2/3
//	🟥🟩
func ShareLine(number int, won bool, triesUsed, maxTries int) string {
	if triesUsed < 1 {
		triesUsed = 1
	}
	if triesUsed > maxTries {
		triesUsed = maxTries
	}

	score := fmt.Sprintf("%d/%d", triesUsed, maxTries)
	if !won {
		score = fmt.Sprintf("X/%d", maxTries)
	}

	var glyphs strings.Builder
	wrong := triesUsed
	if won {
		wrong = triesUsed - 1
	}
	for i := 0; i < wrong; i++ {
		glyphs.WriteString("🟥")
	}
	if won {
		glyphs.WriteString("🟩")
	}

	return fmt.Sprintf("Lapsus #%d %s\n%s", number, score, glyphs.String())
}
