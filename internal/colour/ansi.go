package colour

import (
	"fmt"
	"strings"
)

// ANSI escape codes for 24-bit terminal colours.
const (
	ansiReset    = "\033[0m"
	ansiFgPrefix = "\033[38;2;"
	ansiBgPrefix = "\033[48;2;"
	defaultWidth = 8
)

// Swatch returns a solid block of c, width cells wide, with text centred on
// it in black or white, whichever reads better.
func Swatch(c RGB, text string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	fg := RGB{R: 255, G: 255, B: 255}
	if c.HSL().L > 0.5 {
		fg = RGB{}
	}

	switch {
	case len(text) > width:
		text = text[:width]
	case len(text) < width:
		pad := (width - len(text)) / 2
		text = strings.Repeat(" ", pad) + text + strings.Repeat(" ", width-len(text)-pad)
	}

	return fmt.Sprintf("%s%d;%d;%dm%s%d;%d;%dm%s%s",
		ansiBgPrefix, c.R, c.G, c.B,
		ansiFgPrefix, fg.R, fg.G, fg.B,
		text, ansiReset)
}
