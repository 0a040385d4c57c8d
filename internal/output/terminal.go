package output

import (
	"io"
	"os"

	"golang.org/x/term"

	"github.com/vijay-prabhu/leadradar/internal/filter"
)

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorCyan   = "\033[36m"
	ColorGray   = "\033[90m"
)

// Terminal provides terminal-aware output utilities
type Terminal struct {
	IsTerminal bool
	UseColor   bool
}

// NewTerminal inspects w; colors are only used when w is a terminal
func NewTerminal(w io.Writer) *Terminal {
	isTerminal := false
	if f, ok := w.(*os.File); ok {
		isTerminal = term.IsTerminal(int(f.Fd()))
	}
	return &Terminal{
		IsTerminal: isTerminal,
		UseColor:   isTerminal && os.Getenv("NO_COLOR") == "",
	}
}

// Color wraps text in ANSI color codes (terminal only)
func (t *Terminal) Color(color, text string) string {
	if t == nil || !t.UseColor {
		return text
	}
	return color + text + ColorReset
}

// ToneColor returns the badge color for a score
func ToneColor(score int) string {
	switch filter.Tone(score) {
	case "hot":
		return ColorRed
	case "strong":
		return ColorYellow
	case "warm":
		return ColorGreen
	default:
		return ColorGray
	}
}
