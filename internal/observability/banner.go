package observability

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/term"
)

const (
	colorReset    = "\033[0m"
	colorNeonCyan = "\033[96m"
)

// termMu synchronizes all terminal output so event lines never split
// an advice block written by the console.
var termMu sync.Mutex

func termWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// termWriter is a mutex-guarded io.Writer for log output.
type termWriter struct{}

func (tw termWriter) Write(p []byte) (n int, err error) {
	termMu.Lock()
	defer termMu.Unlock()
	return os.Stderr.Write(p)
}

// NewTermWriter returns an io.Writer suitable for log.SetOutput().
func NewTermWriter() io.Writer {
	return termWriter{}
}

// LockedWriter serialises writes to w with the log output.
func LockedWriter(w io.Writer) io.Writer {
	return lockedWriter{w: w}
}

type lockedWriter struct{ w io.Writer }

func (lw lockedWriter) Write(p []byte) (int, error) {
	termMu.Lock()
	defer termMu.Unlock()
	return lw.w.Write(p)
}

func PrintBanner(w io.Writer) {
	banner := `
 _    _            _   _
| |  | |          | | | |
| |  | | ___  __ _| |_| |__   ___ _ ____      _____  __ _ _ __
| |/\| |/ _ \/ _' | __| '_ \ / _ \ '__\ \ /\ / / _ \/ _' | '__|
\  /\  /  __/ (_| | |_| | | |  __/ |   \ V  V /  __/ (_| | |
 \/  \/ \___|\__,_|\__|_| |_|\___|_|    \_/\_/ \___|\__,_|_|

           >> WEATHER-BASED CLOTHING ADVISOR <<
`

	width := termWidth()
	for _, l := range strings.Split(banner, "\n") {
		padding := (width - len(l)) / 2
		if padding < 0 {
			padding = 0
		}
		fmt.Fprintf(w, "%s%s%s%s\n", strings.Repeat(" ", padding), colorNeonCyan, l, colorReset)
	}
}

// Divider renders a full-width rule with title centered in it, e.g.
// "==================== 北京 ====================".
func Divider(title string, width int) string {
	if width <= 0 {
		width = termWidth()
	}
	if width > 60 {
		width = 60
	}
	if title == "" {
		return strings.Repeat("=", width)
	}

	label := " " + title + " "
	side := (width - utf8.RuneCountInString(label)) / 2
	if side < 3 {
		side = 3
	}
	return strings.Repeat("=", side) + label + strings.Repeat("=", side)
}
