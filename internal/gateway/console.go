package gateway

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

const (
	consolePrompt = "Enter a city name: "
	consoleBye    = "👋 Bye!"
	consoleEmpty  = "❌ Please enter a valid city name"
)

// Console reads one city per line from In and writes each reply to Out
// until an exit word, EOF or Stop.
type Console struct {
	In         io.Reader
	Out        io.Writer
	Advisor    Advisor
	ExitWords  []string
	ShowPrompt bool

	mu      sync.Mutex
	stopped bool
}

func NewConsole(in io.Reader, out io.Writer, advisor Advisor, exitWords []string) *Console {
	return &Console{
		In:         in,
		Out:        out,
		Advisor:    advisor,
		ExitWords:  exitWords,
		ShowPrompt: true,
	}
}

func (c *Console) Start(ctx context.Context) error {
	fmt.Fprintf(c.Out, "\n🎯 Interactive mode (type '%s' to quit)\n", c.firstExitWord())

	done := make(chan struct{})
	defer close(done)

	// readErr is always written before lines is closed
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(c.In)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				readErr <- nil
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		if c.isStopped() || ctx.Err() != nil {
			fmt.Fprintln(c.Out, consoleBye)
			return nil
		}

		if c.ShowPrompt {
			fmt.Fprint(c.Out, "\n"+consolePrompt)
		}

		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(c.Out, "\n"+consoleBye)
			return nil
		case l, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return fmt.Errorf("failed to read input: %w", err)
				}
				fmt.Fprintln(c.Out, "\n"+consoleBye)
				return nil
			}
			line = strings.TrimSpace(l)
		}

		if c.isExit(line) {
			fmt.Fprintln(c.Out, consoleBye)
			return nil
		}
		if line == "" {
			fmt.Fprintln(c.Out, consoleEmpty)
			continue
		}

		fmt.Fprintf(c.Out, "\n%s\n", c.Advisor.Advise(ctx, line))
	}
}

// Send writes text to Out; the console has a single chat so chatID is ignored.
func (c *Console) Send(_ string, text string) error {
	_, err := fmt.Fprintln(c.Out, text)
	return err
}

// Stop ends the loop after the line currently being handled.
func (c *Console) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopped = true
	return nil
}

func (c *Console) isStopped() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopped
}

func (c *Console) isExit(line string) bool {
	for _, w := range c.ExitWords {
		if strings.EqualFold(line, w) {
			return true
		}
	}
	return false
}

func (c *Console) firstExitWord() string {
	if len(c.ExitWords) == 0 {
		return "Ctrl-D"
	}
	return c.ExitWords[0]
}
