// Package cli handles interactive line input for trying rules in real time.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/bastiangx/wordfix/pkg/fix"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
)

var changedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))

// InputHandler reads lines, corrects each one and prints the result.
// The prompt and colors are only used when input comes from a terminal.
type InputHandler struct {
	fixer        fix.Fixer
	in           io.Reader
	out          io.Writer
	interactive  bool
	requestCount int
	changedCount int
}

// NewInputHandler handles initialization of the InputHandler.
func NewInputHandler(fixer fix.Fixer, in io.Reader, out io.Writer) *InputHandler {
	return &InputHandler{
		fixer:       fixer,
		in:          in,
		out:         out,
		interactive: IsTerminal(in),
	}
}

// IsTerminal reports whether r is a terminal.
func IsTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Start begins the interface loop. It returns nil once input ends.
func (h *InputHandler) Start(ctx context.Context) error {
	if h.interactive {
		fmt.Fprintln(h.out, "type some text and press Enter to see it corrected (Ctrl+D to exit):")
	}
	reader := bufio.NewReader(h.in)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if h.interactive {
			fmt.Fprint(h.out, "> ")
		}

		line, err := reader.ReadString('\n')
		if line != "" {
			h.handleInput(strings.TrimRight(line, "\r\n"))
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				log.Debugf("Corrected %d of %d lines", h.changedCount, h.requestCount)
				return nil
			}
			return err
		}
	}
}

// handleInput corrects one line and prints it. Blank lines are skipped.
func (h *InputHandler) handleInput(line string) {
	if strings.TrimSpace(line) == "" {
		return
	}
	h.requestCount++

	start := time.Now()
	fixed, changed := fix.Correct(h.fixer, line)
	log.Debugf("Took [ %v ] for %q", time.Since(start), line)

	if !changed {
		fmt.Fprintln(h.out, fixed)
		return
	}
	h.changedCount++
	if h.interactive {
		fmt.Fprintln(h.out, changedStyle.Render(fixed))
		return
	}
	fmt.Fprintln(h.out, fixed)
}
