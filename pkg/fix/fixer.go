// Package fix rewrites known multi-token errors in text using a rule table.
//
// Two strategies are provided behind the Fixer interface:
//
//   - LongestMatchFixer: at each position the longest registered rule
//     starting there wins (maximal munch); unmatched tokens pass through.
//   - WindowFixer: tries windows from widest to narrowest at each position
//     and only replaces on a maximal rule match.
//
// Fixers are immutable once built and safe for concurrent use.
package fix

import (
	"fmt"
	"strings"

	"github.com/bastiangx/wordfix/pkg/rules"
)

// Fixer rewrites one field of text.
type Fixer interface {
	// Apply returns text with every matched rule rewritten. It never fails;
	// text that matches nothing comes back unchanged.
	Apply(text string) string
}

// Mode selects a Fixer strategy.
type Mode int

const (
	ModeLongest Mode = iota
	ModeWindow
)

func (m Mode) String() string {
	switch m {
	case ModeLongest:
		return "longest"
	case ModeWindow:
		return "window"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode parses a mode name as used in configs and flags.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "longest", "longest-match":
		return ModeLongest, nil
	case "window":
		return ModeWindow, nil
	}
	return 0, fmt.Errorf("unknown fix mode %q (expected longest or window)", name)
}

// New builds the fixer for mode from a loaded rule set.
func New(mode Mode, set *rules.Set) (Fixer, error) {
	switch mode {
	case ModeLongest:
		return NewLongestMatchFixer(set), nil
	case ModeWindow:
		return NewWindowFixer(set), nil
	}
	return nil, fmt.Errorf("unknown fix mode %v", mode)
}
