package fix

import (
	"fmt"

	"github.com/bastiangx/wordfix/pkg/rules"
	"github.com/bastiangx/wordfix/pkg/tokenize"
	"github.com/bastiangx/wordfix/pkg/trie"
)

// WindowFixer replaces a window of tokens only when it is a complete rule
// that no longer rule extends. Windows are tried widest first and shrink by
// one token on every miss.
type WindowFixer struct {
	trie      *trie.Trie[[]string]
	maxWindow int
}

// NewWindowFixer indexes set for window matching.
func NewWindowFixer(set *rules.Set) *WindowFixer {
	t := trie.New(trie.Tokens(false))
	for _, rule := range set.Rules {
		t.Insert(rule.Wrong, trie.CloneTokens(rule.Correct))
	}
	return &WindowFixer{trie: t, maxWindow: set.MaxWrongLen}
}

// Apply implements Fixer.
func (f *WindowFixer) Apply(text string) string {
	return tokenize.Join(f.apply(tokenize.Split(text)))
}

func (f *WindowFixer) apply(tokens []string) []string {
	if f.maxWindow == 0 {
		return tokens
	}

	n := len(tokens)
	out := make([]string, 0, n)
	var fallback []string

	begin := 0
	size := min(f.maxWindow, n-begin)
	for begin < n {
		if size > 0 {
			window := tokens[begin : begin+size]
			if !f.trie.Contains(window) {
				fallback = window
				size--
				continue
			}

			if f.isLeaf(window) {
				out = append(out, f.get(window)...)
				begin += size
				// The widest window is skipped right after a replacement.
				// When that leaves no window at all, the fallback from an
				// earlier position is emitted in place of the next token.
				size = min(f.maxWindow, n-begin) - 1
				continue
			}

			fallback = f.get(window)
			size--
			continue
		}

		out = append(out, fallback...)
		begin++
		size = min(f.maxWindow, n-begin)
	}
	return out
}

// isLeaf and get are only called on windows known to be in the trie.
func (f *WindowFixer) isLeaf(window []string) bool {
	leaf, err := f.trie.IsLeaf(window)
	if err != nil {
		panic(fmt.Sprintf("fix: window %q vanished from rule trie: %v", window, err))
	}
	return leaf
}

func (f *WindowFixer) get(window []string) []string {
	v, err := f.trie.Get(window)
	if err != nil {
		panic(fmt.Sprintf("fix: window %q vanished from rule trie: %v", window, err))
	}
	return v
}
