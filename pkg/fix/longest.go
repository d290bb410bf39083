package fix

import (
	"github.com/bastiangx/wordfix/pkg/rules"
	"github.com/bastiangx/wordfix/pkg/tokenize"
	"github.com/bastiangx/wordfix/pkg/trie"
)

// LongestMatchFixer rewrites the longest rule starting at each position.
type LongestMatchFixer struct {
	trie *trie.Trie[*rules.Rule]
}

// NewLongestMatchFixer indexes set for longest-prefix matching.
func NewLongestMatchFixer(set *rules.Set) *LongestMatchFixer {
	t := trie.New(trie.Config[*rules.Rule]{
		Empty:        func(r *rules.Rule) bool { return r == nil },
		LongestMatch: true,
	})
	for i := range set.Rules {
		rule := set.Rules[i]
		t.Insert(rule.Wrong, &rule)
	}
	return &LongestMatchFixer{trie: t}
}

// Apply implements Fixer.
func (f *LongestMatchFixer) Apply(text string) string {
	return tokenize.Join(f.apply(tokenize.Split(text)))
}

func (f *LongestMatchFixer) apply(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); {
		// longest-prefix lookups never fail
		rule, _ := f.trie.Get(tokens[i:])
		if rule == nil {
			out = append(out, tokens[i])
			i++
			continue
		}
		out = append(out, rule.Correct...)
		i += len(rule.Wrong)
	}
	return out
}
