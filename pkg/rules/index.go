package rules

import (
	"sort"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Index is a patricia trie over the wrong side of every rule, keyed by the
// rule text as written. It answers browsing questions about a rule table;
// correction itself runs on the token trie built by the fixers.
type Index struct {
	trie  *patricia.Trie
	count int
}

// NewIndex indexes every rule of set.
func NewIndex(set *Set) *Index {
	ix := &Index{trie: patricia.NewTrie()}
	for i := range set.Rules {
		rule := set.Rules[i]
		ix.trie.Set(patricia.Prefix(rule.WrongText()), rule)
		ix.count++
	}
	return ix
}

// Len returns the number of indexed rules.
func (ix *Index) Len() int { return ix.count }

// Lookup returns the rule whose wrong side is exactly phrase.
func (ix *Index) Lookup(phrase string) (Rule, bool) {
	item := ix.trie.Get(patricia.Prefix(phrase))
	if item == nil {
		return Rule{}, false
	}
	rule, ok := item.(Rule)
	return rule, ok
}

// WithPrefix returns rules whose wrong text starts with prefix, sorted by
// wrong text. A limit of zero or less returns all of them.
func (ix *Index) WithPrefix(prefix string, limit int) []Rule {
	var found []Rule
	err := ix.trie.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, item patricia.Item) error {
		if rule, ok := item.(Rule); ok {
			found = append(found, rule)
		}
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting rule index: %v", err)
	}

	sort.Slice(found, func(i, j int) bool {
		return found[i].WrongText() < found[j].WrongText()
	})
	if limit > 0 && len(found) > limit {
		found = found[:limit]
	}
	return found
}

// Unstable returns rules whose correction would be rewritten again on a
// second pass: either a registered wrong side starts the correction, or the
// correction starts a registered wrong side. A table with no unstable rules
// is idempotent.
func (ix *Index) Unstable() []Rule {
	var unstable []Rule
	err := ix.trie.Visit(func(_ patricia.Prefix, item patricia.Item) error {
		rule, ok := item.(Rule)
		if !ok {
			return nil
		}
		if ix.retriggers(rule.Correct) {
			unstable = append(unstable, rule)
		}
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting rule index: %v", err)
	}
	sort.Slice(unstable, func(i, j int) bool {
		return unstable[i].WrongText() < unstable[j].WrongText()
	})
	return unstable
}

func (ix *Index) retriggers(correct []string) bool {
	text := Rule{Correct: correct}.CorrectText()
	hit := false

	visit := func(check func(Rule) bool) patricia.VisitorFunc {
		return func(_ patricia.Prefix, item patricia.Item) error {
			if rule, ok := item.(Rule); ok && check(rule) {
				hit = true
				return patricia.SkipSubtree
			}
			return nil
		}
	}

	// wrong sides that are a prefix of the correction
	_ = ix.trie.VisitPrefixes(patricia.Prefix(text), visit(func(r Rule) bool {
		return hasTokenPrefix(correct, r.Wrong)
	}))
	if hit {
		return true
	}
	// wrong sides that the correction is a prefix of
	_ = ix.trie.VisitSubtree(patricia.Prefix(text), visit(func(r Rule) bool {
		return hasTokenPrefix(r.Wrong, correct)
	}))
	return hit
}

func hasTokenPrefix(tokens, prefix []string) bool {
	if len(prefix) > len(tokens) {
		return false
	}
	for i := range prefix {
		if tokens[i] != prefix[i] {
			return false
		}
	}
	return true
}
