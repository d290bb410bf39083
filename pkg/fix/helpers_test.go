package fix

import (
	"strings"
	"testing"

	"github.com/bastiangx/wordfix/pkg/rules"
)

func mustRules(t *testing.T, content string) *rules.Set {
	t.Helper()
	set, err := rules.Loader{}.Parse(strings.NewReader(content))
	if err != nil {
		t.Fatalf("parse rules: %v", err)
	}
	return set
}

// tokenRules builds a set straight from token sequences, bypassing the
// tokenizer, to reach window layouts plain text cannot produce.
func tokenRules(pairs ...[2][]string) *rules.Set {
	set := &rules.Set{}
	for _, p := range pairs {
		set.Rules = append(set.Rules, rules.Rule{Wrong: p[0], Correct: p[1]})
		if len(p[0]) > set.MaxWrongLen {
			set.MaxWrongLen = len(p[0])
		}
	}
	return set
}
