// Package rules loads correction rules from tab separated files.
//
// A rule file holds one rule per line:
//
//	WRONG<TAB>CORRECT
//
// Both sides are tokenized with the same boundary pattern used on the text
// being corrected, so spacing and punctuation inside a rule are kept verbatim.
package rules

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bastiangx/wordfix/pkg/tokenize"
	"github.com/charmbracelet/log"
)

const (
	// Separator splits the wrong and correct sides of a rule line.
	Separator = "\t"

	maxLineBytes = 1 << 20
)

var (
	ErrMissingSeparator = errors.New("missing tab separator")
	ErrTooManyFields    = errors.New("more than two tab separated fields")
	ErrEmptyWrong       = errors.New("empty wrong side")
	ErrEmptyCorrect     = errors.New("empty correct side")
)

// ParseError reports the line a rule file failed on.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("rules line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Rule rewrites the Wrong token sequence into Correct.
type Rule struct {
	Wrong   []string
	Correct []string
}

// WrongText returns the wrong side as it appeared in the rule file.
func (r Rule) WrongText() string { return tokenize.Join(r.Wrong) }

// CorrectText returns the correct side as it appeared in the rule file.
func (r Rule) CorrectText() string { return tokenize.Join(r.Correct) }

// Set is a loaded rule table. Rules keep the order their wrong side was
// first seen in; a later duplicate replaces the earlier correction.
type Set struct {
	Rules []Rule
	// MaxWrongLen is the longest wrong side in tokens.
	MaxWrongLen int
	// Source is the file the set was read from, if any.
	Source string
}

// Len returns the number of distinct rules.
func (s *Set) Len() int { return len(s.Rules) }

// Loader reads rule files. The zero value is ready to use.
type Loader struct {
	// Normalize, when set, is applied to both sides of every rule before
	// tokenization. Input text must go through the same function.
	Normalize func(string) string
}

// Load reads a rule file with the zero Loader.
func Load(path string) (*Set, error) {
	return Loader{}.Load(path)
}

// Load reads and parses the rule file at path.
func (l Loader) Load(path string) (*Set, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rules file %s: %w", path, err)
	}
	defer file.Close()

	set, err := l.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("load rules from %s: %w", path, err)
	}
	set.Source = path
	log.Debugf("Loaded %d rules from %s (max window %d tokens)", set.Len(), path, set.MaxWrongLen)
	return set, nil
}

// Parse reads rules from r. Any malformed line aborts the whole parse;
// no partial set is ever returned.
func (l Loader) Parse(r io.Reader) (*Set, error) {
	set := &Set{}
	index := make(map[string]int)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			continue
		}

		rule, err := l.parseLine(line)
		if err != nil {
			return nil, &ParseError{Line: lineNum, Text: line, Err: err}
		}

		if len(rule.Wrong) > set.MaxWrongLen {
			set.MaxWrongLen = len(rule.Wrong)
		}

		key := rule.WrongText()
		if i, dup := index[key]; dup {
			log.Debugf("Rule on line %d overrides earlier rule for %q", lineNum, key)
			set.Rules[i] = rule
			continue
		}
		index[key] = len(set.Rules)
		set.Rules = append(set.Rules, rule)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}
	return set, nil
}

func (l Loader) parseLine(line string) (Rule, error) {
	fields := strings.Split(line, Separator)
	switch {
	case len(fields) < 2:
		return Rule{}, ErrMissingSeparator
	case len(fields) > 2:
		return Rule{}, ErrTooManyFields
	}

	wrong, correct := fields[0], fields[1]
	if l.Normalize != nil {
		wrong, correct = l.Normalize(wrong), l.Normalize(correct)
	}
	if wrong == "" {
		return Rule{}, ErrEmptyWrong
	}
	if correct == "" {
		return Rule{}, ErrEmptyCorrect
	}
	return Rule{Wrong: tokenize.Split(wrong), Correct: tokenize.Split(correct)}, nil
}
