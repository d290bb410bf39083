// Package tokenize splits text on word boundaries while keeping every piece,
// so a token sequence can always be joined back into the exact original text.
package tokenize

import (
	"regexp"
	"strings"
)

// Boundary matches runs of non-word characters. Word characters are
// letters, digits, combining marks and underscore in any script.
var Boundary = regexp.MustCompile(`[^\p{L}\p{N}\p{M}_]+`)

// Split cuts text into alternating word and non-word runs.
// The result always has odd length and starts and ends with a word run,
// which is empty when the text starts or ends with a non-word run:
//
//	Split("be cuz")  => ["be", " ", "cuz"]
//	Split("u.")      => ["u", ".", ""]
//	Split("")        => [""]
func Split(text string) []string {
	matches := Boundary.FindAllStringIndex(text, -1)
	tokens := make([]string, 0, 2*len(matches)+1)
	last := 0
	for _, m := range matches {
		tokens = append(tokens, text[last:m[0]], text[m[0]:m[1]])
		last = m[1]
	}
	return append(tokens, text[last:])
}

// Join concatenates tokens with no separator. It is the inverse of Split.
func Join(tokens []string) string {
	return strings.Join(tokens, "")
}

// IsBlank reports whether a token sequence carries no text at all.
func IsBlank(tokens []string) bool {
	for _, t := range tokens {
		if t != "" {
			return false
		}
	}
	return true
}
