package trie

// CloneTokens returns an independent copy of a token sequence so nodes never
// share a backing array.
func CloneTokens(tokens []string) []string {
	return append(make([]string, 0, len(tokens)), tokens...)
}

// EmptyTokens reports whether a token sequence payload is empty.
func EmptyTokens(tokens []string) bool {
	return len(tokens) == 0
}

// Tokens returns the configuration used for sequence-to-sequence tries:
// every node defaults to its own empty sequence.
func Tokens(longestMatch bool) Config[[]string] {
	return Config[[]string]{
		Default:      []string{},
		Clone:        CloneTokens,
		Empty:        EmptyTokens,
		LongestMatch: longestMatch,
	}
}
