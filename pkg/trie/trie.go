// Package trie implements a prefix tree keyed by token sequences instead of
// characters. Each edge is labelled by one whole token.
package trie

import "errors"

// ErrNotFound is returned when a key has no path in the trie.
var ErrNotFound = errors.New("trie: key not found")

// Config controls the payload defaults and lookup mode of a Trie.
type Config[V any] struct {
	// Default is the payload every new node starts with.
	Default V
	// Clone copies Default into a new node. Nil means plain assignment,
	// which is only safe for payloads without shared backing storage.
	Clone func(V) V
	// Empty reports whether a payload carries no rule. Longest-prefix
	// lookups skip empty payloads. Nil means nothing is empty.
	Empty func(V) bool
	// LongestMatch selects longest-prefix lookups instead of exact ones.
	LongestMatch bool
}

type node[V any] struct {
	children map[string]*node[V]
	value    V
	terminal bool
}

// Trie maps token sequences to payloads.
// It is not safe for concurrent Insert; once built it may be read
// from any number of goroutines.
type Trie[V any] struct {
	root *node[V]
	cfg  Config[V]
	keys int
}

// New creates an empty trie. The root carries a copy of the default.
func New[V any](cfg Config[V]) *Trie[V] {
	t := &Trie[V]{cfg: cfg}
	t.root = t.newNode()
	return t
}

func (t *Trie[V]) newNode() *node[V] {
	v := t.cfg.Default
	if t.cfg.Clone != nil {
		v = t.cfg.Clone(v)
	}
	return &node[V]{children: make(map[string]*node[V]), value: v}
}

func (t *Trie[V]) empty(v V) bool {
	return t.cfg.Empty != nil && t.cfg.Empty(v)
}

// Insert stores value under key, creating any missing intermediate nodes.
// Inserting the same key again overwrites the previous value.
func (t *Trie[V]) Insert(key []string, value V) {
	n := t.root
	for _, tok := range key {
		child, ok := n.children[tok]
		if !ok {
			child = t.newNode()
			n.children[tok] = child
		}
		n = child
	}
	if !n.terminal {
		n.terminal = true
		t.keys++
	}
	n.value = value
}

// Get looks key up. In exact mode every edge must exist and the payload of
// the final node is returned, otherwise ErrNotFound. In longest-prefix mode
// the walk stops at the first missing edge and the payload of the deepest
// non-empty node seen is returned, falling back to the root payload.
func (t *Trie[V]) Get(key []string) (V, error) {
	if t.cfg.LongestMatch {
		return t.longest(key), nil
	}
	n := t.find(key)
	if n == nil {
		var zero V
		return zero, ErrNotFound
	}
	return n.value, nil
}

func (t *Trie[V]) longest(key []string) V {
	n := t.root
	best := n.value
	for _, tok := range key {
		child, ok := n.children[tok]
		if !ok {
			break
		}
		n = child
		if !t.empty(n.value) {
			best = n.value
		}
	}
	return best
}

// Contains reports whether the full path for key exists, whether or not a
// rule ends exactly there.
func (t *Trie[V]) Contains(key []string) bool {
	return t.find(key) != nil
}

// IsLeaf reports whether the node for key has no children, i.e. no inserted
// key extends past it. The path must exist.
func (t *Trie[V]) IsLeaf(key []string) (bool, error) {
	n := t.find(key)
	if n == nil {
		return false, ErrNotFound
	}
	return len(n.children) == 0, nil
}

// Len returns the number of distinct keys inserted.
func (t *Trie[V]) Len() int {
	return t.keys
}

func (t *Trie[V]) find(key []string) *node[V] {
	n := t.root
	for _, tok := range key {
		child, ok := n.children[tok]
		if !ok {
			return nil
		}
		n = child
	}
	return n
}
