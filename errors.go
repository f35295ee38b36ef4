package rhymer

import "errors"

// Sentinel errors shared by the trie, the rhymer and the graph package.
var (
	// ErrNotFound indicates a missing key, word or node set.
	ErrNotFound = errors.New("rhymer: not found")

	// ErrNoPath indicates two word node sets that exist but are disconnected.
	ErrNoPath = errors.New("rhymer: no path")

	// ErrMalformedInput indicates a dictionary or phone table line that does
	// not have the expected token shape.
	ErrMalformedInput = errors.New("rhymer: malformed input")
)
