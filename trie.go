package rhymer

import (
	"sort"
	"sync"
)

// Trie stores words keyed by sequences of phoneme tokens. A sequence may be
// both a complete key and a prefix of a longer one.
type Trie struct {
	root *Node
	mu   sync.RWMutex
}

// Node is a point in a Trie reached by a unique phoneme sequence from the root.
// It maps phoneme tokens to child nodes and holds the words whose sequence ends here.
type Node struct {
	children map[string]*Node
	words    []string
}

// Entry is a word-bearing sequence returned by Keys.
type Entry struct {
	Sequence []string
	Words    []string
}

// NewTrie creates a new empty trie.
func NewTrie() *Trie {
	t := new(Trie)
	t.root = newNode()
	return t
}

func newNode() *Node {
	return &Node{children: make(map[string]*Node)}
}

// Union returns a new trie holding the content of a and b.
func Union(a, b *Trie) *Trie {
	t := NewTrie()
	t.Merge(a)
	t.Merge(b)
	return t
}

// Difference returns a new trie holding the content of a without that of b.
func Difference(a, b *Trie) *Trie {
	t := NewTrie()
	t.Merge(a)
	t.Subtract(b)
	return t
}

// Insert appends word to the node at sequence, creating the path as needed.
// No duplicate check is made; duplicates collapse on Merge.
func (t *Trie) Insert(sequence []string, word string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := t.root.walkOrCreate(sequence)
	n.words = append(n.words, word)
}

// Lookup returns the words stored at exactly sequence.
func (t *Trie) Lookup(sequence []string) ([]string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n := t.root.walk(sequence)
	if n == nil || len(n.words) == 0 {
		return nil, ErrNotFound
	}
	return n.Words(), nil
}

// Get is Lookup returning def instead of an error.
func (t *Trie) Get(sequence []string, def []string) []string {
	words, err := t.Lookup(sequence)
	if err != nil {
		return def
	}
	return words
}

// Contains reports whether Lookup would succeed.
func (t *Trie) Contains(sequence []string) bool {
	_, err := t.Lookup(sequence)
	return err == nil
}

// Remove deletes one occurrence of word from the node at sequence and prunes
// any node left without words and children.
func (t *Trie) Remove(sequence []string, word string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	path := make([]*Node, 0, len(sequence)+1)
	path = append(path, t.root)
	current := t.root
	for _, p := range sequence {
		next, ok := current.children[p]
		if !ok {
			return ErrNotFound
		}
		current = next
		path = append(path, current)
	}
	i := indexOf(current.words, word)
	if i < 0 {
		return ErrNotFound
	}
	current.words = append(current.words[:i], current.words[i+1:]...)
	// prune
	for i := len(sequence); i > 0; i-- {
		if !path[i].empty() {
			break
		}
		delete(path[i-1].children, sequence[i-1])
	}
	return nil
}

// Size returns the number of word occurrences across all nodes.
func (t *Trie) Size() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.root.size()
}

// NodeCount returns the number of nodes below the root.
func (t *Trie) NodeCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.root.nodeCount()
}

// Keys enumerates, depth first, every word-bearing node at or below prefix.
// Each entry carries the full sequence from the root. Children are visited in
// sorted phoneme order.
func (t *Trie) Keys(prefix ...string) []Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n := t.root.walk(prefix)
	if n == nil {
		return nil
	}
	var out []Entry
	n.collect(append([]string(nil), prefix...), &out)
	return out
}

// Merge unions the content of other into t. Words at each terminal node are
// deduplicated.
func (t *Trie) Merge(other *Trie) {
	entries := other.Keys()
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, e := range entries {
		n := t.root.walkOrCreate(e.Sequence)
		n.words = unionWords(n.words, e.Words)
	}
}

// Subtract removes the content of other from t. Sequences absent from t are
// ignored; emptied nodes are pruned upward along the traversed path.
func (t *Trie) Subtract(other *Trie) {
	entries := other.Keys()
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, e := range entries {
		t.root.removeWords(e.Sequence, e.Words)
	}
}

// Clone returns a deep copy of t.
func (t *Trie) Clone() *Trie {
	t.mu.RLock()
	defer t.mu.RUnlock()
	c := NewTrie()
	c.root = t.root.clone()
	return c
}

// Root returns the root node for read-only traversal. The traversal is not
// guarded; callers must not mutate t while walking it.
func (t *Trie) Root() *Node {
	return t.root
}

// Words returns a copy of the words ending at n.
func (n *Node) Words() []string {
	return append([]string(nil), n.words...)
}

// Phonemes returns the labels of n's children in sorted order.
func (n *Node) Phonemes() []string {
	keys := make([]string, 0, len(n.children))
	for k := range n.children {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Child returns the child labelled phoneme, or nil.
func (n *Node) Child(phoneme string) *Node {
	return n.children[phoneme]
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool {
	return len(n.children) == 0
}

func (n *Node) empty() bool {
	return len(n.words) == 0 && len(n.children) == 0
}

func (n *Node) walk(sequence []string) *Node {
	current := n
	for _, p := range sequence {
		next, ok := current.children[p]
		if !ok {
			return nil
		}
		current = next
	}
	return current
}

func (n *Node) walkOrCreate(sequence []string) *Node {
	current := n
	for _, p := range sequence {
		child, ok := current.children[p]
		if !ok {
			child = newNode()
			current.children[p] = child
		}
		current = child
	}
	return current
}

// removeWords drops words from the node at sequence and reports whether n is
// left empty.
func (n *Node) removeWords(sequence []string, words []string) bool {
	if len(sequence) == 0 {
		for _, w := range words {
			if i := indexOf(n.words, w); i >= 0 {
				n.words = append(n.words[:i], n.words[i+1:]...)
			}
		}
		return n.empty()
	}
	child, ok := n.children[sequence[0]]
	if !ok {
		return false
	}
	if child.removeWords(sequence[1:], words) {
		delete(n.children, sequence[0])
	}
	return n.empty()
}

func (n *Node) collect(prefix []string, out *[]Entry) {
	if len(n.words) > 0 {
		*out = append(*out, Entry{
			Sequence: append([]string(nil), prefix...),
			Words:    n.Words(),
		})
	}
	for _, p := range n.Phonemes() {
		n.children[p].collect(append(prefix, p), out)
	}
}

func (n *Node) size() int {
	count := len(n.words)
	for _, child := range n.children {
		count += child.size()
	}
	return count
}

func (n *Node) nodeCount() int {
	count := 0
	for _, child := range n.children {
		count += 1 + child.nodeCount()
	}
	return count
}

func (n *Node) clone() *Node {
	c := newNode()
	c.words = n.Words()
	for p, child := range n.children {
		c.children[p] = child.clone()
	}
	return c
}

// unionWords returns dst followed by every word of src it lacks, without duplicates.
func unionWords(dst, src []string) []string {
	seen := make(map[string]struct{}, len(dst)+len(src))
	out := make([]string, 0, len(dst)+len(src))
	for _, list := range [][]string{dst, src} {
		for _, w := range list {
			if _, ok := seen[w]; ok {
				continue
			}
			seen[w] = struct{}{}
			out = append(out, w)
		}
	}
	return out
}

func indexOf(words []string, word string) int {
	for i, w := range words {
		if w == word {
			return i
		}
	}
	return -1
}
