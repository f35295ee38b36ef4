package graph

import (
	"fmt"
	"sort"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	rhymer "github.com/sarthakjha889/go-rhymer"
)

// Build converts t into a Graph. The trie root becomes RootID; every other
// trie node becomes "<phoneme>_<n>" with n unique across the graph, linked
// from its parent by a KindTrie edge. Children are visited in sorted order.
func Build(t *rhymer.Trie) *Graph {
	b := &builder{graph: New()}
	b.graph.AddNode(&Node{ID: RootID})
	b.walk(t.Root(), RootID)
	return b.graph
}

type builder struct {
	graph *Graph
	next  int
}

func (b *builder) walk(n *rhymer.Node, parent string) {
	for _, p := range n.Phonemes() {
		child := n.Child(p)
		b.next++
		id := fmt.Sprintf("%s_%d", p, b.next)
		b.graph.AddNode(&Node{ID: id, Phoneme: p, Words: child.Words()})
		b.graph.AddEdge(parent, id, KindTrie)
		b.walk(child, id)
	}
}

// ConnectByEditDistance links every pair of nodes holding two distinct words
// whose spellings are exactly one edit apart. Each unordered word pair is
// compared once; matching node pairs get a KindEditDistance edge in both
// directions. Self-loops are skipped. It returns the number of edges added.
func ConnectByEditDistance(g *Graph, opts ...Option) int {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	wordNodes := make(map[string][]string)
	for _, n := range g.Nodes() {
		for _, w := range n.Words {
			ids := wordNodes[w]
			if len(ids) > 0 && ids[len(ids)-1] == n.ID {
				continue
			}
			wordNodes[w] = append(ids, n.ID)
		}
	}
	words := make([]string, 0, len(wordNodes))
	for w := range wordNodes {
		words = append(words, w)
	}
	sort.Strings(words)

	lengths := make([]int, len(words))
	for i, w := range words {
		lengths[i] = utf8.RuneCountInString(w)
	}

	// partners[i] holds every j > i with words[j] one edit from words[i].
	partners := make([][]int, len(words))
	var eg errgroup.Group
	eg.SetLimit(o.workers)
	for i := range words {
		eg.Go(func() error {
			for j := i + 1; j < len(words); j++ {
				if d := lengths[i] - lengths[j]; d > 1 || d < -1 {
					continue
				}
				if rhymer.Levenshtein(words[i], words[j]) == 1 {
					partners[i] = append(partners[i], j)
				}
			}
			return nil
		})
	}
	// the workers never return an error; the group only bounds concurrency
	_ = eg.Wait()

	added := 0
	for i, js := range partners {
		for _, j := range js {
			for _, a := range wordNodes[words[i]] {
				for _, b := range wordNodes[words[j]] {
					if a == b {
						continue
					}
					if g.AddEdge(a, b, KindEditDistance) {
						added++
					}
					if g.AddEdge(b, a, KindEditDistance) {
						added++
					}
				}
			}
		}
	}
	return added
}

// PruneWordless removes every node without words, the root included, along
// with its edges. It returns the number of nodes removed.
func PruneWordless(g *Graph) int {
	var ids []string
	for _, n := range g.Nodes() {
		if len(n.Words) == 0 {
			ids = append(ids, n.ID)
		}
	}
	g.RemoveNodes(ids)
	return len(ids)
}

// BuildSimilarity runs Build, ConnectByEditDistance and PruneWordless on t.
func BuildSimilarity(t *rhymer.Trie, opts ...Option) *Graph {
	g := Build(t)
	ConnectByEditDistance(g, opts...)
	PruneWordless(g)
	return g
}
