// Package graph turns a phoneme trie into a directed similarity graph and
// finds shortest paths between the words it holds.
//
// Nodes correspond 1:1 to trie nodes. Edges are either trie parent→child links
// (KindTrie) or links between nodes holding words one spelling edit apart
// (KindEditDistance). Edit distance links are stored in both directions.
//
// A Graph is built once per query session and is not safe for concurrent
// mutation; concurrent readers are fine once building is done.
package graph

import "sort"

// Kind labels an edge.
type Kind string

const (
	// KindTrie is a parent→child link copied from the trie.
	KindTrie Kind = "trie"

	// KindEditDistance joins nodes holding words one edit apart.
	KindEditDistance Kind = "edit_distance_1"
)

// RootID is the ID of the synthetic node standing for the trie root.
const RootID = "root_0"

// Node is one graph vertex.
type Node struct {
	// ID uniquely identifies this Node within its Graph.
	ID string

	// Phoneme labels the trie edge leading into this node; empty for the root.
	Phoneme string

	// Words lists the words whose pronunciation ends at this node.
	Words []string
}

// Graph is a directed graph keyed by node ID.
type Graph struct {
	nodes map[string]*Node
	order []string // insertion order of live node IDs

	// adjacency[from][to] = kind
	adjacency map[string]map[string]Kind
	edges     int
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		nodes:     make(map[string]*Node),
		adjacency: make(map[string]map[string]Kind),
	}
}

// AddNode inserts n. If a node with the same ID already exists, this is a no-op.
func (g *Graph) AddNode(n *Node) {
	if _, exists := g.nodes[n.ID]; exists {
		return
	}
	g.nodes[n.ID] = n
	g.order = append(g.order, n.ID)
	g.adjacency[n.ID] = make(map[string]Kind)
}

// AddEdge records a directed edge from→to. Missing endpoints are auto-added
// without phoneme or words. Adding an existing edge replaces its kind and
// reports false.
func (g *Graph) AddEdge(from, to string, kind Kind) bool {
	for _, id := range [2]string{from, to} {
		if _, ok := g.nodes[id]; !ok {
			g.AddNode(&Node{ID: id})
		}
	}
	_, exists := g.adjacency[from][to]
	g.adjacency[from][to] = kind
	if !exists {
		g.edges++
	}
	return !exists
}

// RemoveNode deletes the node with the given ID together with its incident
// edges. If the node is not present, this is a no-op.
func (g *Graph) RemoveNode(id string) {
	g.RemoveNodes([]string{id})
}

// RemoveNodes deletes every listed node and its incident edges in one pass
// over the adjacency. Unknown IDs are ignored.
func (g *Graph) RemoveNodes(ids []string) {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := g.nodes[id]; !ok {
			continue
		}
		drop[id] = struct{}{}
		g.edges -= len(g.adjacency[id])
		delete(g.adjacency, id)
		delete(g.nodes, id)
	}
	if len(drop) == 0 {
		return
	}
	for _, nbrs := range g.adjacency {
		for to := range nbrs {
			if _, ok := drop[to]; ok {
				delete(nbrs, to)
				g.edges--
			}
		}
	}
	order := g.order[:0]
	for _, id := range g.order {
		if _, ok := drop[id]; !ok {
			order = append(order, id)
		}
	}
	g.order = order
}

// HasNode reports whether the graph contains id.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// HasEdge reports whether an edge from→to exists.
func (g *Graph) HasEdge(from, to string) bool {
	_, ok := g.adjacency[from][to]
	return ok
}

// EdgeKind returns the kind of the edge from→to.
func (g *Graph) EdgeKind(from, to string) (Kind, bool) {
	k, ok := g.adjacency[from][to]
	return k, ok
}

// Node returns the node with the given ID, or nil.
func (g *Graph) Node(id string) *Node {
	return g.nodes[id]
}

// Nodes returns every node in insertion order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id])
	}
	return out
}

// Neighbors returns the sorted IDs reachable from id over one edge.
func (g *Graph) Neighbors(id string) []string {
	nbrs := g.adjacency[id]
	out := make([]string, 0, len(nbrs))
	for to := range nbrs {
		out = append(out, to)
	}
	sort.Strings(out)
	return out
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of directed edges.
func (g *Graph) EdgeCount() int {
	return g.edges
}

// NodesWithWord returns, in insertion order, the IDs of nodes holding word.
func (g *Graph) NodesWithWord(word string) []string {
	var out []string
	for _, id := range g.order {
		for _, w := range g.nodes[id].Words {
			if w == word {
				out = append(out, id)
				break
			}
		}
	}
	return out
}
