package graph

import (
	"fmt"
	"strings"

	rhymer "github.com/sarthakjha889/go-rhymer"
)

// MissingWordsError reports query words held by no node. It unwraps to
// rhymer.ErrNotFound.
type MissingWordsError struct {
	Words []string
}

func (e *MissingWordsError) Error() string {
	quoted := make([]string, len(e.Words))
	for i, w := range e.Words {
		quoted[i] = fmt.Sprintf("%q", w)
	}
	if len(e.Words) > 1 {
		return "graph: no nodes found for both words " + strings.Join(quoted, " and ")
	}
	return "graph: no nodes found for " + strings.Join(quoted, "")
}

func (e *MissingWordsError) Unwrap() error {
	return rhymer.ErrNotFound
}

// ShortestPath returns the node IDs of the shortest directed path from any
// node holding word1 to any node holding word2. Among equally short paths the
// first in source-then-target enumeration order wins.
// Returns a *MissingWordsError if either word is held by no node, or an error
// wrapping rhymer.ErrNoPath if no pair of nodes is connected.
func ShortestPath(g *Graph, word1, word2 string) ([]string, error) {
	sources := g.NodesWithWord(word1)
	targets := g.NodesWithWord(word2)
	var missing []string
	if len(sources) == 0 {
		missing = append(missing, word1)
	}
	if len(targets) == 0 {
		missing = append(missing, word2)
	}
	if len(missing) > 0 {
		return nil, &MissingWordsError{Words: missing}
	}

	var best []string
	for _, src := range sources {
		res := search(g, src, targets)
		for _, dst := range targets {
			path, ok := res.pathTo(dst)
			if ok && (best == nil || len(path) < len(best)) {
				best = path
			}
		}
	}
	if best == nil {
		return nil, fmt.Errorf("%w: between %q and %q", rhymer.ErrNoPath, word1, word2)
	}
	return best, nil
}

// Distance returns the number of edges on the ShortestPath between the words.
func Distance(g *Graph, word1, word2 string) (int, error) {
	path, err := ShortestPath(g, word1, word2)
	if err != nil {
		return 0, err
	}
	return len(path) - 1, nil
}

// result holds the parent links of one breadth-first search.
type result struct {
	start  string
	parent map[string]string
}

// pathTo reconstructs the path from the start vertex to dest.
func (r *result) pathTo(dest string) ([]string, bool) {
	if _, ok := r.parent[dest]; !ok && dest != r.start {
		return nil, false
	}
	path := []string{dest}
	for cur := dest; cur != r.start; {
		cur = r.parent[cur]
		path = append(path, cur)
	}
	// reverse to get start → dest
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, true
}

// search runs breadth-first search from start following edge direction, and
// stops early once every target has been reached.
func search(g *Graph, start string, targets []string) *result {
	res := &result{start: start, parent: make(map[string]string)}
	pending := make(map[string]struct{}, len(targets))
	for _, t := range targets {
		pending[t] = struct{}{}
	}
	delete(pending, start)

	visited := map[string]bool{start: true}
	queue := []string{start}
	for len(queue) > 0 && len(pending) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, nbr := range g.Neighbors(cur) {
			if visited[nbr] {
				continue
			}
			visited[nbr] = true
			res.parent[nbr] = cur
			delete(pending, nbr)
			queue = append(queue, nbr)
		}
	}
	return res
}
