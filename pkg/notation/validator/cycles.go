package validator

import (
	"fmt"
	"slices"
	"strings"

	"mercator-hq/lexicon/pkg/notation/ast"
	nerrors "mercator-hq/lexicon/pkg/notation/errors"
)

// graph is a directed graph over headwords with insertion-ordered nodes.
type graph struct {
	nodes []string
	edges map[string][]string
	entry map[string]*ast.Entry
}

func newGraph() *graph {
	return &graph{
		edges: make(map[string][]string),
		entry: make(map[string]*ast.Entry),
	}
}

func (g *graph) addNode(hw string, e *ast.Entry) {
	if _, ok := g.entry[hw]; ok {
		return
	}
	g.nodes = append(g.nodes, hw)
	g.entry[hw] = e
}

func (g *graph) addEdge(from, to string) {
	if !slices.Contains(g.edges[from], to) {
		g.edges[from] = append(g.edges[from], to)
	}
}

func (g *graph) has(hw string) bool {
	_, ok := g.entry[hw]
	return ok
}

// cycleSet keeps each cycle once regardless of the node it was entered from.
type cycleSet struct {
	seen   map[string]bool
	cycles [][]string
}

// add records a closed chain (first node repeated at the end).
func (cs *cycleSet) add(chain []string) {
	key := canonicalKey(chain[:len(chain)-1])
	if cs.seen[key] {
		return
	}
	cs.seen[key] = true
	cs.cycles = append(cs.cycles, chain)
}

// canonicalKey rotates a cycle so its smallest node comes first.
func canonicalKey(nodes []string) string {
	start := 0
	for i, n := range nodes {
		if n < nodes[start] {
			start = i
		}
	}
	rotated := append(slices.Clone(nodes[start:]), nodes[:start]...)
	return strings.Join(rotated, "\x00")
}

// dfs is the traversal state for dependency cycle detection. visited holds
// fully explored nodes, onPath the position of nodes on the current branch.
type dfs struct {
	g       *graph
	visited map[string]bool
	onPath  map[string]int
	path    []string
	found   *cycleSet
}

func (d *dfs) visit(n string) {
	d.onPath[n] = len(d.path)
	d.path = append(d.path, n)

	for _, m := range d.g.edges[n] {
		if pos, ok := d.onPath[m]; ok {
			chain := append(slices.Clone(d.path[pos:]), m)
			d.found.add(chain)
			continue
		}
		if !d.visited[m] {
			d.visit(m)
		}
	}

	d.path = d.path[:len(d.path)-1]
	delete(d.onPath, n)
	d.visited[n] = true
}

// CheckDependencies reports cycles among normal entries, where an edge leads
// from a headword to each of its textual sub-entries that is a headword too.
func (v *Validator) CheckDependencies(entries []*ast.Entry) *nerrors.ErrorList {
	g := newGraph()
	for _, e := range entries {
		if !e.IsRedirect() {
			g.addNode(e.Headword(), e)
		}
	}
	for _, e := range entries {
		if e.IsRedirect() {
			continue
		}
		hw := e.Headword()
		for _, s := range e.SubEntries() {
			text, ok := s.Text()
			if !ok || s.IsRedirect() || text == hw || !g.has(text) {
				continue
			}
			g.addEdge(hw, text)
		}
	}

	d := &dfs{
		g:       g,
		visited: make(map[string]bool),
		onPath:  make(map[string]int),
		found:   &cycleSet{seen: make(map[string]bool)},
	}
	for _, n := range g.nodes {
		if !d.visited[n] {
			d.visit(n)
		}
	}

	return cycleErrors(g, d.found.cycles, nerrors.ErrorTypeCircularDependency, "Circular dependency")
}

// CheckRedirections reports cycles among redirection entries, following each
// chain of targets until it leaves the redirection set or returns to its start.
func (v *Validator) CheckRedirections(entries []*ast.Entry) *nerrors.ErrorList {
	g := newGraph()
	for _, e := range entries {
		if !e.IsRedirect() || g.has(e.Headword()) {
			continue
		}
		g.addNode(e.Headword(), e)
		g.addEdge(e.Headword(), e.Redirect().Target())
	}

	found := &cycleSet{seen: make(map[string]bool)}
	for _, start := range g.nodes {
		chain := []string{start}
		visited := map[string]bool{start: true}
		current := start
		for {
			targets := g.edges[current]
			if len(targets) == 0 {
				break // current does not redirect
			}
			next := targets[0]
			if next == start {
				found.add(append(chain, start))
				break
			}
			if visited[next] {
				break // loops without passing through start
			}
			visited[next] = true
			chain = append(chain, next)
			current = next
		}
	}

	return cycleErrors(g, found.cycles, nerrors.ErrorTypeCircularRedirection, "Circular redirection")
}

func cycleErrors(g *graph, cycles [][]string, kind nerrors.ErrorType, label string) *nerrors.ErrorList {
	errs := nerrors.NewErrorList()
	for _, chain := range cycles {
		location := ast.Location{}
		if e, ok := g.entry[chain[0]]; ok {
			location = e.Location
		}
		errs.Add(&nerrors.Error{
			Type:     kind,
			Message:  fmt.Sprintf("%s: %s", label, strings.Join(chain, " -> ")),
			Input:    chain[0],
			Location: location,
			Chain:    chain,
		})
	}
	return errs
}
