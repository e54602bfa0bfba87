package core

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"monorel/internal/types"
)

// DroppedDependency is a declared dependency that does not resolve to a
// workspace package. The caller decides whether to warn about it.
type DroppedDependency struct {
	Package    string
	Dependency string
}

// Graph is the workspace dependency graph. Nodes are interned to int
// handles; deps[i] lists the handles package i depends on. An edge
// A -> B means A's version may need to change when B's does.
type Graph struct {
	names   map[string]int
	nodes   []string
	deps    [][]int
	dropped []DroppedDependency
}

// BuildGraph builds the graph from a workspace snapshot and validates
// it is acyclic. Dependencies that do not resolve to workspace packages
// are dropped and reported via Dropped. Duplicate package names are a
// fatal input error.
func BuildGraph(packages []types.WorkspacePackage) (*Graph, error) {
	g := &Graph{
		names: make(map[string]int, len(packages)),
		nodes: make([]string, 0, len(packages)),
		deps:  make([][]int, 0, len(packages)),
	}
	for _, pkg := range packages {
		if pkg.Name == "" {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("workspace package with empty name")
		}
		if _, exists := g.names[pkg.Name]; exists {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("duplicate workspace package: %s", pkg.Name))
		}
		g.names[pkg.Name] = len(g.nodes)
		g.nodes = append(g.nodes, pkg.Name)
		g.deps = append(g.deps, nil)
	}
	for _, pkg := range packages {
		from := g.names[pkg.Name]
		for _, dep := range pkg.InternalDependencies {
			to, ok := g.names[dep]
			if !ok {
				g.dropped = append(g.dropped, DroppedDependency{Package: pkg.Name, Dependency: dep})
				continue
			}
			if to == from {
				g.dropped = append(g.dropped, DroppedDependency{Package: pkg.Name, Dependency: dep})
				continue
			}
			g.deps[from] = append(g.deps[from], to)
		}
	}
	if cycle := g.findCycle(); cycle != nil {
		return nil, cycleError(cycle)
	}
	return g, nil
}

func (g *Graph) Has(name string) bool {
	_, ok := g.names[name]
	return ok
}

func (g *Graph) Len() int {
	return len(g.nodes)
}

// DependenciesOf returns the package names the given package depends
// on, or nil when the package is unknown.
func (g *Graph) DependenciesOf(name string) []string {
	idx, ok := g.names[name]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(g.deps[idx]))
	for _, dep := range g.deps[idx] {
		out = append(out, g.nodes[dep])
	}
	return out
}

// Dropped lists the dependency declarations that were ignored because
// they point outside the workspace.
func (g *Graph) Dropped() []DroppedDependency {
	return g.dropped
}

// ReverseTopological returns every package ordered so that each one
// appears after all packages it depends on. The cycle check is repeated
// here so a plan can never be produced from a graph that was mutated or
// constructed outside BuildGraph.
func (g *Graph) ReverseTopological() ([]string, error) {
	if cycle := g.findCycle(); cycle != nil {
		return nil, cycleError(cycle)
	}
	visited := make([]bool, len(g.nodes))
	order := make([]string, 0, len(g.nodes))
	var visit func(idx int)
	visit = func(idx int) {
		if visited[idx] {
			return
		}
		visited[idx] = true
		for _, dep := range g.deps[idx] {
			visit(dep)
		}
		order = append(order, g.nodes[idx])
	}
	for idx := range g.nodes {
		visit(idx)
	}
	return order, nil
}

const (
	colorWhite = iota
	colorGray
	colorBlack
)

// findCycle runs an iterative-enough DFS over the node arena and
// returns the first cycle found as an ordered name sequence, or nil.
func (g *Graph) findCycle() []string {
	colors := make([]int, len(g.nodes))
	stack := make([]int, 0, len(g.nodes))
	var cycle []string

	var visit func(idx int) bool
	visit = func(idx int) bool {
		colors[idx] = colorGray
		stack = append(stack, idx)
		for _, dep := range g.deps[idx] {
			switch colors[dep] {
			case colorGray:
				start := 0
				for i, node := range stack {
					if node == dep {
						start = i
						break
					}
				}
				for _, node := range stack[start:] {
					cycle = append(cycle, g.nodes[node])
				}
				return true
			case colorWhite:
				if visit(dep) {
					return true
				}
			}
		}
		stack = stack[:len(stack)-1]
		colors[idx] = colorBlack
		return false
	}
	for idx := range g.nodes {
		if colors[idx] == colorWhite && visit(idx) {
			return cycle
		}
	}
	return nil
}

func cycleError(cycle []string) error {
	cause := &CycleError{Cycle: cycle}
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(cause.Error()).
		WithCause(cause)
}
