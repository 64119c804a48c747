// Package dependency computes start ordering for a set of services with
// declared dependencies. Resolution is a pure function over the graph:
// no I/O, no side effects.
package dependency

import (
	"fmt"
)

// CycleError reports a dependency cycle. Service is the node at which the
// cycle was detected, which is on the cycle but not necessarily the start
// of its smallest loop.
type CycleError struct {
	Service string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("circular dependency detected involving %q", e.Service)
}

// Node is one service in the graph.
type Node struct {
	Name      string
	DependsOn []string
}

// Graph holds the dependency relationships between services. Nodes keep
// their insertion order so resolution is deterministic for a given
// compose file.
type Graph struct {
	nodes map[string]Node
	order []string
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]Node),
	}
}

// AddNode registers a node. Re-adding a name replaces its dependency list
// but keeps its original position.
func (g *Graph) AddNode(n Node) {
	if _, exists := g.nodes[n.Name]; !exists {
		g.order = append(g.order, n.Name)
	}
	g.nodes[n.Name] = n
}

// Get returns the node registered under name.
func (g *Graph) Get(name string) (Node, bool) {
	n, ok := g.nodes[name]
	return n, ok
}

type visitState int

const (
	unvisited visitState = iota
	visiting
	visited
)

// Resolve returns a topological order of all nodes: every node appears
// after all of its (transitive) dependencies. Names that were referenced
// as dependencies but never registered still appear in the order, before
// their dependents; callers are expected to reject them downstream.
// A cycle yields a CycleError and no partial order.
func (g *Graph) Resolve() ([]string, error) {
	order := make([]string, 0, len(g.order))
	states := make(map[string]visitState, len(g.order))

	var visit func(name string) error
	visit = func(name string) error {
		switch states[name] {
		case visiting:
			return &CycleError{Service: name}
		case visited:
			return nil
		}

		states[name] = visiting

		if node, ok := g.nodes[name]; ok {
			for _, dep := range node.DependsOn {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		states[name] = visited
		order = append(order, name)
		return nil
	}

	for _, name := range g.order {
		if states[name] != visited {
			if err := visit(name); err != nil {
				return nil, err
			}
		}
	}

	return order, nil
}
