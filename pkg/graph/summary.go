package graph

import (
	"cmp"
	"slices"

	"gonum.org/v1/gonum/graph/topo"
)

// Summary describes the size and connectivity of a graph.
type Summary struct {
	Nodes            int `json:"nodes"`
	Edges            int `json:"edges"`
	SelfLoops        int `json:"self_loops"`
	MaxDegree        int `json:"max_degree"`
	Components       int `json:"components"`
	LargestComponent int `json:"largest_component"`
}

// Components returns the connected components of g.
// Each component is sorted ascending; components are ordered by their
// smallest node.
func Components(g *Graph) [][]int32 {
	if g.NodeCount() == 0 {
		return nil
	}
	cc := topo.ConnectedComponents(g.Undirected())
	out := make([][]int32, len(cc))
	for i, c := range cc {
		ids := make([]int32, len(c))
		for j, n := range c {
			ids[j] = int32(n.ID())
		}
		slices.Sort(ids)
		out[i] = ids
	}
	slices.SortFunc(out, func(a, b []int32) int { return cmp.Compare(a[0], b[0]) })
	return out
}

// Summarize computes a [Summary] for g.
// Connectivity is only computed when withComponents is true since it
// walks the whole graph.
func Summarize(g *Graph, withComponents bool) Summary {
	s := Summary{
		Nodes:     g.NodeCount(),
		Edges:     g.EdgeCount(),
		SelfLoops: g.SelfLoopCount(),
		MaxDegree: g.MaxDegree(),
	}
	if !withComponents {
		return s
	}
	for _, c := range Components(g) {
		s.Components++
		s.LargestComponent = max(s.LargestComponent, len(c))
	}
	return s
}
