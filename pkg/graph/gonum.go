package graph

import (
	"math"
	"slices"

	gonum "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/iterator"
	"gonum.org/v1/gonum/graph/simple"
)

// Undirected returns a read-only gonum view of g.
//
// Self-loops are not reported by From, matching gonum's simple graphs, but
// HasEdgeBetween(u, u) still reports them. The view shares storage with g
// and must not be used while g is being modified.
func (g *Graph) Undirected() gonum.Undirected {
	return undirectedView{g}
}

type undirectedView struct{ g *Graph }

func (v undirectedView) Node(id int64) gonum.Node {
	if !v.g.valid64(id) {
		return nil
	}
	return simple.Node(id)
}

func (v undirectedView) Nodes() gonum.Nodes {
	if len(v.g.adj) == 0 {
		return gonum.Empty
	}
	nodes := make([]gonum.Node, len(v.g.adj))
	for i := range nodes {
		nodes[i] = simple.Node(i)
	}
	return iterator.NewOrderedNodes(nodes)
}

func (v undirectedView) From(id int64) gonum.Nodes {
	if !v.g.valid64(id) {
		return gonum.Empty
	}
	nbrs := v.g.adj[id]
	nodes := make([]gonum.Node, 0, len(nbrs))
	for _, n := range nbrs {
		if int64(n) != id {
			nodes = append(nodes, simple.Node(n))
		}
	}
	if len(nodes) == 0 {
		return gonum.Empty
	}
	return iterator.NewOrderedNodes(nodes)
}

func (v undirectedView) HasEdgeBetween(xid, yid int64) bool {
	if !v.g.valid64(xid) || !v.g.valid64(yid) {
		return false
	}
	return v.g.HasEdge(int32(xid), int32(yid))
}

func (v undirectedView) Edge(uid, vid int64) gonum.Edge {
	return v.EdgeBetween(uid, vid)
}

func (v undirectedView) EdgeBetween(xid, yid int64) gonum.Edge {
	if xid == yid || !v.HasEdgeBetween(xid, yid) {
		return nil
	}
	return simple.Edge{F: simple.Node(xid), T: simple.Node(yid)}
}

func (g *Graph) valid64(id int64) bool {
	return id >= 0 && id < int64(len(g.adj))
}

// FromUndirected converts a gonum undirected graph into a Graph.
//
// Node IDs are relabelled densely in ascending ID order, so a graph whose IDs
// are already 0..n-1 keeps them. Each node's neighbors are added in ascending
// order, making the result independent of gonum's map iteration order.
func FromUndirected(src gonum.Undirected) (*Graph, error) {
	ids := make([]int64, 0, max(src.Nodes().Len(), 0))
	for nodes := src.Nodes(); nodes.Next(); {
		ids = append(ids, nodes.Node().ID())
	}
	if len(ids) > math.MaxInt32 {
		return nil, ErrTooManyNodes
	}
	slices.Sort(ids)

	label := make(map[int64]int32, len(ids))
	for i, id := range ids {
		label[id] = int32(i)
	}

	g, err := New(len(ids))
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		u := label[id]
		var nbrs []int32
		for it := src.From(id); it.Next(); {
			nbrs = append(nbrs, label[it.Node().ID()])
		}
		slices.Sort(nbrs)
		for _, v := range nbrs {
			if _, err := g.AddEdge(u, v); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}
