package graph

import (
	"errors"
	"fmt"
	"iter"
	"math"
)

var (
	// ErrNodeOutOfRange is returned by [Graph.AddEdge] when an endpoint is
	// negative or not below NodeCount().
	ErrNodeOutOfRange = errors.New("node id out of range")

	// ErrTooManyNodes is returned when a node count does not fit the int32
	// identifier space used by the binary formats.
	ErrTooManyNodes = errors.New("node count exceeds int32 range")

	// ErrAsymmetric is returned by [FromAdjacency] when a neighbor list names
	// v under u but not u under v.
	ErrAsymmetric = errors.New("adjacency lists are not symmetric")
)

// Edge is an unordered pair of node identifiers.
// U is the endpoint that was named first when the edge was added.
type Edge struct {
	U, V int32
}

// IsSelfLoop reports whether both endpoints are the same node.
func (e Edge) IsSelfLoop() bool { return e.U == e.V }

// Graph is an undirected graph over dense int32 identifiers.
//
// The zero value is an empty graph with no nodes. Use [New] to create a graph
// with a fixed number of nodes, or [Graph.AddNode] to grow it.
type Graph struct {
	adj       [][]int32
	edges     []Edge
	seen      map[uint64]struct{}
	selfLoops int
}

// New creates a graph with n isolated nodes numbered 0..n-1.
func New(n int) (*Graph, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative node count %d", n)
	}
	if n > math.MaxInt32 {
		return nil, ErrTooManyNodes
	}
	return &Graph{
		adj:  make([][]int32, n),
		seen: make(map[uint64]struct{}),
	}, nil
}

// AddNode appends an isolated node and returns its identifier.
func (g *Graph) AddNode() (int32, error) {
	if len(g.adj) >= math.MaxInt32 {
		return 0, ErrTooManyNodes
	}
	g.adj = append(g.adj, nil)
	return int32(len(g.adj) - 1), nil
}

// AddEdge inserts the unordered edge {u, v}.
//
// It reports false without modifying the graph if the pair is already
// present in either orientation. A self-loop is recorded once in u's
// neighbor list.
func (g *Graph) AddEdge(u, v int32) (bool, error) {
	if !g.valid(u) || !g.valid(v) {
		return false, fmt.Errorf("%w: edge (%d, %d) with %d nodes", ErrNodeOutOfRange, u, v, len(g.adj))
	}
	if g.seen == nil {
		g.seen = make(map[uint64]struct{})
	}
	k := pairKey(u, v)
	if _, ok := g.seen[k]; ok {
		return false, nil
	}
	g.seen[k] = struct{}{}
	g.edges = append(g.edges, Edge{U: u, V: v})
	g.adj[u] = append(g.adj[u], v)
	if u == v {
		g.selfLoops++
	} else {
		g.adj[v] = append(g.adj[v], u)
	}
	return true, nil
}

// HasEdge reports whether the unordered pair {u, v} is present.
func (g *Graph) HasEdge(u, v int32) bool {
	if !g.valid(u) || !g.valid(v) {
		return false
	}
	_, ok := g.seen[pairKey(u, v)]
	return ok
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.adj) }

// EdgeCount returns the number of unordered edges, self-loops included.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// SelfLoopCount returns the number of self-loop edges.
func (g *Graph) SelfLoopCount() int { return g.selfLoops }

// Degree returns the length of u's neighbor list, or 0 if u is not a node.
func (g *Graph) Degree(u int32) int {
	if !g.valid(u) {
		return 0
	}
	return len(g.adj[u])
}

// Neighbors yields u's neighbors in insertion order.
func (g *Graph) Neighbors(u int32) iter.Seq[int32] {
	return func(yield func(int32) bool) {
		if !g.valid(u) {
			return
		}
		for _, v := range g.adj[u] {
			if !yield(v) {
				return
			}
		}
	}
}

// NeighborSlice returns a copy of u's neighbor list.
func (g *Graph) NeighborSlice(u int32) []int32 {
	if !g.valid(u) {
		return nil
	}
	return append([]int32(nil), g.adj[u]...)
}

// Edges yields every unordered edge exactly once, in insertion order.
func (g *Graph) Edges() iter.Seq2[int32, int32] {
	return func(yield func(int32, int32) bool) {
		for _, e := range g.edges {
			if !yield(e.U, e.V) {
				return
			}
		}
	}
}

// EdgeList returns a copy of the edge list.
func (g *Graph) EdgeList() []Edge {
	return append([]Edge(nil), g.edges...)
}

// MaxDegree returns the largest degree in the graph.
func (g *Graph) MaxDegree() int {
	maxDeg := 0
	for _, nbrs := range g.adj {
		maxDeg = max(maxDeg, len(nbrs))
	}
	return maxDeg
}

// FromAdjacency builds a graph that keeps the given neighbor order exactly.
//
// Each non-loop edge must be listed under both endpoints and each self-loop
// once under its node; otherwise ErrAsymmetric is returned. The edge list is
// derived in node order, taking each pair from its lower endpoint. lists is
// retained by the graph.
func FromAdjacency(lists [][]int32) (*Graph, error) {
	if len(lists) > math.MaxInt32 {
		return nil, ErrTooManyNodes
	}
	g := &Graph{adj: lists, seen: make(map[uint64]struct{})}

	// sides records under which endpoint each non-loop pair was listed:
	// bit 1 for the lower id, bit 2 for the higher one.
	sides := make(map[uint64]uint8)
	for u, nbrs := range lists {
		uid := int32(u)
		for _, v := range nbrs {
			if !g.valid(v) {
				return nil, fmt.Errorf("%w: neighbor %d of node %d with %d nodes", ErrNodeOutOfRange, v, u, len(lists))
			}
			k := pairKey(uid, v)
			if v == uid {
				if _, dup := g.seen[k]; dup {
					return nil, fmt.Errorf("%w: self-loop on node %d listed twice", ErrAsymmetric, u)
				}
				g.seen[k] = struct{}{}
				g.edges = append(g.edges, Edge{U: uid, V: v})
				g.selfLoops++
				continue
			}
			bit := uint8(1)
			if uid > v {
				bit = 2
			}
			if sides[k]&bit != 0 {
				return nil, fmt.Errorf("%w: neighbor %d listed twice under node %d", ErrAsymmetric, v, u)
			}
			sides[k] |= bit
			if bit == 1 {
				g.seen[k] = struct{}{}
				g.edges = append(g.edges, Edge{U: uid, V: v})
			}
		}
	}
	for k, s := range sides {
		if s != 3 {
			u, v := unpairKey(k)
			return nil, fmt.Errorf("%w: pair (%d, %d) listed under one endpoint only", ErrAsymmetric, u, v)
		}
	}
	return g, nil
}

func (g *Graph) valid(u int32) bool {
	return u >= 0 && int(u) < len(g.adj)
}

// pairKey packs an unordered pair into a single map key.
func pairKey(u, v int32) uint64 {
	if u > v {
		u, v = v, u
	}
	return uint64(uint32(u))<<32 | uint64(uint32(v))
}

func unpairKey(k uint64) (int32, int32) {
	return int32(uint32(k >> 32)), int32(uint32(k))
}
