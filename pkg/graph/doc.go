// Package graph provides the in-memory undirected graph handed to graphbin's
// encoders.
//
// The graph is deliberately minimal: it stores exactly what the binary
// encodings consume, in the order they consume it.
//
//   - Node identifiers are dense int32 values in [0, NodeCount()).
//   - Every node owns an ordered neighbor list. Neighbors appear in insertion
//     order, which is the "native" order written by the adjacency encoder.
//   - Edges are unordered pairs, stored once each, in insertion order.
//
// # Self-loops
//
// A self-loop (u, u) is stored once in u's neighbor list, so it contributes 1
// to Degree(u). The total neighbor count of a graph is therefore
// 2*EdgeCount() - SelfLoopCount().
//
// # Duplicate edges
//
// [Graph.AddEdge] collapses duplicate unordered pairs: adding (v, u) after
// (u, v) is a no-op that reports false. Text loaders rely on this to merge
// files that list both directions of an undirected edge.
//
// # Interop with gonum
//
// [Graph.Undirected] exposes a read-only gonum graph.Undirected view so gonum
// algorithms (for example topo.ConnectedComponents, used by [Components]) run
// directly on a Graph. [FromUndirected] converts a gonum graph, as produced by
// the generators in gonum's graphs/gen package, into a Graph.
//
// # Concurrency
//
// A Graph is safe for concurrent reads but not concurrent writes.
package graph
