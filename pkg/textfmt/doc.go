// Package textfmt reads and writes the plain-text graph formats graphbin
// converts from.
//
// Two formats are supported, selected through the [Format] tagged variant:
//
//   - [FormatEdgeList]: SNAP-style edge lists. One "u v" pair per line,
//     separated by tabs or spaces. Lines starting with '#' are comments and an
//     optional "p N E" problem line is accepted. Node ids need not be
//     contiguous; they are relabelled densely in order of first appearance.
//
//   - [FormatAdjacency]: METIS adjacency lists. A header "N E [fmt]" followed
//     by exactly N lines, line i holding the 1-based neighbors of node i-1.
//     An empty line is an isolated node. Lines starting with '%' are
//     comments. Weighted variants (non-zero fmt) are rejected.
//
// Both readers collapse duplicate pairs, so an undirected edge listed under
// both endpoints becomes one edge. Parse failures carry the INVALID_INPUT
// code and the offending line number.
//
// The writers produce files the readers accept: [WriteMETIS] keeps node ids,
// [WriteEdgeList] keeps edges but, being an edge list, drops isolated nodes.
package textfmt
