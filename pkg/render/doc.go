// Package render draws small graphs as Graphviz diagrams.
//
// # Overview
//
// Binary graph files are opaque, so a quick picture of a small dataset is the
// easiest way to check that a conversion kept the right structure. [ToDOT]
// produces undirected Graphviz DOT source and [RenderSVG] lays it out
// in-process:
//
//	dot, err := render.ToDOT(g, render.Options{})
//	svg, err := render.RenderSVG(ctx, dot)
//
// # Limits
//
// Layout cost grows quickly with graph size and the result stops being
// readable long before that matters. [ToDOT] refuses graphs with more than
// [Options.MaxNodes] nodes ([DefaultMaxNodes] when unset) with an
// INVALID_INPUT error.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; no Graphviz installation is required.
package render
