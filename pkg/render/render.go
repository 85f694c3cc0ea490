package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	pkgerrors "github.com/matzehuels/graphbin/pkg/errors"
	"github.com/matzehuels/graphbin/pkg/graph"
)

// DefaultMaxNodes is the node limit used when Options.MaxNodes is zero.
const DefaultMaxNodes = 500

// Options configures diagram generation.
type Options struct {
	// MaxNodes is the largest graph ToDOT accepts.
	MaxNodes int

	// Detailed adds each node's degree to its label.
	// When false, only the node id is shown.
	Detailed bool
}

// ToDOT converts g to undirected Graphviz DOT source. Every node is listed,
// isolated ones included, followed by each edge once in the graph's edge
// order. A self-loop is drawn as an edge from the node to itself.
func ToDOT(g *graph.Graph, opts Options) (string, error) {
	limit := opts.MaxNodes
	if limit <= 0 {
		limit = DefaultMaxNodes
	}
	if n := g.NodeCount(); n > limit {
		return "", pkgerrors.New(pkgerrors.ErrCodeInvalidInput,
			"graph has %d nodes, rendering is limited to %d", n, limit)
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=12];\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for i := 0; i < g.NodeCount(); i++ {
		u := int32(i)
		fmt.Fprintf(&buf, "  %d [label=%q];\n", u, fmtLabel(g, u, opts.Detailed))
	}

	buf.WriteString("\n")
	for u, v := range g.Edges() {
		fmt.Fprintf(&buf, "  %d -- %d;\n", u, v)
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

func fmtLabel(g *graph.Graph, u int32, detailed bool) string {
	id := strconv.Itoa(int(u))
	if !detailed {
		return id
	}
	return id + "\ndeg " + strconv.Itoa(g.Degree(u))
}

// RenderSVG lays out DOT source with Graphviz and returns the SVG bytes.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg tag with one whose
// viewBox starts at the origin and whose size matches it, so browsers scale
// the drawing instead of cropping it.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
