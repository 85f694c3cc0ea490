package textfmt

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	pkgerrors "github.com/matzehuels/graphbin/pkg/errors"
	"github.com/matzehuels/graphbin/pkg/graph"
)

// ReadEdgeList parses a SNAP-style edge list.
//
// Ids are arbitrary non-negative integers and are relabelled 0, 1, 2, ... in
// the order they first appear. Columns after the second are ignored so
// weighted or timestamped lists load as plain graphs.
func ReadEdgeList(r io.Reader) (*graph.Graph, error) {
	var (
		g     graph.Graph
		label = make(map[int64]int32)
		s     = newLineScanner(r)
	)
	id := func(raw string) (int32, error) {
		x, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || x < 0 {
			return 0, s.errorf("invalid node id %q", raw)
		}
		if u, ok := label[x]; ok {
			return u, nil
		}
		u, err := g.AddNode()
		if err != nil {
			return 0, pkgerrors.Wrap(pkgerrors.ErrCodeInvalidInput, err, "line %d", s.line)
		}
		label[x] = u
		return u, nil
	}

	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)
		if fields[0] == "p" {
			continue
		}
		if len(fields) < 2 {
			return nil, s.errorf("expected two node ids, got %q", line)
		}
		u, err := id(fields[0])
		if err != nil {
			return nil, err
		}
		v, err := id(fields[1])
		if err != nil {
			return nil, err
		}
		if _, err := g.AddEdge(u, v); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.ErrCodeInternal, err, "line %d", s.line)
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return &g, nil
}

// WriteEdgeList writes g as a space-separated edge list with a '#' header
// carrying the node and edge counts. Each edge is written once.
func WriteEdgeList(w io.Writer, g *graph.Graph) error {
	bw := bufio.NewWriter(w)
	var buf []byte
	buf = append(buf, "# Nodes: "...)
	buf = strconv.AppendInt(buf, int64(g.NodeCount()), 10)
	buf = append(buf, " Edges: "...)
	buf = strconv.AppendInt(buf, int64(g.EdgeCount()), 10)
	buf = append(buf, '\n')
	if _, err := bw.Write(buf); err != nil {
		return pkgerrors.Wrap(pkgerrors.ErrCodeIO, err, "write edge list header")
	}
	for u, v := range g.Edges() {
		buf = strconv.AppendInt(buf[:0], int64(u), 10)
		buf = append(buf, ' ')
		buf = strconv.AppendInt(buf, int64(v), 10)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return pkgerrors.Wrap(pkgerrors.ErrCodeIO, err, "write edge (%d, %d)", u, v)
		}
	}
	if err := bw.Flush(); err != nil {
		return pkgerrors.Wrap(pkgerrors.ErrCodeIO, err, "flush edge list")
	}
	return nil
}
