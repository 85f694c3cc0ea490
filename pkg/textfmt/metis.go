package textfmt

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	pkgerrors "github.com/matzehuels/graphbin/pkg/errors"
	"github.com/matzehuels/graphbin/pkg/graph"
)

// ReadMETIS parses an unweighted METIS adjacency list.
//
// The header edge count must match the number of distinct edges found.
// Lines after the last node line must be blank or comments.
func ReadMETIS(r io.Reader) (*graph.Graph, error) {
	s := newLineScanner(r)

	var g *graph.Graph
	var declared int64
	node := int32(0)
	for s.Scan() {
		raw := s.Text()
		if strings.HasPrefix(strings.TrimSpace(raw), "%") {
			continue
		}
		fields := strings.Fields(raw)

		if g == nil {
			if len(fields) == 0 {
				continue
			}
			n, m, err := parseMETISHeader(s, fields)
			if err != nil {
				return nil, err
			}
			if g, err = graph.New(int(n)); err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.ErrCodeInvalidInput, err, "line %d", s.line)
			}
			declared = m
			continue
		}

		if int(node) == g.NodeCount() {
			if len(fields) > 0 {
				return nil, s.errorf("unexpected data after %d node lines", g.NodeCount())
			}
			continue
		}
		for _, f := range fields {
			x, err := strconv.ParseInt(f, 10, 64)
			if err != nil || x < 1 || x > int64(g.NodeCount()) {
				return nil, s.errorf("neighbor %q of node %d outside [1, %d]", f, node+1, g.NodeCount())
			}
			if _, err := g.AddEdge(node, int32(x-1)); err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.ErrCodeInternal, err, "line %d", s.line)
			}
		}
		node++
	}
	if err := s.Err(); err != nil {
		return nil, err
	}

	if g == nil {
		return nil, pkgerrors.New(pkgerrors.ErrCodeInvalidInput, "missing METIS header")
	}
	if int(node) < g.NodeCount() {
		return nil, pkgerrors.New(pkgerrors.ErrCodeInvalidInput,
			"header declares %d nodes, found %d node lines", g.NodeCount(), node)
	}
	if int64(g.EdgeCount()) != declared {
		return nil, pkgerrors.New(pkgerrors.ErrCodeInvalidInput,
			"header declares %d edges, found %d", declared, g.EdgeCount())
	}
	return g, nil
}

func parseMETISHeader(s *lineScanner, fields []string) (n, m int64, err error) {
	if len(fields) < 2 || len(fields) > 4 {
		return 0, 0, s.errorf("METIS header must be \"N E [fmt [ncon]]\", got %q", strings.Join(fields, " "))
	}
	if n, err = strconv.ParseInt(fields[0], 10, 32); err != nil || n < 0 {
		return 0, 0, s.errorf("invalid node count %q", fields[0])
	}
	if m, err = strconv.ParseInt(fields[1], 10, 64); err != nil || m < 0 {
		return 0, 0, s.errorf("invalid edge count %q", fields[1])
	}
	if len(fields) >= 3 && strings.Trim(fields[2], "0") != "" {
		return 0, 0, pkgerrors.New(pkgerrors.ErrCodeUnsupported,
			"line %d: weighted METIS graphs (fmt %s) are not supported", s.line, fields[2])
	}
	return n, m, nil
}

// WriteMETIS writes g as a METIS adjacency list with 1-based ids.
// Neighbor order is preserved; a self-loop appears once on its node's line.
func WriteMETIS(w io.Writer, g *graph.Graph) error {
	bw := bufio.NewWriter(w)
	buf := strconv.AppendInt(nil, int64(g.NodeCount()), 10)
	buf = append(buf, ' ')
	buf = strconv.AppendInt(buf, int64(g.EdgeCount()), 10)
	buf = append(buf, '\n')
	if _, err := bw.Write(buf); err != nil {
		return pkgerrors.Wrap(pkgerrors.ErrCodeIO, err, "write METIS header")
	}
	for i := 0; i < g.NodeCount(); i++ {
		u := int32(i)
		buf = buf[:0]
		first := true
		for v := range g.Neighbors(u) {
			if !first {
				buf = append(buf, ' ')
			}
			first = false
			buf = strconv.AppendInt(buf, int64(v)+1, 10)
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return pkgerrors.Wrap(pkgerrors.ErrCodeIO, err, "write node %d", u)
		}
	}
	if err := bw.Flush(); err != nil {
		return pkgerrors.Wrap(pkgerrors.ErrCodeIO, err, "flush METIS file")
	}
	return nil
}
