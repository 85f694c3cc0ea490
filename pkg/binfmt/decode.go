package binfmt

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	pkgerrors "github.com/matzehuels/graphbin/pkg/errors"
	"github.com/matzehuels/graphbin/pkg/graph"
)

// Arc is one decoded .binedge record.
type Arc struct {
	From, To int32
}

// ReadArcs decodes every record of a .binedge stream.
// A stream whose length is not a multiple of [RecordSize] is corrupt.
func ReadArcs(r io.Reader) ([]Arc, error) {
	br := bufio.NewReaderSize(r, bufferSize)
	var (
		arcs []Arc
		rec  [RecordSize]byte
	)
	for {
		n, err := io.ReadFull(br, rec[:])
		if err == io.EOF {
			return arcs, nil
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, pkgerrors.New(pkgerrors.ErrCodeCorrupt, "truncated edge record: %d trailing bytes after record %d", n, len(arcs))
		}
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.ErrCodeIO, err, "read edge record %d", len(arcs))
		}
		arcs = append(arcs, Arc{
			From: int32(binary.LittleEndian.Uint32(rec[0:FieldSize])),
			To:   int32(binary.LittleEndian.Uint32(rec[FieldSize:RecordSize])),
		})
	}
}

// ReadEdges rebuilds a graph from a .binedge stream.
//
// The node count is one more than the largest id seen, so trailing isolated
// nodes of the original graph are not recoverable from this format. Every
// edge {u, v} with u != v must appear as exactly the two records (u, v) and
// (v, u), and every self-loop as exactly one (u, u) record. Anything else,
// including the legacy two-record self-loop, is corrupt.
func ReadEdges(r io.Reader) (*graph.Graph, error) {
	arcs, err := ReadArcs(r)
	if err != nil {
		return nil, err
	}

	maxID := int32(-1)
	for i, a := range arcs {
		if a.From < 0 || a.To < 0 {
			return nil, pkgerrors.New(pkgerrors.ErrCodeCorrupt, "record %d has negative node id (%d, %d)", i, a.From, a.To)
		}
		maxID = max(maxID, a.From, a.To)
	}

	g, err := graph.New(int(maxID) + 1)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeCorrupt, err, "allocate graph")
	}

	// unpaired holds arcs whose reverse has not been read yet. The encoder
	// writes both directions back to back, so it stays small.
	unpaired := make(map[Arc]struct{})
	for i, a := range arcs {
		added, err := g.AddEdge(a.From, a.To)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.ErrCodeCorrupt, err, "add arc (%d, %d)", a.From, a.To)
		}
		switch {
		case added && a.From != a.To:
			unpaired[a] = struct{}{}
		case added:
		case a.From == a.To:
			return nil, pkgerrors.New(pkgerrors.ErrCodeCorrupt, "record %d repeats self-loop (%d, %d)", i, a.From, a.To)
		default:
			rev := Arc{From: a.To, To: a.From}
			if _, ok := unpaired[rev]; !ok {
				return nil, pkgerrors.New(pkgerrors.ErrCodeCorrupt, "record %d repeats arc (%d, %d)", i, a.From, a.To)
			}
			delete(unpaired, rev)
		}
	}
	for a := range unpaired {
		return nil, pkgerrors.New(pkgerrors.ErrCodeCorrupt, "arc (%d, %d) has no reverse record", a.From, a.To)
	}
	return g, nil
}

// ReadAdjacency rebuilds a graph from a .binadj stream, keeping each node's
// neighbor order.
//
// The stream is rejected as corrupt if it is truncated, carries trailing
// bytes, declares negative counts or degrees, names a neighbor outside
// [0, nodeCount), lists an edge under only one endpoint, or holds a
// different number of edges than its header declares.
func ReadAdjacency(r io.Reader) (*graph.Graph, error) {
	br := bufio.NewReaderSize(r, bufferSize)
	var field [FieldSize]byte
	read := func() (int32, error) {
		if _, err := io.ReadFull(br, field[:]); err != nil {
			return 0, err
		}
		return int32(binary.LittleEndian.Uint32(field[:])), nil
	}

	n, err := read()
	if err != nil {
		return nil, fieldError(err, "node count")
	}
	m, err := read()
	if err != nil {
		return nil, fieldError(err, "edge count")
	}
	if n < 0 || m < 0 {
		return nil, pkgerrors.New(pkgerrors.ErrCodeCorrupt, "negative header counts (%d nodes, %d edges)", n, m)
	}

	// Capacity hints are capped so a damaged header cannot force a huge
	// allocation before the stream runs out.
	const maxHint = 1 << 20
	lists := make([][]int32, 0, min(int(n), maxHint))
	for u := int32(0); u < n; u++ {
		deg, err := read()
		if err != nil {
			return nil, fieldError(err, fmt.Sprintf("degree of node %d", u))
		}
		if deg < 0 || deg > n {
			return nil, pkgerrors.New(pkgerrors.ErrCodeCorrupt, "node %d has invalid degree %d for %d nodes", u, deg, n)
		}
		nbrs := make([]int32, 0, min(int(deg), maxHint))
		for i := int32(0); i < deg; i++ {
			v, err := read()
			if err != nil {
				return nil, fieldError(err, fmt.Sprintf("neighbor %d of node %d", i, u))
			}
			nbrs = append(nbrs, v)
		}
		lists = append(lists, nbrs)
	}

	if _, err := br.ReadByte(); err == nil {
		return nil, pkgerrors.New(pkgerrors.ErrCodeCorrupt, "trailing data after %d nodes", n)
	} else if err != io.EOF {
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeIO, err, "read past last node")
	}

	g, err := graph.FromAdjacency(lists)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeCorrupt, err, "rebuild adjacency")
	}
	if g.EdgeCount() != int(m) {
		return nil, pkgerrors.New(pkgerrors.ErrCodeCorrupt, "header declares %d edges, lists hold %d", m, g.EdgeCount())
	}
	return g, nil
}

// fieldError classifies a failed field read: running out of input is
// corruption, anything else is an I/O failure of the underlying reader.
func fieldError(err error, what string) error {
	if err == io.EOF || errors.Is(err, io.ErrUnexpectedEOF) {
		return pkgerrors.New(pkgerrors.ErrCodeCorrupt, "truncated stream reading %s", what)
	}
	return pkgerrors.Wrap(pkgerrors.ErrCodeIO, err, "read %s", what)
}
