package binfmt

import (
	"bufio"
	"encoding/binary"
	"io"
	"iter"
	"math"

	pkgerrors "github.com/matzehuels/graphbin/pkg/errors"
)

const (
	// FieldSize is the size of every integer field in both formats.
	FieldSize = 4

	// RecordSize is the size of one .binedge record.
	RecordSize = 2 * FieldSize

	// HeaderSize is the size of the .binadj header (node and edge count).
	HeaderSize = 2 * FieldSize

	// bufferSize is the write/read buffer used around the underlying stream.
	bufferSize = 1 << 16
)

// File extensions of the two binary formats, including the leading dot.
const (
	ExtEdges     = ".binedge"
	ExtAdjacency = ".binadj"
)

// EdgeSource is a graph that can enumerate its undirected edges.
// Edges must yield each unordered pair exactly once.
type EdgeSource interface {
	Edges() iter.Seq2[int32, int32]
}

// AdjacencySource is a graph that exposes its full adjacency structure.
// Node identifiers are assumed dense in [0, NodeCount()).
type AdjacencySource interface {
	NodeCount() int
	EdgeCount() int
	Degree(u int32) int
	Neighbors(u int32) iter.Seq[int32]
}

// EncodeEdges writes one record per directed arc of g to w.
//
// Each edge {u, v} produces the record (u, v) and, unless u == v, the
// reverse record (v, u). The first write error is returned; w may then hold
// a truncated stream.
func EncodeEdges(w io.Writer, g EdgeSource) error {
	bw := bufio.NewWriterSize(w, bufferSize)
	var rec [RecordSize]byte
	for u, v := range g.Edges() {
		putArc(rec[:], u, v)
		if _, err := bw.Write(rec[:]); err != nil {
			return pkgerrors.Wrap(pkgerrors.ErrCodeIO, err, "write edge record (%d, %d)", u, v)
		}
		if u == v {
			continue
		}
		putArc(rec[:], v, u)
		if _, err := bw.Write(rec[:]); err != nil {
			return pkgerrors.Wrap(pkgerrors.ErrCodeIO, err, "write edge record (%d, %d)", v, u)
		}
	}
	if err := bw.Flush(); err != nil {
		return pkgerrors.Wrap(pkgerrors.ErrCodeIO, err, "flush edge records")
	}
	return nil
}

// EncodeAdjacency writes the adjacency stream of g to w.
//
// The header holds NodeCount and EdgeCount. Each node then contributes the
// degree g reports followed by every neighbor g yields, in order. Counts
// that do not fit in an int32 are rejected before anything is written.
func EncodeAdjacency(w io.Writer, g AdjacencySource) error {
	n, m := g.NodeCount(), g.EdgeCount()
	if n < 0 || n > math.MaxInt32 {
		return pkgerrors.New(pkgerrors.ErrCodeInvalidInput, "node count %d does not fit in int32", n)
	}
	if m < 0 || m > math.MaxInt32 {
		return pkgerrors.New(pkgerrors.ErrCodeInvalidInput, "edge count %d does not fit in int32", m)
	}

	bw := bufio.NewWriterSize(w, bufferSize)
	var field [FieldSize]byte
	put := func(x int32) error {
		binary.LittleEndian.PutUint32(field[:], uint32(x))
		_, err := bw.Write(field[:])
		return err
	}

	if err := put(int32(n)); err != nil {
		return pkgerrors.Wrap(pkgerrors.ErrCodeIO, err, "write node count")
	}
	if err := put(int32(m)); err != nil {
		return pkgerrors.Wrap(pkgerrors.ErrCodeIO, err, "write edge count")
	}

	for i := 0; i < n; i++ {
		u := int32(i)
		deg := g.Degree(u)
		if deg < 0 || deg > math.MaxInt32 {
			return pkgerrors.New(pkgerrors.ErrCodeInvalidInput, "degree %d of node %d does not fit in int32", deg, u)
		}
		if err := put(int32(deg)); err != nil {
			return pkgerrors.Wrap(pkgerrors.ErrCodeIO, err, "write degree of node %d", u)
		}
		for v := range g.Neighbors(u) {
			if err := put(v); err != nil {
				return pkgerrors.Wrap(pkgerrors.ErrCodeIO, err, "write neighbor %d of node %d", v, u)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return pkgerrors.Wrap(pkgerrors.ErrCodeIO, err, "flush adjacency stream")
	}
	return nil
}

// EdgeRecordCount returns the number of records [EncodeEdges] writes for a
// graph with the given edge and self-loop counts.
func EdgeRecordCount(edges, selfLoops int) int {
	return 2*edges - selfLoops
}

func putArc(b []byte, u, v int32) {
	binary.LittleEndian.PutUint32(b[0:FieldSize], uint32(u))
	binary.LittleEndian.PutUint32(b[FieldSize:RecordSize], uint32(v))
}
