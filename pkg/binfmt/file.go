package binfmt

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	pkgerrors "github.com/matzehuels/graphbin/pkg/errors"
	"github.com/matzehuels/graphbin/pkg/graph"
)

// Kind identifies one of the two binary formats.
type Kind int

const (
	// KindEdges is the .binedge record stream.
	KindEdges Kind = iota + 1
	// KindAdjacency is the .binadj adjacency stream.
	KindAdjacency
)

// String returns the file extension of k without the leading dot.
func (k Kind) String() string {
	switch k {
	case KindEdges:
		return "binedge"
	case KindAdjacency:
		return "binadj"
	}
	return "unknown"
}

// Ext returns the file extension of k including the leading dot.
func (k Kind) Ext() string {
	return "." + k.String()
}

// KindFromPath detects the binary format from a file extension.
func KindFromPath(path string) (Kind, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtEdges:
		return KindEdges, true
	case ExtAdjacency:
		return KindAdjacency, true
	}
	return 0, false
}

// ParseKind parses "binedge" or "binadj", with or without a leading dot.
func ParseKind(s string) (Kind, error) {
	switch strings.TrimPrefix(strings.ToLower(s), ".") {
	case "binedge":
		return KindEdges, nil
	case "binadj":
		return KindAdjacency, nil
	}
	return 0, pkgerrors.New(pkgerrors.ErrCodeInvalidFormat, "unknown binary format %q (expected binedge or binadj)", s)
}

// WriteEdgeFile creates or truncates path and writes the .binedge stream of g.
// The file is closed on every path; a close failure is reported like a
// write failure.
func WriteEdgeFile(path string, g EdgeSource) error {
	return writeFile(path, func(w io.Writer) error { return EncodeEdges(w, g) })
}

// WriteAdjacencyFile creates or truncates path and writes the .binadj stream
// of g.
func WriteAdjacencyFile(path string, g AdjacencySource) error {
	return writeFile(path, func(w io.Writer) error { return EncodeAdjacency(w, g) })
}

// ReadEdgeFile decodes the .binedge file at path. See [ReadEdges].
func ReadEdgeFile(path string) (*graph.Graph, error) {
	var g *graph.Graph
	err := readFile(path, func(r io.Reader) (err error) {
		g, err = ReadEdges(r)
		return err
	})
	return g, err
}

// ReadAdjacencyFile decodes the .binadj file at path. See [ReadAdjacency].
func ReadAdjacencyFile(path string) (*graph.Graph, error) {
	var g *graph.Graph
	err := readFile(path, func(r io.Reader) (err error) {
		g, err = ReadAdjacency(r)
		return err
	})
	return g, err
}

// ReadFile decodes path according to its extension.
func ReadFile(path string) (*graph.Graph, Kind, error) {
	kind, ok := KindFromPath(path)
	if !ok {
		return nil, 0, pkgerrors.New(pkgerrors.ErrCodeInvalidFormat, "%s: not a %s or %s file", path, ExtEdges, ExtAdjacency)
	}
	var (
		g   *graph.Graph
		err error
	)
	switch kind {
	case KindEdges:
		g, err = ReadEdgeFile(path)
	case KindAdjacency:
		g, err = ReadAdjacencyFile(path)
	}
	return g, kind, err
}

// Encode writes g to w in the given format.
func Encode(w io.Writer, kind Kind, g *graph.Graph) error {
	switch kind {
	case KindEdges:
		return EncodeEdges(w, g)
	case KindAdjacency:
		return EncodeAdjacency(w, g)
	}
	return pkgerrors.New(pkgerrors.ErrCodeUnsupported, "unsupported binary format %d", int(kind))
}

// Decode reads a graph from r in the given format.
func Decode(r io.Reader, kind Kind) (*graph.Graph, error) {
	switch kind {
	case KindEdges:
		return ReadEdges(r)
	case KindAdjacency:
		return ReadAdjacency(r)
	}
	return nil, pkgerrors.New(pkgerrors.ErrCodeUnsupported, "unsupported binary format %d", int(kind))
}

func writeFile(path string, encode func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.ErrCodeIO, err, "create %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = pkgerrors.Wrap(pkgerrors.ErrCodeIO, cerr, "close %s", path)
		}
	}()
	return encode(f)
}

func readFile(path string, decode func(io.Reader) error) error {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return pkgerrors.Wrap(pkgerrors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.ErrCodeIO, err, "open %s", path)
	}
	defer f.Close()
	return decode(f)
}
