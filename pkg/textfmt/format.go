package textfmt

import (
	"bufio"
	"io"
	"strings"

	pkgerrors "github.com/matzehuels/graphbin/pkg/errors"
	"github.com/matzehuels/graphbin/pkg/graph"
)

// Format selects a text graph grammar.
type Format int

const (
	// FormatEdgeList is the SNAP edge list grammar.
	FormatEdgeList Format = iota + 1
	// FormatAdjacency is the METIS adjacency list grammar.
	FormatAdjacency
)

// Formats lists every supported format in a stable order.
var Formats = []Format{FormatEdgeList, FormatAdjacency}

// maxLineSize bounds a single input line. METIS lines of hub nodes can be
// long, so this is well above bufio's default.
const maxLineSize = 64 << 20

// ParseFormat maps a user-supplied format name to a Format.
// "snap" and "edgelist" select the edge list, "adjlist" and "metis" the
// adjacency list. Matching is case-insensitive.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "snap", "edgelist":
		return FormatEdgeList, nil
	case "adjlist", "metis":
		return FormatAdjacency, nil
	}
	return 0, pkgerrors.New(pkgerrors.ErrCodeInvalidFormat,
		"unknown format %q (expected snap, edgelist, adjlist or metis)", s)
}

// String returns the canonical name of f.
func (f Format) String() string {
	switch f {
	case FormatEdgeList:
		return "edgelist"
	case FormatAdjacency:
		return "adjlist"
	}
	return "unknown"
}

// Extension returns the file extension graphbin uses when writing f.
func (f Format) Extension() string {
	return "." + f.String()
}

// Read parses a graph in format f from r.
func (f Format) Read(r io.Reader) (*graph.Graph, error) {
	switch f {
	case FormatEdgeList:
		return ReadEdgeList(r)
	case FormatAdjacency:
		return ReadMETIS(r)
	}
	return nil, pkgerrors.New(pkgerrors.ErrCodeUnsupported, "no reader for format %d", int(f))
}

// Write serializes g to w in format f.
func (f Format) Write(w io.Writer, g *graph.Graph) error {
	switch f {
	case FormatEdgeList:
		return WriteEdgeList(w, g)
	case FormatAdjacency:
		return WriteMETIS(w, g)
	}
	return pkgerrors.New(pkgerrors.ErrCodeUnsupported, "no writer for format %d", int(f))
}

// lineScanner wraps bufio.Scanner with line numbering and a large buffer.
type lineScanner struct {
	sc   *bufio.Scanner
	line int
}

func newLineScanner(r io.Reader) *lineScanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &lineScanner{sc: sc}
}

func (s *lineScanner) Scan() bool {
	if !s.sc.Scan() {
		return false
	}
	s.line++
	return true
}

func (s *lineScanner) Text() string { return s.sc.Text() }

func (s *lineScanner) Err() error {
	if err := s.sc.Err(); err != nil {
		if err == bufio.ErrTooLong {
			return pkgerrors.New(pkgerrors.ErrCodeInvalidInput, "line %d exceeds %d bytes", s.line+1, maxLineSize)
		}
		return pkgerrors.Wrap(pkgerrors.ErrCodeIO, err, "read line %d", s.line+1)
	}
	return nil
}

func (s *lineScanner) errorf(format string, args ...any) error {
	return pkgerrors.New(pkgerrors.ErrCodeInvalidInput, "line %d: "+format, append([]any{s.line}, args...)...)
}
