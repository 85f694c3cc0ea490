package binfmt

import (
	"bytes"
	"encoding/binary"
	"errors"
	"iter"
	"testing"

	pkgerrors "github.com/matzehuels/graphbin/pkg/errors"
	"github.com/matzehuels/graphbin/pkg/graph"
)

func buildGraph(t *testing.T, n int, edges ...[2]int32) *graph.Graph {
	t.Helper()
	g, err := graph.New(n)
	if err != nil {
		t.Fatalf("New(%d) error: %v", n, err)
	}
	for _, e := range edges {
		if _, err := g.AddEdge(e[0], e[1]); err != nil {
			t.Fatalf("AddEdge(%d, %d) error: %v", e[0], e[1], err)
		}
	}
	return g
}

func ints(t *testing.T, b []byte) []int32 {
	t.Helper()
	if len(b)%FieldSize != 0 {
		t.Fatalf("stream length %d is not a multiple of %d", len(b), FieldSize)
	}
	out := make([]int32, len(b)/FieldSize)
	for i := range out {
		out[i] = int32(binary.LittleEndian.Uint32(b[i*FieldSize:]))
	}
	return out
}

func equalInts(a, b []int32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

type failWriter struct{ after int }

func (w *failWriter) Write(p []byte) (int, error) {
	if w.after <= 0 {
		return 0, errors.New("disk full")
	}
	n := min(len(p), w.after)
	w.after -= n
	if n < len(p) {
		return n, errors.New("disk full")
	}
	return n, nil
}

func TestEncodeEdges(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		edges [][2]int32
		want  []int32
	}{
		{"empty", 0, nil, []int32{}},
		{"path", 3, [][2]int32{{0, 1}, {1, 2}}, []int32{0, 1, 1, 0, 1, 2, 2, 1}},
		{"self loop", 1, [][2]int32{{0, 0}}, []int32{0, 0}},
		{"loop and edge", 2, [][2]int32{{1, 1}, {0, 1}}, []int32{1, 1, 0, 1, 1, 0}},
		{"duplicate collapses", 2, [][2]int32{{0, 1}, {1, 0}}, []int32{0, 1, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := buildGraph(t, tt.n, tt.edges...)
			var buf bytes.Buffer
			if err := EncodeEdges(&buf, g); err != nil {
				t.Fatalf("EncodeEdges() error: %v", err)
			}
			if buf.Len()%RecordSize != 0 {
				t.Fatalf("length %d is not a multiple of %d", buf.Len(), RecordSize)
			}
			if got := ints(t, buf.Bytes()); !equalInts(got, tt.want) {
				t.Errorf("records = %v, want %v", got, tt.want)
			}
			wantRecords := EdgeRecordCount(g.EdgeCount(), g.SelfLoopCount())
			if got := buf.Len() / RecordSize; got != wantRecords {
				t.Errorf("record count = %d, want %d", got, wantRecords)
			}
		})
	}
}

func TestEncodeEdgesReverseSymmetry(t *testing.T) {
	g := buildGraph(t, 6,
		[2]int32{0, 1}, [2]int32{0, 2}, [2]int32{2, 3}, [2]int32{3, 4},
		[2]int32{4, 0}, [2]int32{5, 1}, [2]int32{2, 5},
	)
	var buf bytes.Buffer
	if err := EncodeEdges(&buf, g); err != nil {
		t.Fatalf("EncodeEdges() error: %v", err)
	}
	arcs, err := ReadArcs(&buf)
	if err != nil {
		t.Fatalf("ReadArcs() error: %v", err)
	}
	if len(arcs) != 2*g.EdgeCount() {
		t.Fatalf("got %d records, want %d", len(arcs), 2*g.EdgeCount())
	}
	counts := make(map[Arc]int)
	for _, a := range arcs {
		counts[a]++
	}
	for a, c := range counts {
		if c != 1 {
			t.Errorf("record %v appears %d times", a, c)
		}
		if counts[Arc{From: a.To, To: a.From}] != 1 {
			t.Errorf("record %v has no reverse", a)
		}
	}
}

func TestEncodeAdjacency(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		edges [][2]int32
		want  []int32
	}{
		{"zero nodes", 0, nil, []int32{0, 0}},
		{"isolated node", 1, nil, []int32{1, 0, 0}},
		{"path", 3, [][2]int32{{0, 1}, {1, 2}}, []int32{3, 2, 1, 1, 2, 0, 2, 1, 1}},
		{"self loop", 1, [][2]int32{{0, 0}}, []int32{1, 1, 1, 0}},
		{"isolated tail", 3, [][2]int32{{0, 1}}, []int32{3, 1, 1, 1, 1, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := buildGraph(t, tt.n, tt.edges...)
			var buf bytes.Buffer
			if err := EncodeAdjacency(&buf, g); err != nil {
				t.Fatalf("EncodeAdjacency() error: %v", err)
			}
			if got := ints(t, buf.Bytes()); !equalInts(got, tt.want) {
				t.Errorf("stream = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEncodeAdjacencyDegreeConsistency(t *testing.T) {
	g := buildGraph(t, 7,
		[2]int32{0, 1}, [2]int32{0, 2}, [2]int32{0, 3}, [2]int32{1, 2},
		[2]int32{3, 3}, [2]int32{4, 5}, [2]int32{2, 5},
	)
	var buf bytes.Buffer
	if err := EncodeAdjacency(&buf, g); err != nil {
		t.Fatalf("EncodeAdjacency() error: %v", err)
	}
	fields := ints(t, buf.Bytes())
	if int(fields[0]) != g.NodeCount() || int(fields[1]) != g.EdgeCount() {
		t.Fatalf("header = (%d, %d), want (%d, %d)", fields[0], fields[1], g.NodeCount(), g.EdgeCount())
	}

	pos, total := 2, 0
	for u := int32(0); u < int32(g.NodeCount()); u++ {
		deg := int(fields[pos])
		pos++
		if deg != g.Degree(u) {
			t.Errorf("node %d: degree field %d, graph reports %d", u, deg, g.Degree(u))
		}
		if got := fields[pos : pos+deg]; !equalInts(got, g.NeighborSlice(u)) {
			t.Errorf("node %d: neighbors %v, want %v", u, got, g.NeighborSlice(u))
		}
		pos += deg
		total += deg
	}
	if pos != len(fields) {
		t.Errorf("%d unread fields after last node", len(fields)-pos)
	}
	if want := 2*g.EdgeCount() - g.SelfLoopCount(); total != want {
		t.Errorf("total neighbor fields = %d, want %d", total, want)
	}
}

// lyingGraph reports a degree that disagrees with its neighbor sequence.
type lyingGraph struct{}

func (lyingGraph) NodeCount() int                 { return 1 }
func (lyingGraph) EdgeCount() int                 { return 0 }
func (lyingGraph) Degree(int32) int               { return 3 }
func (lyingGraph) Edges() iter.Seq2[int32, int32] { return func(func(int32, int32) bool) {} }
func (lyingGraph) Neighbors(int32) iter.Seq[int32] {
	return func(yield func(int32) bool) { yield(0) }
}

func TestEncodeAdjacencyWritesReportedDegree(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeAdjacency(&buf, lyingGraph{}); err != nil {
		t.Fatalf("EncodeAdjacency() error: %v", err)
	}
	if got, want := ints(t, buf.Bytes()), []int32{1, 0, 3, 0}; !equalInts(got, want) {
		t.Errorf("stream = %v, want %v", got, want)
	}
	if err := VerifyDegrees(lyingGraph{}); !pkgerrors.Is(err, pkgerrors.ErrCodeCorrupt) {
		t.Errorf("VerifyDegrees() = %v, want CORRUPT_DATA", err)
	}
}

func TestEncodeWriteFailure(t *testing.T) {
	g := buildGraph(t, 3, [2]int32{0, 1}, [2]int32{1, 2})

	tests := []struct {
		name   string
		encode func(*failWriter) error
	}{
		{"edges", func(w *failWriter) error { return EncodeEdges(w, g) }},
		{"adjacency", func(w *failWriter) error { return EncodeAdjacency(w, g) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.encode(&failWriter{after: 4})
			if err == nil {
				t.Fatal("expected error")
			}
			if !pkgerrors.Is(err, pkgerrors.ErrCodeIO) {
				t.Errorf("error code = %s, want %s", pkgerrors.GetCode(err), pkgerrors.ErrCodeIO)
			}
		})
	}
}

func TestVerifyDegrees(t *testing.T) {
	g := buildGraph(t, 4, [2]int32{0, 1}, [2]int32{2, 2}, [2]int32{1, 3})
	if err := VerifyDegrees(g); err != nil {
		t.Errorf("VerifyDegrees() error: %v", err)
	}
}
