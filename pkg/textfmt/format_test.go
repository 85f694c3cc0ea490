package textfmt

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	pkgerrors "github.com/matzehuels/graphbin/pkg/errors"
	"github.com/matzehuels/graphbin/pkg/graph"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"snap", FormatEdgeList, false},
		{"SNAP", FormatEdgeList, false},
		{"edgelist", FormatEdgeList, false},
		{"adjlist", FormatAdjacency, false},
		{"Metis", FormatAdjacency, false},
		{"", 0, true},
		{"graphml", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr && !pkgerrors.Is(err, pkgerrors.ErrCodeInvalidFormat) {
				t.Errorf("error code = %s, want INVALID_FORMAT", pkgerrors.GetCode(err))
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatNames(t *testing.T) {
	for _, f := range Formats {
		back, err := ParseFormat(f.String())
		if err != nil || back != f {
			t.Errorf("ParseFormat(%q) = %v, %v", f.String(), back, err)
		}
		if f.Extension() != "."+f.String() {
			t.Errorf("Extension() = %q", f.Extension())
		}
	}
	if _, err := Format(0).Read(strings.NewReader("")); !pkgerrors.Is(err, pkgerrors.ErrCodeUnsupported) {
		t.Errorf("zero Format Read error = %v", err)
	}
}

func TestReadEdgeList(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantNodes int
		wantEdges [][2]int32
	}{
		{
			name:      "snap with comments",
			input:     "# Directed graph\n# FromNodeId\tToNodeId\n10\t20\n20\t30\n",
			wantNodes: 3,
			wantEdges: [][2]int32{{0, 1}, {1, 2}},
		},
		{
			name:      "reverse duplicates collapse",
			input:     "1 2\n2 1\n1 2\n",
			wantNodes: 2,
			wantEdges: [][2]int32{{0, 1}},
		},
		{
			name:      "self loop and extra columns",
			input:     "p 2 2\n\n5 5 1.0\n5 7 2.5 1700000000\n",
			wantNodes: 2,
			wantEdges: [][2]int32{{0, 0}, {0, 1}},
		},
		{
			name:      "empty",
			input:     "# nothing\n",
			wantNodes: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := FormatEdgeList.Read(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("Read() error: %v", err)
			}
			if g.NodeCount() != tt.wantNodes {
				t.Errorf("NodeCount() = %d, want %d", g.NodeCount(), tt.wantNodes)
			}
			if g.EdgeCount() != len(tt.wantEdges) {
				t.Errorf("EdgeCount() = %d, want %d", g.EdgeCount(), len(tt.wantEdges))
			}
			for _, e := range tt.wantEdges {
				if !g.HasEdge(e[0], e[1]) {
					t.Errorf("missing edge %v", e)
				}
			}
		})
	}
}

func TestReadEdgeListErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  string
	}{
		{"single column", "1 2\n3\n", "line 2"},
		{"not a number", "a b\n", "line 1"},
		{"negative id", "1 -2\n", "line 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadEdgeList(strings.NewReader(tt.input))
			if !pkgerrors.Is(err, pkgerrors.ErrCodeInvalidInput) {
				t.Fatalf("error = %v, want INVALID_INPUT", err)
			}
			if !strings.Contains(err.Error(), tt.line) {
				t.Errorf("error %q does not name %s", err, tt.line)
			}
		})
	}
}

func TestReadMETIS(t *testing.T) {
	input := "% path with a loop\n4 3\n2\n1 3\n2 3\n\n"
	g, err := FormatAdjacency.Read(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if g.NodeCount() != 4 || g.EdgeCount() != 3 {
		t.Fatalf("got %d nodes %d edges, want 4 nodes 3 edges", g.NodeCount(), g.EdgeCount())
	}
	if g.SelfLoopCount() != 1 || !g.HasEdge(2, 2) {
		t.Error("self-loop on node 2 not read")
	}
	if g.Degree(3) != 0 {
		t.Errorf("Degree(3) = %d, want 0", g.Degree(3))
	}
}

func TestReadMETISErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  pkgerrors.Code
	}{
		{"missing header", "% only comments\n", pkgerrors.ErrCodeInvalidInput},
		{"bad header", "three 2\n", pkgerrors.ErrCodeInvalidInput},
		{"weighted", "2 1 011\n2 5\n1 5\n", pkgerrors.ErrCodeUnsupported},
		{"too few lines", "3 1\n2\n1\n", pkgerrors.ErrCodeInvalidInput},
		{"neighbor out of range", "2 1\n3\n1\n", pkgerrors.ErrCodeInvalidInput},
		{"zero based id", "2 1\n0\n1\n", pkgerrors.ErrCodeInvalidInput},
		{"edge count mismatch", "2 2\n2\n1\n", pkgerrors.ErrCodeInvalidInput},
		{"extra lines", "1 0\n\n1\n", pkgerrors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadMETIS(strings.NewReader(tt.input))
			if !pkgerrors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func sample(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.New(5)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range [][2]int32{{0, 1}, {1, 2}, {2, 0}, {3, 3}} {
		if _, err := g.AddEdge(e[0], e[1]); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func TestWriteMETIS(t *testing.T) {
	g := sample(t)
	var buf bytes.Buffer
	if err := WriteMETIS(&buf, g); err != nil {
		t.Fatalf("WriteMETIS() error: %v", err)
	}
	want := "5 4\n2 3\n1 3\n2 1\n4\n\n"
	if buf.String() != want {
		t.Errorf("WriteMETIS() = %q, want %q", buf.String(), want)
	}

	back, err := ReadMETIS(&buf)
	if err != nil {
		t.Fatalf("ReadMETIS() error: %v", err)
	}
	if back.NodeCount() != g.NodeCount() || back.EdgeCount() != g.EdgeCount() {
		t.Errorf("round trip: %d nodes %d edges", back.NodeCount(), back.EdgeCount())
	}
	for u, v := range g.Edges() {
		if !back.HasEdge(u, v) {
			t.Errorf("round trip lost edge (%d, %d)", u, v)
		}
	}
	if got := back.NeighborSlice(0); !slices.Equal(got, []int32{1, 2}) {
		t.Errorf("NeighborSlice(0) = %v, want [1 2]", got)
	}
}

func TestWriteEdgeList(t *testing.T) {
	g := sample(t)
	var buf bytes.Buffer
	if err := FormatEdgeList.Write(&buf, g); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	want := "# Nodes: 5 Edges: 4\n0 1\n1 2\n2 0\n3 3\n"
	if buf.String() != want {
		t.Errorf("WriteEdgeList() = %q, want %q", buf.String(), want)
	}

	back, err := ReadEdgeList(&buf)
	if err != nil {
		t.Fatalf("ReadEdgeList() error: %v", err)
	}
	// Node 4 is isolated and does not survive an edge list.
	if back.NodeCount() != 4 || back.EdgeCount() != 4 {
		t.Errorf("round trip: %d nodes %d edges, want 4 and 4", back.NodeCount(), back.EdgeCount())
	}
}
