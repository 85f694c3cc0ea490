package binfmt

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	pkgerrors "github.com/matzehuels/graphbin/pkg/errors"
)

func stream(fields ...int32) []byte {
	b := make([]byte, 0, len(fields)*FieldSize)
	for _, f := range fields {
		b = binary.LittleEndian.AppendUint32(b, uint32(f))
	}
	return b
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("device gone") }

func TestReadAdjacencyRoundTrip(t *testing.T) {
	g := buildGraph(t, 8,
		[2]int32{3, 1}, [2]int32{0, 1}, [2]int32{1, 2}, [2]int32{5, 5},
		[2]int32{6, 0}, [2]int32{2, 6}, [2]int32{4, 3},
	)
	var first bytes.Buffer
	if err := EncodeAdjacency(&first, g); err != nil {
		t.Fatalf("EncodeAdjacency() error: %v", err)
	}

	decoded, err := ReadAdjacency(bytes.NewReader(first.Bytes()))
	if err != nil {
		t.Fatalf("ReadAdjacency() error: %v", err)
	}
	if decoded.NodeCount() != g.NodeCount() || decoded.EdgeCount() != g.EdgeCount() {
		t.Errorf("decoded %d nodes %d edges, want %d nodes %d edges",
			decoded.NodeCount(), decoded.EdgeCount(), g.NodeCount(), g.EdgeCount())
	}
	if decoded.SelfLoopCount() != 1 {
		t.Errorf("SelfLoopCount() = %d, want 1", decoded.SelfLoopCount())
	}

	var second bytes.Buffer
	if err := EncodeAdjacency(&second, decoded); err != nil {
		t.Fatalf("re-encode error: %v", err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Errorf("re-encoded stream differs:\n got %v\nwant %v", ints(t, second.Bytes()), ints(t, first.Bytes()))
	}
}

func TestReadEdgesRoundTrip(t *testing.T) {
	g := buildGraph(t, 4, [2]int32{0, 1}, [2]int32{1, 2}, [2]int32{2, 2}, [2]int32{3, 0})
	var buf bytes.Buffer
	if err := EncodeEdges(&buf, g); err != nil {
		t.Fatalf("EncodeEdges() error: %v", err)
	}
	decoded, err := ReadEdges(&buf)
	if err != nil {
		t.Fatalf("ReadEdges() error: %v", err)
	}
	if decoded.NodeCount() != 4 {
		t.Errorf("NodeCount() = %d, want 4", decoded.NodeCount())
	}
	if decoded.EdgeCount() != g.EdgeCount() {
		t.Errorf("EdgeCount() = %d, want %d", decoded.EdgeCount(), g.EdgeCount())
	}
	for u, v := range g.Edges() {
		if !decoded.HasEdge(u, v) {
			t.Errorf("decoded graph lacks edge (%d, %d)", u, v)
		}
	}
}

func TestReadEdgesSelfLoop(t *testing.T) {
	g, err := ReadEdges(bytes.NewReader(stream(0, 0)))
	if err != nil {
		t.Fatalf("ReadEdges() error: %v", err)
	}
	if g.NodeCount() != 1 || g.EdgeCount() != 1 || g.SelfLoopCount() != 1 {
		t.Errorf("got %d nodes %d edges %d loops, want 1 1 1", g.NodeCount(), g.EdgeCount(), g.SelfLoopCount())
	}
}

func TestReadEdgesEmpty(t *testing.T) {
	g, err := ReadEdges(bytes.NewReader(nil))
	if err != nil {
		t.Fatalf("ReadEdges() error: %v", err)
	}
	if g.NodeCount() != 0 || g.EdgeCount() != 0 {
		t.Errorf("got %d nodes %d edges, want empty graph", g.NodeCount(), g.EdgeCount())
	}
}

func TestReadCorrupt(t *testing.T) {
	tests := []struct {
		name string
		read func([]byte) error
		data []byte
	}{
		{"edges partial record", readEdges, append(stream(0, 1), 0, 0, 0)},
		{"edges negative id", readEdges, stream(0, -4)},
		{"edges two-record self loop", readEdges, stream(0, 1, 1, 0, 2, 2, 2, 2)},
		{"edges missing reverse", readEdges, stream(0, 1, 1, 0, 1, 2)},
		{"edges repeated arc", readEdges, stream(0, 1, 0, 1, 1, 0)},
		{"edges third record", readEdges, stream(0, 1, 1, 0, 1, 0)},
		{"adj empty", readAdj, nil},
		{"adj short header", readAdj, stream(1)},
		{"adj negative nodes", readAdj, stream(-1, 0)},
		{"adj negative edges", readAdj, stream(1, -1, 0)},
		{"adj missing node", readAdj, stream(2, 0, 0)},
		{"adj truncated neighbors", readAdj, stream(2, 1, 1, 1)},
		{"adj degree too large", readAdj, stream(1, 0, 5)},
		{"adj neighbor out of range", readAdj, stream(1, 1, 1, 7)},
		{"adj asymmetric", readAdj, stream(2, 1, 1, 1, 0)},
		{"adj edge count mismatch", readAdj, stream(2, 3, 1, 1, 1, 0)},
		{"adj trailing bytes", readAdj, append(stream(1, 0, 0), 9)},
		{"adj duplicate self loop", readAdj, stream(2, 1, 2, 0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.read(tt.data)
			if err == nil {
				t.Fatal("expected error")
			}
			if !pkgerrors.Is(err, pkgerrors.ErrCodeCorrupt) {
				t.Errorf("error code = %s, want %s (%v)", pkgerrors.GetCode(err), pkgerrors.ErrCodeCorrupt, err)
			}
		})
	}
}

func TestReadIOError(t *testing.T) {
	if _, err := ReadArcs(errReader{}); !pkgerrors.Is(err, pkgerrors.ErrCodeIO) {
		t.Errorf("ReadArcs() error = %v, want IO_ERROR", err)
	}
	if _, err := ReadAdjacency(errReader{}); !pkgerrors.Is(err, pkgerrors.ErrCodeIO) {
		t.Errorf("ReadAdjacency() error = %v, want IO_ERROR", err)
	}
}

func readEdges(b []byte) error {
	_, err := ReadEdges(bytes.NewReader(b))
	return err
}

func readAdj(b []byte) error {
	_, err := ReadAdjacency(bytes.NewReader(b))
	return err
}
