package pipeline

import (
	"bytes"
	"path/filepath"
	"testing"

	pkgerrors "github.com/matzehuels/graphbin/pkg/errors"
	"github.com/matzehuels/graphbin/pkg/generate"
	"github.com/matzehuels/graphbin/pkg/graph"
	"github.com/matzehuels/graphbin/pkg/textfmt"
)

func TestValidateOutput(t *testing.T) {
	tests := []struct {
		output  Output
		wantErr bool
	}{
		{"binedge", false},
		{"binadj", false},
		{"adjlist", false},
		{"edgelist", false},
		{"BINEDGE", true}, // case-sensitive
		{"svg", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateOutput(tt.output)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateOutput(%q) error = %v, wantErr %v", tt.output, err, tt.wantErr)
		}
	}
}

func TestParseOutputs(t *testing.T) {
	got, err := ParseOutputs([]string{"binedge,binadj", " .adjlist", "binedge", ""})
	if err != nil {
		t.Fatalf("ParseOutputs error: %v", err)
	}
	want := []Output{OutputBinEdge, OutputBinAdj, OutputAdjList}
	if len(got) != len(want) {
		t.Fatalf("ParseOutputs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ParseOutputs[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if _, err := ParseOutputs([]string{"binedge,png"}); !pkgerrors.Is(err, pkgerrors.ErrCodeInvalidFormat) {
		t.Errorf("invalid output error = %v, want INVALID_FORMAT", err)
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		dir, input string
		output     Output
		want       string
	}{
		{"data", "roadNet-CA.txt", OutputBinEdge, filepath.Join("data", "roadNet-CA.binedge")},
		{"data", "/tmp/in/com-amazon.ungraph.txt", OutputBinAdj, filepath.Join("data", "com-amazon.ungraph.binadj")},
		{"out", "graph", OutputAdjList, filepath.Join("out", "graph.adjlist")},
		{"out", "BA_100", OutputEdgeList, filepath.Join("out", "BA_100.edgelist")},
	}
	for _, tt := range tests {
		if got := OutputPath(tt.dir, tt.input, tt.output); got != tt.want {
			t.Errorf("OutputPath(%q, %q, %q) = %q, want %q", tt.dir, tt.input, tt.output, got, tt.want)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Format: textfmt.FormatEdgeList, Input: "g.txt"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Valid options should pass: %v", err)
	}
	if opts.OutputDir != DefaultOutputDir {
		t.Errorf("OutputDir = %q, want %q", opts.OutputDir, DefaultOutputDir)
	}
	if len(opts.Outputs) != 1 || opts.Outputs[0] != OutputBinEdge {
		t.Errorf("Outputs = %v, want [binedge]", opts.Outputs)
	}
	if opts.CacheTTL != DefaultCacheTTL || opts.MaxCacheEntry != DefaultMaxCacheEntry {
		t.Errorf("cache defaults not applied: %+v", opts.OutputOptions)
	}

	gen := GenerateOptions{Generator: generate.Options{Model: generate.ModelErdosRenyi, Nodes: 10}}
	if err := gen.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if len(gen.Outputs) != 2 {
		t.Errorf("generate Outputs = %v, want [binedge binadj]", gen.Outputs)
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code pkgerrors.Code
	}{
		{"missing format", Options{Input: "g.txt"}, pkgerrors.ErrCodeInvalidFormat},
		{"missing input", Options{Format: textfmt.FormatEdgeList}, pkgerrors.ErrCodeInvalidPath},
		{"bad dataset name", Options{Format: textfmt.FormatEdgeList, Input: "dir/.txt"}, pkgerrors.ErrCodeInvalidPath},
		{"bad output", Options{Format: textfmt.FormatAdjacency, Input: "g.graph", OutputOptions: OutputOptions{Outputs: []Output{"pdf"}}}, pkgerrors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !pkgerrors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestOutputEncode(t *testing.T) {
	g, _ := graph.New(2)
	g.AddEdge(0, 1)

	want := map[Output]int{
		OutputBinEdge:  16,
		OutputBinAdj:   24,
		OutputAdjList:  len("2 1\n2\n1\n"),
		OutputEdgeList: len("# Nodes: 2 Edges: 1\n0 1\n"),
	}
	for out, size := range want {
		var buf bytes.Buffer
		if err := out.Encode(&buf, g); err != nil {
			t.Fatalf("%s: Encode error: %v", out, err)
		}
		if buf.Len() != size {
			t.Errorf("%s: %d bytes, want %d", out, buf.Len(), size)
		}
	}
}
