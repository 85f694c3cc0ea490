// Package pipeline provides graphbin's conversion pipeline.
//
// This package implements the load → encode → write sequence shared by the
// CLI and the HTTP service. By centralizing it, both entry points apply the
// same dedup policy, cache keys and output naming.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: parse a text graph ([textfmt]) or generate one ([generate])
//  2. Encode: serialize the graph into each requested [Output]
//  3. Write: place each output under the output directory, named after the
//     input file with the output's extension
//
// Encoded outputs are cached by input hash, so converting an unchanged file
// again skips the first two stages entirely.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Convert(ctx, pipeline.Options{
//	    Format: textfmt.FormatEdgeList,
//	    Input:  "roadNet-CA.txt",
//	    OutputOptions: pipeline.OutputOptions{
//	        Outputs: []pipeline.Output{pipeline.OutputBinEdge, pipeline.OutputBinAdj},
//	    },
//	})
//	fmt.Println(result.Outputs[pipeline.OutputBinAdj]) // data/roadNet-CA.binadj
package pipeline

import (
	"io"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphbin/pkg/binfmt"
	pkgerrors "github.com/matzehuels/graphbin/pkg/errors"
	"github.com/matzehuels/graphbin/pkg/generate"
	"github.com/matzehuels/graphbin/pkg/graph"
	"github.com/matzehuels/graphbin/pkg/textfmt"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultOutputDir is where outputs are written when no directory is set.
	DefaultOutputDir = "data"

	// DefaultCacheTTL is how long encoded outputs stay cached.
	DefaultCacheTTL = 7 * 24 * time.Hour

	// DefaultMaxCacheEntry is the largest encoded output stored in the cache.
	// Larger outputs are still written, just not cached.
	DefaultMaxCacheEntry = 64 << 20
)

// =============================================================================
// Outputs
// =============================================================================

// Output names one serialization the pipeline can produce.
type Output string

// Supported outputs. The string value doubles as the file extension.
const (
	OutputBinEdge  Output = "binedge"
	OutputBinAdj   Output = "binadj"
	OutputAdjList  Output = "adjlist"
	OutputEdgeList Output = "edgelist"
)

// ValidOutputs is the set of supported outputs.
var ValidOutputs = map[Output]bool{
	OutputBinEdge:  true,
	OutputBinAdj:   true,
	OutputAdjList:  true,
	OutputEdgeList: true,
}

// Extension returns the file extension of o including the leading dot.
func (o Output) Extension() string { return "." + string(o) }

// Encode writes g to w in the serialization o names.
func (o Output) Encode(w io.Writer, g *graph.Graph) error {
	switch o {
	case OutputBinEdge:
		return binfmt.EncodeEdges(w, g)
	case OutputBinAdj:
		return binfmt.EncodeAdjacency(w, g)
	case OutputAdjList:
		return textfmt.WriteMETIS(w, g)
	case OutputEdgeList:
		return textfmt.WriteEdgeList(w, g)
	}
	return pkgerrors.New(pkgerrors.ErrCodeInvalidFormat, "unknown output %q", string(o))
}

// ValidateOutput checks that an output is valid.
func ValidateOutput(o Output) error {
	if !ValidOutputs[o] {
		return pkgerrors.New(pkgerrors.ErrCodeInvalidFormat,
			"invalid output: %q (must be one of: binedge, binadj, adjlist, edgelist)", string(o))
	}
	return nil
}

// ParseOutputs converts user-supplied names into Outputs. Entries may
// themselves be comma separated; duplicates are dropped, order is kept.
func ParseOutputs(names []string) ([]Output, error) {
	var outs []Output
	for _, name := range names {
		for _, part := range strings.Split(name, ",") {
			part = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(part)), ".")
			if part == "" {
				continue
			}
			o := Output(part)
			if err := ValidateOutput(o); err != nil {
				return nil, err
			}
			if !slices.Contains(outs, o) {
				outs = append(outs, o)
			}
		}
	}
	return outs, nil
}

// OutputPath returns where output o of input is written: the input's base
// name with its last extension replaced by o's, under dir.
func OutputPath(dir, input string, o Output) string {
	return filepath.Join(dir, datasetName(input)+o.Extension())
}

func datasetName(input string) string {
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// =============================================================================
// Options
// =============================================================================

// OutputOptions control what the pipeline produces and where.
type OutputOptions struct {
	// OutputDir receives the written files. Defaults to [DefaultOutputDir].
	OutputDir string

	// Outputs lists the serializations to produce.
	Outputs []Output

	// Verify runs [binfmt.VerifyDegrees] before encoding. The check needs
	// the graph, so cached outputs are not read.
	Verify bool

	// Refresh bypasses cached outputs and overwrites them.
	Refresh bool

	// CacheTTL and MaxCacheEntry bound what is cached.
	CacheTTL      time.Duration
	MaxCacheEntry int

	// Logger overrides the runner's logger for one run.
	Logger *log.Logger
}

func (o *OutputOptions) setDefaults(outputs ...Output) error {
	if o.OutputDir == "" {
		o.OutputDir = DefaultOutputDir
	}
	if len(o.Outputs) == 0 {
		o.Outputs = outputs
	}
	var deduped []Output
	for _, out := range o.Outputs {
		if err := ValidateOutput(out); err != nil {
			return err
		}
		if !slices.Contains(deduped, out) {
			deduped = append(deduped, out)
		}
	}
	o.Outputs = deduped
	if o.CacheTTL == 0 {
		o.CacheTTL = DefaultCacheTTL
	}
	if o.MaxCacheEntry == 0 {
		o.MaxCacheEntry = DefaultMaxCacheEntry
	}
	return nil
}

// Options configures a text-to-binary conversion.
type Options struct {
	// Format is the grammar of Input.
	Format textfmt.Format

	// Input is the path of the text graph.
	Input string

	OutputOptions

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// Conversions produce only the edge stream unless asked otherwise.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Format != textfmt.FormatEdgeList && o.Format != textfmt.FormatAdjacency {
		return pkgerrors.New(pkgerrors.ErrCodeInvalidFormat, "input format is required")
	}
	if err := pkgerrors.ValidatePath(o.Input); err != nil {
		return err
	}
	if err := pkgerrors.ValidateDatasetName(datasetName(o.Input)); err != nil {
		return err
	}
	if err := o.setDefaults(OutputBinEdge); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// GenerateOptions configures a synthetic graph run.
type GenerateOptions struct {
	Generator generate.Options
	OutputOptions
}

// ValidateAndSetDefaults checks the generator options and applies output
// defaults. Generated graphs produce both binary streams unless asked
// otherwise.
func (o *GenerateOptions) ValidateAndSetDefaults() error {
	if err := o.Generator.ValidateAndSetDefaults(); err != nil {
		return err
	}
	return o.setDefaults(OutputBinEdge, OutputBinAdj)
}

// =============================================================================
// Results
// =============================================================================

// Encoded holds the in-memory outputs of one pipeline run.
type Encoded struct {
	// Summary describes the graph. Component counts are not computed.
	Summary graph.Summary `json:"summary"`

	// Data holds the encoded bytes per output.
	Data map[Output][]byte `json:"-"`

	// CacheHit reports that every output came from the cache.
	CacheHit bool `json:"cache_hit"`

	// Verified reports that the degree check ran and passed.
	Verified bool `json:"verified"`

	Stats Stats `json:"stats"`
}

// Result describes a run whose outputs were written to disk.
type Result struct {
	// Name is the dataset name shared by all output files.
	Name string

	Summary graph.Summary

	// Outputs maps each output to the path it was written to.
	Outputs map[Output]string

	// Sizes maps each output to its size in bytes.
	Sizes map[Output]int

	CacheHit bool
	Stats    Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	LoadTime   time.Duration `json:"load_ns"`
	EncodeTime time.Duration `json:"encode_ns"`
	WriteTime  time.Duration `json:"write_ns"`
}

// Inspection describes a graph file.
type Inspection struct {
	Path    string        `json:"path,omitempty"`
	Kind    string        `json:"kind"`
	Bytes   int64         `json:"bytes"`
	Summary graph.Summary `json:"summary"`

	// Records is the number of .binedge records, 0 for other kinds.
	Records int `json:"records,omitempty"`

	// Verified reports that the degree check ran and passed.
	Verified bool `json:"verified"`
}
