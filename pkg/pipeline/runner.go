package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphbin/pkg/binfmt"
	"github.com/matzehuels/graphbin/pkg/cache"
	pkgerrors "github.com/matzehuels/graphbin/pkg/errors"
	"github.com/matzehuels/graphbin/pkg/generate"
	"github.com/matzehuels/graphbin/pkg/graph"
	"github.com/matzehuels/graphbin/pkg/observability"
	"github.com/matzehuels/graphbin/pkg/textfmt"
)

// summaryOutput is the pseudo-output under which a run's graph summary is
// cached next to its encoded outputs.
const summaryOutput = "summary"

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use it so caching and naming behave identically.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// =============================================================================
// Convert
// =============================================================================

// Convert parses opts.Input and writes every requested output.
func (r *Runner) Convert(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	hash, err := hashFile(opts.Input)
	if err != nil {
		return nil, err
	}

	enc, err := r.run(ctx, job{
		stage: opts.Format.String(),
		key: func(out string) string {
			return r.Keyer.ConvertKey(hash, cache.ConvertKeyOpts{Format: opts.Format.String(), Output: out})
		},
		load: func(ctx context.Context) (*graph.Graph, error) {
			return parseFile(ctx, opts.Format, opts.Input)
		},
	}, opts.OutputOptions)
	if err != nil {
		return nil, err
	}
	return r.write(datasetName(opts.Input), enc, opts.OutputOptions)
}

// ConvertData parses an in-memory text graph and returns the encoded outputs
// without touching the file system.
func (r *Runner) ConvertData(ctx context.Context, format textfmt.Format, data []byte, opts OutputOptions) (*Encoded, error) {
	if err := opts.setDefaults(OutputBinEdge); err != nil {
		return nil, err
	}
	hash := cache.Hash(data)
	return r.run(ctx, job{
		stage: format.String(),
		key: func(out string) string {
			return r.Keyer.ConvertKey(hash, cache.ConvertKeyOpts{Format: format.String(), Output: out})
		},
		load: func(ctx context.Context) (*graph.Graph, error) {
			return parse(ctx, format, "<request>", bytes.NewReader(data))
		},
	}, opts)
}

// =============================================================================
// Generate
// =============================================================================

// Generate builds a synthetic graph and writes every requested output, named
// after [generate.Name].
func (r *Runner) Generate(ctx context.Context, opts GenerateOptions) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	enc, err := r.GenerateData(ctx, opts)
	if err != nil {
		return nil, err
	}
	return r.write(generate.Name(opts.Generator), enc, opts.OutputOptions)
}

// GenerateData builds a synthetic graph and returns the encoded outputs.
func (r *Runner) GenerateData(ctx context.Context, opts GenerateOptions) (*Encoded, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	g := opts.Generator
	return r.run(ctx, job{
		stage: g.Model.String(),
		key: func(out string) string {
			return r.Keyer.GenerateKey(cache.GenerateKeyOpts{
				Model:       g.Model.String(),
				Nodes:       g.Nodes,
				Attach:      g.Attach,
				Probability: g.Probability,
				Seed:        g.Seed,
				Output:      out,
			})
		},
		load: func(ctx context.Context) (*graph.Graph, error) {
			hooks := observability.Pipeline()
			hooks.OnGenerateStart(ctx, g.Model.String(), g.Nodes)
			start := time.Now()
			gr, err := generate.Generate(ctx, g)
			edges := 0
			if gr != nil {
				edges = gr.EdgeCount()
			}
			hooks.OnGenerateComplete(ctx, g.Model.String(), g.Nodes, edges, time.Since(start), err)
			return gr, err
		},
	}, opts.OutputOptions)
}

// =============================================================================
// Inspect
// =============================================================================

// InspectOptions configures [Runner.Inspect].
type InspectOptions struct {
	// Format is required for text files; binary files are recognised by
	// extension.
	Format textfmt.Format

	// Verify runs the degree consistency check.
	Verify bool

	// Components computes connected components.
	Components bool
}

// Inspect decodes a graph file and summarizes it.
func (r *Runner) Inspect(ctx context.Context, path string, opts InspectOptions) (*Inspection, error) {
	if err := pkgerrors.ValidatePath(path); err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeFileNotFound, err, "inspect %s", path)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeIO, err, "inspect %s", path)
	}

	in := &Inspection{Path: path, Bytes: info.Size()}
	g, kind, err := load(ctx, path, opts.Format)
	if err != nil {
		return nil, err
	}
	in.Kind = kind
	if kind == binfmt.KindEdges.String() {
		in.Records = int(info.Size() / binfmt.RecordSize)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if opts.Verify {
		if err := binfmt.VerifyDegrees(g); err != nil {
			return nil, err
		}
		in.Verified = true
	}
	in.Summary = graph.Summarize(g, opts.Components)
	r.Logger.Debug("inspected graph", "path", path, "kind", in.Kind, "nodes", in.Summary.Nodes, "edges", in.Summary.Edges)
	return in, nil
}

// Load decodes the graph file at path. Binary files are recognised by
// extension; anything else is parsed as format, which must then be set.
func Load(ctx context.Context, path string, format textfmt.Format) (*graph.Graph, error) {
	if err := pkgerrors.ValidatePath(path); err != nil {
		return nil, err
	}
	g, _, err := load(ctx, path, format)
	return g, err
}

func load(ctx context.Context, path string, format textfmt.Format) (*graph.Graph, string, error) {
	if kind, ok := binfmt.KindFromPath(path); ok {
		g, _, err := binfmt.ReadFile(path)
		if err != nil {
			return nil, "", err
		}
		return g, kind.String(), ctx.Err()
	}
	if format == 0 {
		return nil, "", pkgerrors.New(pkgerrors.ErrCodeInvalidFormat,
			"%s is not a binary graph; pass the text format to read it", path)
	}
	g, err := parseFile(ctx, format, path)
	if err != nil {
		return nil, "", err
	}
	return g, format.String(), nil
}

// =============================================================================
// Shared stages
// =============================================================================

// job describes where a graph comes from and how its outputs are keyed.
type job struct {
	stage string
	key   func(output string) string
	load  func(ctx context.Context) (*graph.Graph, error)
}

// run serves every output from the cache when possible; otherwise it loads
// the graph once, encodes each output and caches the results.
func (r *Runner) run(ctx context.Context, j job, opts OutputOptions) (*Encoded, error) {
	logger := r.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	}

	if !opts.Refresh && !opts.Verify {
		if enc, ok := r.fromCache(ctx, j, opts.Outputs); ok {
			logger.Info("using cached outputs", "source", j.stage, "nodes", enc.Summary.Nodes, "edges", enc.Summary.Edges)
			return enc, nil
		}
	}

	enc := &Encoded{Data: make(map[Output][]byte, len(opts.Outputs))}

	start := time.Now()
	g, err := j.load(ctx)
	if err != nil {
		return nil, err
	}
	enc.Stats.LoadTime = time.Since(start)
	enc.Summary = graph.Summarize(g, false)
	logger.Info("loaded graph",
		"source", j.stage,
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"self_loops", g.SelfLoopCount(),
		"duration", enc.Stats.LoadTime)

	if opts.Verify {
		if err := binfmt.VerifyDegrees(g); err != nil {
			return nil, err
		}
		enc.Verified = true
		logger.Debug("degrees verified")
	}

	hooks := observability.Pipeline()
	start = time.Now()
	for _, out := range opts.Outputs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		hooks.OnEncodeStart(ctx, string(out), g.EdgeCount())
		outStart := time.Now()
		var buf bytes.Buffer
		err := out.Encode(&buf, g)
		hooks.OnEncodeComplete(ctx, string(out), buf.Len(), time.Since(outStart), err)
		if err != nil {
			return nil, err
		}
		enc.Data[out] = buf.Bytes()
		logger.Debug("encoded", "output", out, "bytes", buf.Len())
	}
	enc.Stats.EncodeTime = time.Since(start)

	r.store(ctx, logger, j, enc, opts)
	return enc, nil
}

// fromCache returns a complete result only if the summary and every
// requested output are cached.
func (r *Runner) fromCache(ctx context.Context, j job, outs []Output) (*Encoded, bool) {
	hooks := observability.Cache()

	data, hit, err := r.Cache.Get(ctx, j.key(summaryOutput))
	if err != nil || !hit {
		hooks.OnCacheMiss(ctx, summaryOutput)
		return nil, false
	}
	enc := &Encoded{Data: make(map[Output][]byte, len(outs)), CacheHit: true}
	if err := json.Unmarshal(data, &enc.Summary); err != nil {
		hooks.OnCacheMiss(ctx, summaryOutput)
		return nil, false
	}
	hooks.OnCacheHit(ctx, summaryOutput)

	for _, out := range outs {
		data, hit, err := r.Cache.Get(ctx, j.key(string(out)))
		if err != nil || !hit {
			hooks.OnCacheMiss(ctx, string(out))
			return nil, false
		}
		hooks.OnCacheHit(ctx, string(out))
		enc.Data[out] = data
	}
	return enc, true
}

// store caches each output that fits under MaxCacheEntry. Cache failures
// are logged and otherwise ignored: the outputs are already encoded.
func (r *Runner) store(ctx context.Context, logger *log.Logger, j job, enc *Encoded, opts OutputOptions) {
	hooks := observability.Cache()
	set := func(name string, data []byte) {
		if len(data) > opts.MaxCacheEntry {
			logger.Debug("output too large to cache", "output", name, "bytes", len(data), "limit", opts.MaxCacheEntry)
			return
		}
		if err := r.Cache.Set(ctx, j.key(name), data, opts.CacheTTL); err != nil {
			logger.Warn("cache write failed", "output", name, "err", err)
			return
		}
		hooks.OnCacheSet(ctx, name, len(data))
	}

	for out, data := range enc.Data {
		set(string(out), data)
	}
	// The summary goes last so a reader never finds it without the outputs
	// it vouches for, except when an output was too large to cache.
	if summary, err := json.Marshal(enc.Summary); err == nil {
		set(summaryOutput, summary)
	}
}

// write places every encoded output under opts.OutputDir.
func (r *Runner) write(name string, enc *Encoded, opts OutputOptions) (*Result, error) {
	logger := r.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	}
	if err := pkgerrors.ValidateDatasetName(name); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeIO, err, "create output directory %s", opts.OutputDir)
	}

	res := &Result{
		Name:     name,
		Summary:  enc.Summary,
		Outputs:  make(map[Output]string, len(opts.Outputs)),
		Sizes:    make(map[Output]int, len(opts.Outputs)),
		CacheHit: enc.CacheHit,
		Stats:    enc.Stats,
	}
	start := time.Now()
	for _, out := range opts.Outputs {
		path := OutputPath(opts.OutputDir, name, out)
		data := enc.Data[out]
		if err := writeFile(path, data); err != nil {
			return nil, err
		}
		res.Outputs[out] = path
		res.Sizes[out] = len(data)
		logger.Info("wrote output", "path", path, "bytes", len(data))
	}
	res.Stats.WriteTime = time.Since(start)
	return res, nil
}

// =============================================================================
// Helpers
// =============================================================================

func parseFile(ctx context.Context, format textfmt.Format, path string) (*graph.Graph, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeIO, err, "open %s", path)
	}
	defer f.Close()
	return parse(ctx, format, path, f)
}

func parse(ctx context.Context, format textfmt.Format, name string, r io.Reader) (*graph.Graph, error) {
	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, format.String(), name)
	start := time.Now()
	g, err := format.Read(r)
	nodes, edges := 0, 0
	if g != nil {
		nodes, edges = g.NodeCount(), g.EdgeCount()
	}
	hooks.OnParseComplete(ctx, format.String(), name, nodes, edges, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return g, ctx.Err()
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return "", pkgerrors.Wrap(pkgerrors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.ErrCodeIO, err, "open %s", path)
	}
	defer f.Close()
	hash, err := cache.HashReader(f)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.ErrCodeIO, err, "read %s", path)
	}
	return hash, nil
}

// writeFile writes data through a temporary file in the same directory so
// an interrupted run never leaves a truncated output under the final name.
func writeFile(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.ErrCodeIO, err, "create %s", path)
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return pkgerrors.Wrap(pkgerrors.ErrCodeIO, err, "write %s", path)
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return pkgerrors.Wrap(pkgerrors.ErrCodeIO, err, "chmod %s", path)
	}
	if err := tmp.Close(); err != nil {
		return pkgerrors.Wrap(pkgerrors.ErrCodeIO, err, "close %s", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return pkgerrors.Wrap(pkgerrors.ErrCodeIO, err, "rename %s", path)
	}
	return nil
}
