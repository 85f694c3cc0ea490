package server

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/graphbin/pkg/binfmt"
	pkgerrors "github.com/matzehuels/graphbin/pkg/errors"
	"github.com/matzehuels/graphbin/pkg/generate"
	"github.com/matzehuels/graphbin/pkg/graph"
	"github.com/matzehuels/graphbin/pkg/httputil"
	"github.com/matzehuels/graphbin/pkg/pipeline"
	"github.com/matzehuels/graphbin/pkg/textfmt"
)

// Response headers describing an encoded graph.
const (
	HeaderNodes = "X-Graph-Nodes"
	HeaderEdges = "X-Graph-Edges"
	HeaderCache = "X-Cache"

	// HeaderVerified is set to "true" when the degree check ran.
	HeaderVerified = "X-Graph-Verified"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "ok")
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	format, err := textfmt.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out, err := emitParam(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		s.fail(w, r, pkgerrors.Wrap(pkgerrors.ErrCodeIO, err, "read request body"))
		return
	}

	enc, err := s.runner.ConvertData(r.Context(), format, data, pipeline.OutputOptions{
		Outputs: []pipeline.Output{out},
		Verify:  boolParam(r.URL.Query().Get("verify")),
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeEncoded(w, enc, out)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	model, err := generate.ParseModel(chi.URLParam(r, "model"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out, err := emitParam(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	q := r.URL.Query()
	opts := generate.Options{Model: model}
	if opts.Nodes, err = intParam(q.Get("nodes")); err != nil {
		s.fail(w, r, err)
		return
	}
	if opts.Attach, err = intParam(q.Get("attach")); err != nil {
		s.fail(w, r, err)
		return
	}
	if p := q.Get("p"); p != "" {
		if opts.Probability, err = strconv.ParseFloat(p, 64); err != nil || opts.Probability <= 0 {
			s.fail(w, r, pkgerrors.New(pkgerrors.ErrCodeInvalidInput, "invalid probability %q (must be in (0, 1]; omit for ln(n)/n)", p))
			return
		}
	}
	if seed := q.Get("seed"); seed != "" {
		if opts.Seed, err = strconv.ParseUint(seed, 10, 64); err != nil {
			s.fail(w, r, pkgerrors.New(pkgerrors.ErrCodeInvalidInput, "invalid seed %q", seed))
			return
		}
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		s.fail(w, r, err)
		return
	}
	if opts.Nodes > s.cfg.MaxGenerateNodes {
		s.fail(w, r, pkgerrors.New(pkgerrors.ErrCodeInvalidInput,
			"nodes=%d exceeds the service limit of %d", opts.Nodes, s.cfg.MaxGenerateNodes))
		return
	}

	enc, err := s.runner.GenerateData(r.Context(), pipeline.GenerateOptions{
		Generator: opts,
		OutputOptions: pipeline.OutputOptions{
			Outputs: []pipeline.Output{out},
			Verify:  boolParam(q.Get("verify")),
		},
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Disposition", "attachment; filename="+strconv.Quote(generate.Name(opts)+out.Extension()))
	writeEncoded(w, enc, out)
}

func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	kind, err := binfmt.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	q := r.URL.Query()
	body := &countingReader{r: http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)}

	g, err := binfmt.Decode(body, kind)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	in := &pipeline.Inspection{Kind: kind.String(), Bytes: body.n}
	if kind == binfmt.KindEdges {
		in.Records = int(body.n / binfmt.RecordSize)
	}
	if boolParam(q.Get("verify")) {
		if err := binfmt.VerifyDegrees(g); err != nil {
			s.fail(w, r, err)
			return
		}
		in.Verified = true
	}
	in.Summary = graph.Summarize(g, boolParam(q.Get("components")))
	httputil.WriteJSON(w, http.StatusOK, in)
}

// fail writes err and logs server-side failures.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := httputil.WriteError(w, err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			"id", httputil.RequestIDFromContext(r.Context()),
			"path", r.URL.Path,
			"err", err)
	}
}

func writeEncoded(w http.ResponseWriter, enc *pipeline.Encoded, out pipeline.Output) {
	h := w.Header()
	switch out {
	case pipeline.OutputAdjList, pipeline.OutputEdgeList:
		h.Set("Content-Type", "text/plain; charset=utf-8")
	default:
		h.Set("Content-Type", "application/octet-stream")
	}
	h.Set(HeaderNodes, strconv.Itoa(enc.Summary.Nodes))
	h.Set(HeaderEdges, strconv.Itoa(enc.Summary.Edges))
	if enc.CacheHit {
		h.Set(HeaderCache, "hit")
	} else {
		h.Set(HeaderCache, "miss")
	}
	if enc.Verified {
		h.Set(HeaderVerified, "true")
	}
	data := enc.Data[out]
	h.Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func emitParam(r *http.Request) (pipeline.Output, error) {
	emit := r.URL.Query().Get("emit")
	if emit == "" {
		return pipeline.OutputBinEdge, nil
	}
	outs, err := pipeline.ParseOutputs([]string{emit})
	if err != nil {
		return "", err
	}
	if len(outs) != 1 {
		return "", pkgerrors.New(pkgerrors.ErrCodeInvalidFormat, "emit takes exactly one output, got %q", emit)
	}
	return outs[0], nil
}

func intParam(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.ErrCodeInvalidInput, "invalid integer %q", s)
	}
	return n, nil
}

func boolParam(s string) bool {
	b, _ := strconv.ParseBool(s)
	return b
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
