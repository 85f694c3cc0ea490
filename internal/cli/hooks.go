package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphbin/pkg/observability"
)

// logHooks reports pipeline and cache events to the debug log.
type logHooks struct {
	logger *log.Logger
}

// registerLogHooks installs logHooks as the global pipeline and cache hooks.
func registerLogHooks(l *log.Logger) {
	h := logHooks{logger: l}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
}

func (h logHooks) OnParseStart(_ context.Context, format, input string) {
	h.logger.Debug("parse started", "format", format, "input", input)
}

func (h logHooks) OnParseComplete(_ context.Context, format, input string, nodes, edges int, dur time.Duration, err error) {
	if err != nil {
		h.logger.Debug("parse failed", "format", format, "input", input, "duration", dur, "err", err)
		return
	}
	h.logger.Debug("parse finished", "format", format, "nodes", nodes, "edges", edges, "duration", dur)
}

func (h logHooks) OnGenerateStart(_ context.Context, model string, nodes int) {
	h.logger.Debug("generate started", "model", model, "nodes", nodes)
}

func (h logHooks) OnGenerateComplete(_ context.Context, model string, nodes, edges int, dur time.Duration, err error) {
	if err != nil {
		h.logger.Debug("generate failed", "model", model, "duration", dur, "err", err)
		return
	}
	h.logger.Debug("generate finished", "model", model, "nodes", nodes, "edges", edges, "duration", dur)
}

func (h logHooks) OnEncodeStart(_ context.Context, output string, edges int) {
	h.logger.Debug("encode started", "output", output, "edges", edges)
}

func (h logHooks) OnEncodeComplete(_ context.Context, output string, bytes int, dur time.Duration, err error) {
	if err != nil {
		h.logger.Debug("encode failed", "output", output, "err", err)
		return
	}
	h.logger.Debug("encode finished", "output", output, "bytes", bytes, "duration", dur)
}

func (h logHooks) OnCacheHit(_ context.Context, key string) {
	h.logger.Debug("cache hit", "entry", key)
}

func (h logHooks) OnCacheMiss(_ context.Context, key string) {
	h.logger.Debug("cache miss", "entry", key)
}

func (h logHooks) OnCacheSet(_ context.Context, key string, size int) {
	h.logger.Debug("cache set", "entry", key, "bytes", size)
}
