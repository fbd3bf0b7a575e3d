package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug-level log lines.
// Failures are logged at warn level.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks that log to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{Logger: logger}
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)

func (h *LogHooks) OnBuildStart(_ context.Context, kind string, inputLen int) {
	h.Logger.Debug("build started", "kind", kind, "input_len", inputLen)
}

func (h *LogHooks) OnBuildComplete(_ context.Context, kind string, nodeCount int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("build failed", "kind", kind, "err", err)
		return
	}
	h.Logger.Debug("build complete", "kind", kind, "nodes", nodeCount, "duration", d)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, kind string, nodeCount int) {
	h.Logger.Debug("layout started", "kind", kind, "nodes", nodeCount)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, kind string, visible int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("layout failed", "kind", kind, "err", err)
		return
	}
	h.Logger.Debug("layout complete", "kind", kind, "visible", visible, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.Logger.Debug("render started", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("render failed", "formats", formats, "err", err)
		return
	}
	h.Logger.Debug("render complete", "formats", formats, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, requestID, method, path string) {
	h.Logger.Debug("request", "id", requestID, "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, requestID, method, path string, status int, d time.Duration) {
	h.Logger.Info("response", "id", requestID, "method", method, "path", path, "status", status, "duration", d)
}
