package logger

import (
	"context"
	"log/slog"
)

// fanoutHandler duplicates records to a primary handler and a mirror.
// Each side keeps its own level gate: the primary logs everything while
// the mirror subscribes to warnings and errors only. A primary failure
// does not stop the mirror from receiving the record.
type fanoutHandler struct {
	primary slog.Handler
	mirror  slog.Handler
}

func newFanoutHandler(primary, mirror slog.Handler) *fanoutHandler {
	return &fanoutHandler{primary: primary, mirror: mirror}
}

func (h *fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.primary.Enabled(ctx, level) || h.mirror.Enabled(ctx, level)
}

func (h *fanoutHandler) Handle(ctx context.Context, rec slog.Record) error {
	var firstErr error
	if h.primary.Enabled(ctx, rec.Level) {
		firstErr = h.primary.Handle(ctx, rec.Clone())
	}
	if h.mirror.Enabled(ctx, rec.Level) {
		if err := h.mirror.Handle(ctx, rec.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (h *fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return newFanoutHandler(h.primary.WithAttrs(attrs), h.mirror.WithAttrs(attrs))
}

func (h *fanoutHandler) WithGroup(name string) slog.Handler {
	return newFanoutHandler(h.primary.WithGroup(name), h.mirror.WithGroup(name))
}
