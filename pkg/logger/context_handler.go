package logger

import (
	"context"
	"log/slog"
)

// ContextExtractor pulls one attribute out of a record's context.
// It reports false when the context carries nothing to add.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// ContextHandler wraps a slog.Handler and appends the attributes found by
// its extractors to every record. Extraction runs per record, so values
// scoped to a request are read from the context passed to the *Context
// logging methods.
type ContextHandler struct {
	next       slog.Handler
	extractors []ContextExtractor
}

// NewContextHandler wraps next. Nil extractors are dropped; without any
// extractor next is returned unchanged.
func NewContextHandler(next slog.Handler, extractors ...ContextExtractor) slog.Handler {
	kept := make([]ContextExtractor, 0, len(extractors))
	for _, ex := range extractors {
		if ex != nil {
			kept = append(kept, ex)
		}
	}
	if len(kept) == 0 {
		return next
	}
	return &ContextHandler{next: next, extractors: kept}
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, rec slog.Record) error {
	for _, ex := range h.extractors {
		if attr, ok := ex(ctx); ok {
			rec.AddAttrs(attr)
		}
	}
	return h.next.Handle(ctx, rec)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{next: h.next.WithAttrs(attrs), extractors: h.extractors}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{next: h.next.WithGroup(name), extractors: h.extractors}
}
