package logging

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/thoreinstein/nmlk/internal/errors"
	"github.com/thoreinstein/nmlk/internal/leakcheck"
)

// tee sends each record to every sink that accepts its level. The
// console and the log file filter independently.
type tee []slog.Handler

func (t tee) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (t tee) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range t {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		// Handlers may retain the record's attrs; give each its own copy.
		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (t tee) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(tee, len(t))
	for i, h := range t {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (t tee) WithGroup(name string) slog.Handler {
	out := make(tee, len(t))
	for i, h := range t {
		out[i] = h.WithGroup(name)
	}
	return out
}

// redact masks values whose key names a secret or whose text carries a
// known token prefix. It serves as ReplaceAttr for the JSON handlers and
// backs the text handler's attribute formatting.
func redact(_ []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		return a
	}
	v := a.Value.Resolve()
	switch {
	case leakcheck.ShouldMask(a.Key):
		return slog.String(a.Key, leakcheck.MaskValue(fmt.Sprint(v.Any())))
	case v.Kind() == slog.KindString && leakcheck.ContainsTokenPrefix(v.String()):
		return slog.String(a.Key, leakcheck.MaskValue(v.String()))
	}
	return a
}
