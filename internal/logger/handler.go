package logger

import (
	"context"
	"log/slog"
	"strings"
)

const tagKey = "tag" // slog attribute key used for tag filtering

// tagFilterHandler wraps a base slog.Handler and drops records whose tag
// is filtered out by the configuration.
type tagFilterHandler struct {
	base slog.Handler
	cfg  *Config
}

func newTagFilterHandler(base slog.Handler, cfg *Config) *tagFilterHandler {
	return &tagFilterHandler{base: base, cfg: cfg}
}

func (h *tagFilterHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.base.Enabled(ctx, level)
}

func (h *tagFilterHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.cfg == nil {
		return h.base.Handle(ctx, r)
	}

	var tag string
	var tagged bool
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == tagKey {
			tag = strings.ToLower(a.Value.String())
			tagged = true
			return false
		}
		return true
	})

	if tagged {
		if _, drop := h.cfg.disabledTagsSet[tag]; drop {
			return nil
		}
		if h.cfg.enabledTagsSet != nil {
			if _, keep := h.cfg.enabledTagsSet[tag]; !keep {
				return nil
			}
		}
	} else if h.cfg.enabledTagsSet != nil {
		// Specific tags requested, untagged messages are dropped.
		return nil
	}

	return h.base.Handle(ctx, r)
}

func (h *tagFilterHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return newTagFilterHandler(h.base.WithAttrs(attrs), h.cfg)
}

func (h *tagFilterHandler) WithGroup(name string) slog.Handler {
	return newTagFilterHandler(h.base.WithGroup(name), h.cfg)
}
