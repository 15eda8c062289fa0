package logger

import (
	"context"
	"fmt"
	"log/slog"
)

// Slog returns a *slog.Logger whose records are forwarded to l. Records below
// minLevel are discarded; attributes become "key=value" context lines.
func (l *Logger) Slog(minLevel slog.Leveler) *slog.Logger {
	if minLevel == nil {
		minLevel = slog.LevelInfo
	}
	return slog.New(&slogHandler{logger: l, level: minLevel})
}

// LevelFromSlog maps a slog level onto the severity table.
func LevelFromSlog(level slog.Level) string {
	switch {
	case level < slog.LevelInfo:
		return Debug
	case level < slog.LevelWarn:
		return Info
	case level < slog.LevelError:
		return Warning
	case level == slog.LevelError:
		return Error
	default:
		return Critical
	}
}

type slogHandler struct {
	logger *Logger
	level  slog.Leveler
	attrs  []string
	prefix string
}

func (h *slogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *slogHandler) Handle(_ context.Context, r slog.Record) error {
	lines := append([]string(nil), h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		lines = appendAttr(lines, h.prefix, a)
		return true
	})
	h.logger.Log(LevelFromSlog(r.Level), r.Message, lines...)
	return nil
}

func (h *slogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append([]string(nil), h.attrs...)
	for _, a := range attrs {
		next.attrs = appendAttr(next.attrs, h.prefix, a)
	}
	return &next
}

func (h *slogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}

func appendAttr(lines []string, prefix string, a slog.Attr) []string {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return lines
	}
	if a.Value.Kind() == slog.KindGroup {
		groupPrefix := prefix
		if a.Key != "" {
			groupPrefix = prefix + a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			lines = appendAttr(lines, groupPrefix, ga)
		}
		return lines
	}
	return append(lines, fmt.Sprintf("%s%s=%s\n", prefix, a.Key, a.Value.String()))
}
