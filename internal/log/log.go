package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
)

// enabledSections lists the sections for which records below slog.LevelWarn
// are emitted. Warnings and errors are always emitted.
var enabledSections = []string{
	"desugar",
	"astdoc",
	"cli",
}

var level = new(slog.LevelVar)

func init() {
	level.Set(slog.LevelError)
}

var LoggerOpts = &slog.HandlerOptions{
	AddSource: true,
	Level:     level,
	ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
		if a.Key == "time" {
			return slog.Attr{}
		}
		return a
	},
}

var DefaultLogger = New(os.Stderr)

// New returns a logger writing text records to w, filtered by section
// and by the level set with SetLevel.
func New(w io.Writer) *slog.Logger {
	return slog.New(&filteringHandler{underlying: slog.NewTextHandler(w, LoggerOpts)})
}

// SetLevel changes the minimum level of every logger built by this package,
// including ones created before the call.
func SetLevel(l slog.Level) {
	level.Set(l)
}

func Level() slog.Level {
	return level.Level()
}

var _ slog.Handler = &filteringHandler{}

type filteringHandler struct {
	underlying slog.Handler
	sections   []string
}

func (f filteringHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return f.underlying.Enabled(ctx, level)
}

func (f filteringHandler) Handle(ctx context.Context, record slog.Record) error {
	if record.Level >= slog.LevelWarn {
		return f.underlying.Handle(ctx, record)
	}
	// sections attached with Logger.With were kept aside in WithAttrs
	wantSection := len(f.sections) > 0
	record.Attrs(func(attr slog.Attr) bool {
		wantSection = wantSection || attr.Key == "section" && isEnabledSection(attr.Value.String())
		// iterate as long as we have not found our section
		return !wantSection
	})
	if !wantSection {
		return nil
	}
	return f.underlying.Handle(ctx, record)
}

func (f filteringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var newAttrs []slog.Attr
	sections := slices.Clone(f.sections)

	// keep the section attribute in filteringHandler
	for _, attr := range attrs {
		if attr.Key == "section" && isEnabledSection(attr.Value.String()) {
			sections = append(sections, attr.Value.String())
		} else {
			newAttrs = append(newAttrs, attr)
		}
	}
	return &filteringHandler{
		underlying: f.underlying.WithAttrs(newAttrs),
		sections:   sections,
	}
}

func (f filteringHandler) WithGroup(name string) slog.Handler {
	return &filteringHandler{
		underlying: f.underlying.WithGroup(name),
		sections:   f.sections,
	}
}

func isEnabledSection(section string) bool {
	return slices.ContainsFunc(enabledSections, func(enabled string) bool {
		return strings.HasPrefix(section, enabled)
	})
}
