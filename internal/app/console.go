package app

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/vk/jade/internal/ctxlog"
)

// ConsoleOptions configure a ConsoleHandler.
type ConsoleOptions struct {
	Level slog.Leveler
	// NoColor disables styling even on a color terminal. NO_COLOR and
	// non-terminal writers disable it as well.
	NoColor bool
}

type consoleStyles struct {
	debug, info, ok, warn, err lipgloss.Style
	scope, attr                lipgloss.Style
}

// ConsoleHandler renders records as tagged lines:
//
//	[ INFO] [garage/client] Bundling 'client'
//
// Resource and step attributes become the bracketed scope. An info record
// carrying ok=true is tagged [   OK].
type ConsoleHandler struct {
	mu     *sync.Mutex
	w      io.Writer
	level  slog.Leveler
	styles *consoleStyles

	scope  []string
	attrs  []string
	groups []string
}

// NewConsoleHandler creates a handler writing to w.
func NewConsoleHandler(w io.Writer, opts *ConsoleOptions) *ConsoleHandler {
	if opts == nil {
		opts = &ConsoleOptions{}
	}
	level := opts.Level
	if level == nil {
		level = slog.LevelInfo
	}

	r := lipgloss.NewRenderer(w)
	profile := termenv.NewOutput(w).EnvColorProfile()
	if opts.NoColor {
		profile = termenv.Ascii
	}
	r.SetColorProfile(profile)

	return &ConsoleHandler{
		mu:    &sync.Mutex{},
		w:     w,
		level: level,
		styles: &consoleStyles{
			debug: r.NewStyle().Foreground(lipgloss.Color("243")),
			info:  r.NewStyle().Foreground(lipgloss.Color("12")),
			ok:    r.NewStyle().Foreground(lipgloss.Color("2")),
			warn:  r.NewStyle().Foreground(lipgloss.Color("3")),
			err:   r.NewStyle().Foreground(lipgloss.Color("1")),
			scope: r.NewStyle().Bold(true),
			attr:  r.NewStyle().Foreground(lipgloss.Color("243")),
		},
	}
}

func (h *ConsoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *ConsoleHandler) Handle(_ context.Context, rec slog.Record) error {
	scope := append([]string(nil), h.scope...)
	attrs := append([]string(nil), h.attrs...)
	ok := false

	rec.Attrs(func(a slog.Attr) bool {
		if len(h.groups) == 0 && a.Key == ctxlog.OKKey && a.Value.Kind() == slog.KindBool {
			ok = a.Value.Bool()
			return true
		}
		scope, attrs = h.appendAttr(scope, attrs, a)
		return true
	})

	var b strings.Builder
	b.WriteString(h.tag(rec.Level, ok))
	b.WriteByte(' ')
	if len(scope) > 0 {
		b.WriteString(h.styles.scope.Render("[" + strings.Join(scope, "/") + "]"))
		b.WriteByte(' ')
	}
	b.WriteString(rec.Message)
	for _, a := range attrs {
		b.WriteByte(' ')
		b.WriteString(h.styles.attr.Render(a))
	}
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *ConsoleHandler) tag(level slog.Level, ok bool) string {
	switch {
	case level >= slog.LevelError:
		return h.styles.err.Render("[ERROR]")
	case level >= slog.LevelWarn:
		return h.styles.warn.Render("[ WARN]")
	case level >= slog.LevelInfo && ok:
		return h.styles.ok.Render("[   OK]")
	case level >= slog.LevelInfo:
		return h.styles.info.Render("[ INFO]")
	default:
		return h.styles.debug.Render("[DEBUG]")
	}
}

// appendAttr routes resource and step attributes into the scope and renders
// everything else as key=value.
func (h *ConsoleHandler) appendAttr(scope, attrs []string, a slog.Attr) ([]string, []string) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return scope, attrs
	}
	if len(h.groups) == 0 && (a.Key == ctxlog.ResourceKey || a.Key == ctxlog.StepKey) {
		return append(scope, a.Value.String()), attrs
	}

	key := a.Key
	if len(h.groups) > 0 {
		key = strings.Join(h.groups, ".") + "." + key
	}
	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			ga.Key = key + "." + ga.Key
			attrs = append(attrs, formatAttr(ga.Key, ga.Value))
		}
		return scope, attrs
	}
	return scope, append(attrs, formatAttr(key, a.Value))
}

func formatAttr(key string, v slog.Value) string {
	s := v.Resolve().String()
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		s = strconv.Quote(s)
	}
	return key + "=" + s
}

func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	h2 := h.clone()
	for _, a := range attrs {
		h2.scope, h2.attrs = h2.appendAttr(h2.scope, h2.attrs, a)
	}
	return h2
}

func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := h.clone()
	h2.groups = append(h2.groups, name)
	return h2
}

func (h *ConsoleHandler) clone() *ConsoleHandler {
	return &ConsoleHandler{
		mu:     h.mu,
		w:      h.w,
		level:  h.level,
		styles: h.styles,
		scope:  append([]string(nil), h.scope...),
		attrs:  append([]string(nil), h.attrs...),
		groups: append([]string(nil), h.groups...),
	}
}
