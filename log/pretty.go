package log

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// prettyStyles colors the parts of a pretty log line.
type prettyStyles struct {
	time   lipgloss.Style
	source lipgloss.Style
	msg    lipgloss.Style
	key    lipgloss.Style
	str    lipgloss.Style
	num    lipgloss.Style
	truth  lipgloss.Style
	falsy  lipgloss.Style
	trace  lipgloss.Style
	debug  lipgloss.Style
	info   lipgloss.Style
	warn   lipgloss.Style
	err    lipgloss.Style
}

func makePrettyStyles(r *lipgloss.Renderer) prettyStyles {
	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return prettyStyles{
		time:   fg("8"),
		source: fg("8").Italic(true),
		msg:    r.NewStyle().Bold(true),
		key:    fg("8"),
		str:    fg("6"),
		num:    fg("3"),
		truth:  fg("2"),
		falsy:  fg("1"),
		trace:  fg("5"),
		debug:  fg("4"),
		info:   fg("2"),
		warn:   fg("3").Bold(true),
		err:    fg("1").Bold(true),
	}
}

func (s prettyStyles) level(l slog.Level) lipgloss.Style {
	switch {
	case l >= slog.LevelError:
		return s.err

	case l >= slog.LevelWarn:
		return s.warn

	case l >= slog.LevelInfo:
		return s.info

	case l >= slog.LevelDebug:
		return s.debug

	default:
		return s.trace
	}
}

// prettyHandler writes colorized single-line text records:
//
//	3:04PM WARN  message key=value group.key=value
type prettyHandler struct {
	opts       *slog.HandlerOptions
	formatTime FormatTime
	styles     prettyStyles

	mu *sync.Mutex
	w  io.Writer

	prefix string // dotted group prefix for attribute keys
	attrs  []byte // preformatted attributes from WithAttrs
}

func newPrettyHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	formatTime FormatTime,
) *prettyHandler {
	return &prettyHandler{
		opts:       opts,
		formatTime: formatTime,
		styles:     makePrettyStyles(lipgloss.NewRenderer(w)),
		mu:         &sync.Mutex{},
		w:          w,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}

	return level >= minLevel
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	if !r.Time.IsZero() {
		if ts := h.formatTime(r.Time); ts != "" {
			buf.WriteString(h.styles.time.Render(ts))
			buf.WriteByte(' ')
		}
	}

	level := strings.ToUpper(Level(r.Level).String())
	buf.WriteString(h.styles.level(r.Level).Render(level))
	buf.WriteString(strings.Repeat(" ", max(1, 6-len(level))))

	if h.opts.AddSource {
		if src := r.Source(); src != nil && src.File != "" {
			loc := filepath.Base(src.File) + ":" + strconv.Itoa(src.Line)
			buf.WriteString(h.styles.source.Render(loc))
			buf.WriteByte(' ')
		}
	}

	buf.WriteString(h.styles.msg.Render(r.Message))
	buf.Write(h.attrs)

	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(&buf, h.prefix, a)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var buf bytes.Buffer

	buf.Write(h.attrs)

	for _, a := range attrs {
		h.writeAttr(&buf, h.prefix, a)
	}

	c := *h
	c.attrs = buf.Bytes()

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.prefix = h.prefix + name + "."

	return &c
}

func (h *prettyHandler) writeAttr(buf *bytes.Buffer, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()

	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			prefix += a.Key + "."
		}

		for _, ga := range a.Value.Group() {
			h.writeAttr(buf, prefix, ga)
		}

		return
	}

	buf.WriteByte(' ')
	buf.WriteString(h.styles.key.Render(prefix + a.Key + "="))
	buf.WriteString(h.renderValue(a.Value))
}

func (h *prettyHandler) renderValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindInt64, slog.KindUint64, slog.KindFloat64, slog.KindDuration:
		return h.styles.num.Render(v.String())

	case slog.KindBool:
		if v.Bool() {
			return h.styles.truth.Render("true")
		}

		return h.styles.falsy.Render("false")

	case slog.KindTime:
		return h.styles.time.Render(h.formatTime(v.Time()))

	default:
		s := v.String()
		if s == "" || strings.ContainsAny(s, " \t\n\"=") {
			s = strconv.Quote(s)
		}

		return h.styles.str.Render(s)
	}
}
