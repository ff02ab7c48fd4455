package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/nitishrudra3510/linkedin-automation-project/internal/models"
	"github.com/nitishrudra3510/linkedin-automation-project/internal/store"
)

type Logger = slog.Logger

// New builds the default JSON logger writing to stdout only.
func New(level string) *slog.Logger {
	return NewWithSinks(level, "", nil)
}

// NewWithSinks adds the two extra sinks the bot runs with in production: a
// size-rotated file log and the CSV log table. Either may be disabled by
// passing "" / nil.
func NewWithSinks(level, filePath string, st *store.Store) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	var w io.Writer = os.Stdout
	if filePath != "" {
		w = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   filePath,
			MaxSize:    1, // MB
			MaxBackups: 3,
		})
	}
	var h slog.Handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	if st != nil {
		h = &csvHandler{next: h, st: st}
	}
	return slog.New(h).With("app", "linkedbot")
}

// csvHandler mirrors every record into the logs table. Append failures are
// dropped rather than allowed to fail the logging call itself.
type csvHandler struct {
	next      slog.Handler
	st        *store.Store
	component string
}

func (h *csvHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return h.next.Enabled(ctx, lvl)
}

func (h *csvHandler) Handle(ctx context.Context, r slog.Record) error {
	component := h.component
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "module" {
			component = a.Value.String()
		}
		return true
	})
	_ = h.st.AppendLog(models.LogRecord{
		Timestamp: r.Time.UTC(),
		Level:     csvLevel(r.Level),
		Component: component,
		Message:   r.Message,
	})
	return h.next.Handle(ctx, r)
}

func (h *csvHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	component := h.component
	for _, a := range attrs {
		if a.Key == "module" {
			component = a.Value.String()
		}
	}
	return &csvHandler{next: h.next.WithAttrs(attrs), st: h.st, component: component}
}

func (h *csvHandler) WithGroup(name string) slog.Handler {
	return &csvHandler{next: h.next.WithGroup(name), st: h.st, component: h.component}
}

func csvLevel(lvl slog.Level) string {
	switch {
	case lvl >= slog.LevelError:
		return "ERROR"
	case lvl >= slog.LevelWarn:
		return "WARNING"
	default:
		return "INFO"
	}
}
