package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"newsline/internal/config"
)

const (
	logFile      = "newsline.log"
	errorLogFile = "newsline_error.log"
)

// New создает и настраивает логгер приложения на основе конфигурации.
// Обычные сообщения пишутся в newsline.log, сообщения уровня ERROR и выше
// направляются в отдельный файл newsline_error.log. Возвращает ошибку
// при проблемах с открытием файлов логов.
func New(cfg config.LoggerConfig) (*slog.Logger, error) {
	level := parseLevel(cfg.Level)
	defaultOut, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", logFile, err)
	}
	errorOut, err := os.OpenFile(errorLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("failed to open error log file %s: %w", errorLogFile, err)
	}
	return slog.New(newSplitHandler(defaultOut, errorOut, level)), nil
}

// parseLevel преобразует строковый уровень из конфигурации в slog.Level.
// Неизвестные значения трактуются как info.
func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// splitHandler реализует slog.Handler с разделением потока по уровням:
// записи уровня ERROR и выше уходят в обработчик ошибок, остальные - в основной.
type splitHandler struct {
	main   slog.Handler
	errors slog.Handler
}

func newSplitHandler(mainOut, errorOut io.Writer, level slog.Level) *splitHandler {
	return &splitHandler{
		main:   newLineHandler(mainOut, level),
		errors: newLineHandler(errorOut, level),
	}
}

func (h *splitHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.main.Enabled(ctx, level)
}

func (h *splitHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		return h.errors.Handle(ctx, r)
	}
	return h.main.Handle(ctx, r)
}

func (h *splitHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &splitHandler{
		main:   h.main.WithAttrs(attrs),
		errors: h.errors.WithAttrs(attrs),
	}
}

func (h *splitHandler) WithGroup(name string) slog.Handler {
	return &splitHandler{
		main:   h.main.WithGroup(name),
		errors: h.errors.WithGroup(name),
	}
}

// lineHandler пишет каждую запись одной читаемой строкой:
//
//	[15:04:05.000] INFO [feed-news]: Feed request completed | items=24, duration=180ms
//
// Атрибуты component и op поднимаются в префикс строки, остальные
// перечисляются после сообщения через запятую.
type lineHandler struct {
	w     io.Writer
	level slog.Level
	attrs []slog.Attr
}

func newLineHandler(w io.Writer, level slog.Level) *lineHandler {
	return &lineHandler{w: w, level: level}
}

func (h *lineHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *lineHandler) Handle(_ context.Context, r slog.Record) error {
	var component, op string
	parts := make([]string, 0, r.NumAttrs()+len(h.attrs))
	collect := func(a slog.Attr) bool {
		switch a.Key {
		case "component":
			component = a.Value.String()
		case "op":
			op = a.Value.String()
		default:
			parts = append(parts, formatAttr(a))
		}
		return true
	}
	for _, a := range h.attrs {
		collect(a)
	}
	r.Attrs(collect)

	var line strings.Builder
	line.WriteString("[")
	line.WriteString(r.Time.Format("15:04:05.000"))
	line.WriteString("] ")
	line.WriteString(levelName(r.Level))
	if component != "" {
		fmt.Fprintf(&line, " [%s]", component)
	}
	if op != "" {
		fmt.Fprintf(&line, " (%s)", op)
	}
	line.WriteString(": ")
	line.WriteString(r.Message)
	if len(parts) > 0 {
		line.WriteString(" | ")
		line.WriteString(strings.Join(parts, ", "))
	}
	line.WriteString("\n")
	_, err := io.WriteString(h.w, line.String())
	return err
}

func (h *lineHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := &lineHandler{w: h.w, level: h.level}
	next.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return next
}

// WithGroup группы не поддерживает: атрибуты пишутся плоским списком.
func (h *lineHandler) WithGroup(string) slog.Handler {
	return h
}

// levelName возвращает текстовую метку уровня для префикса строки.
func levelName(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}

// formatAttr приводит атрибут к виду key=value. Ошибки берутся в кавычки,
// длительности округляются до миллисекунд, длинные URL обрезаются до хоста.
func formatAttr(a slog.Attr) string {
	switch {
	case a.Key == "error":
		return fmt.Sprintf("error=%q", a.Value.String())
	case a.Key == "url":
		return "url=" + shortenURL(a.Value.String())
	case a.Value.Kind() == slog.KindDuration:
		return fmt.Sprintf("%s=%s", a.Key, a.Value.Duration().Round(time.Millisecond))
	default:
		return fmt.Sprintf("%s=%s", a.Key, a.Value)
	}
}

// shortenURL сокращает длинные URL до схемы и хоста, чтобы строки логов
// не разрастались из-за query-параметров.
func shortenURL(raw string) string {
	if len(raw) <= 64 {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw[:64] + "..."
	}
	return u.Scheme + "://" + u.Host + "/..."
}
