package logger

import (
	"io"
	"log/slog"
	"os"
)

// Logger 各層注入使用的最小介面
type Logger interface {
	Debug(message string, args ...any)
	Info(message string, args ...any)
	Warn(message string, args ...any)
	Error(message string, args ...any)
}

// New 依環境建立 slog Logger，prod 輸出 JSON，其他環境輸出 text
func New(env string) *slog.Logger {
	return NewWithWriter(env, os.Stdout)
}

func NewWithWriter(env string, w io.Writer) *slog.Logger {
	var h slog.Handler
	if env == "prod" {
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		h = slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	return slog.New(h)
}

// Discard 測試用，不輸出任何東西
var Discard Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

var _ Logger = (*slog.Logger)(nil)
