package main

import (
	"html"
	"log/slog"
	"strings"
	"syscall/js"
)

// logWriter prints log lines to the browser console and appends them to
// the page's log element.
type logWriter struct {
	console js.Value
	div     js.Value
}

func (w *logWriter) Write(p []byte) (int, error) {
	line := strings.TrimRight(string(p), "\n")
	w.console.Call("log", line)
	if w.div.Truthy() {
		w.div.Call("insertAdjacentHTML", "beforeend", html.EscapeString(line)+"<br/>")
	}
	return len(p), nil
}

func newLogger(div js.Value, level slog.Level) *slog.Logger {
	w := &logWriter{
		console: js.Global().Get("console"),
		div:     div,
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// logLevel parses the log query parameter. Unknown values mean info.
func logLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return l
}
