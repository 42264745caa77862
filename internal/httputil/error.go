package httputil

import (
	"context"
	"log/slog"
	"net/http"
)

// fail logs the cause and replies with msg. Server side failures never leak their
// cause to the client.
func fail(w http.ResponseWriter, level slog.Level, status int, msg string, err error) {
	attrs := []any{"status", status, "message", msg}
	if err != nil {
		attrs = append(attrs, "error", err)
	}
	slog.Log(context.Background(), level, "request failed", attrs...)
	http.Error(w, msg, status)
}

func InternalServerError(w http.ResponseWriter, msg string, err error) {
	slog.Error(msg, "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// BadRequest covers user mistakes, such as starting a tournament with too few movies
// or choosing a movie that is not in the current match.
func BadRequest(w http.ResponseWriter, msg string, err error) {
	fail(w, slog.LevelWarn, http.StatusBadRequest, msg, err)
}

func NotFound(w http.ResponseWriter, msg string, err error) {
	fail(w, slog.LevelWarn, http.StatusNotFound, msg, err)
}

// BadGateway reports a failing movie source.
func BadGateway(w http.ResponseWriter, msg string, err error) {
	fail(w, slog.LevelError, http.StatusBadGateway, msg, err)
}
