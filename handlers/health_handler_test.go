package handlers

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// brokenWriter - клиент закрыл соединение до конца ответа.
type brokenWriter struct {
	*httptest.ResponseRecorder
}

func (w brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("connection reset by peer")
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestHealthHandler_IndexLogsWriteFailure(t *testing.T) {
	logs := captureLogs(t)
	w := brokenWriter{httptest.NewRecorder()}

	NewHealthHandler(nil).Index(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, logs.String(), "failed to write index page")
	assert.Contains(t, logs.String(), "connection reset by peer")
}
