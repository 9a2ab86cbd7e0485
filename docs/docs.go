// Package docs хранит описание API в формате swagger 2.0.
package docs

import (
	_ "embed"
	"log/slog"
	"net/http"
)

//go:embed swagger.json
var SwaggerJSON []byte

// Handler отдаёт swagger.json для Swagger UI.
func Handler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(SwaggerJSON); err != nil {
		slog.ErrorContext(r.Context(), "failed to write swagger document", slog.Any("error", err))
	}
}
