package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Dosada05/tournament-platform/services"
)

type ExportHandler struct {
	exportService services.ExportService
}

func NewExportHandler(es services.ExportService) *ExportHandler {
	return &ExportHandler{exportService: es}
}

// Download обрабатывает GET /download?format=json|xml|html
func (h *ExportHandler) Download(w http.ResponseWriter, r *http.Request) {
	format, err := services.ParseExportFormat(r.URL.Query().Get("format"))
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	file, err := h.exportService.Export(r.Context(), format)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(file.Body); err != nil {
		slog.ErrorContext(r.Context(), "failed to write export", slog.String("format", string(format)), slog.Any("error", err))
	}
}
