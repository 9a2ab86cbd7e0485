package handlers

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/Dosada05/tournament-platform/services"
)

// Endpoint - строка в списке эндпоинтов для /api/health и главной страницы.
type Endpoint struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

var Endpoints = []Endpoint{
	{http.MethodGet, "/api/tournaments", "list tournaments"},
	{http.MethodGet, "/api/tournaments/{id}/matches", "list matches of a tournament"},
	{http.MethodPost, "/api/tournaments/{id}/round-robin", "generate round-robin matches"},
	{http.MethodGet, "/api/teams", "list teams"},
	{http.MethodPost, "/api/teams", "create team"},
	{http.MethodDelete, "/api/teams/{id}", "delete team with its matches"},
	{http.MethodPost, "/api/register", "register team to tournament"},
	{http.MethodGet, "/api/matches", "list matches"},
	{http.MethodPost, "/api/matches", "create match"},
	{http.MethodPost, "/api/match-result", "record match result"},
	{http.MethodDelete, "/api/match-result/{id}", "remove match result"},
	{http.MethodDelete, "/api/match/{id}", "delete match"},
	{http.MethodGet, "/api/health", "health check"},
	{http.MethodGet, "/download?format=json|xml|html", "export matches"},
	{http.MethodGet, "/ws/tournaments/{id}", "live match updates (websocket)"},
	{http.MethodGet, "/swagger/index.html", "API documentation"},
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>Tournament API</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 40px; }
        code { background: #f4f4f4; padding: 2px 6px; }
        li { margin: 6px 0; }
    </style>
</head>
<body>
    <h1>Tournament API</h1>
    <ul>
    {{- range .}}
        <li><code>{{.Method}} {{.Path}}</code> {{.Description}}</li>
    {{- end}}
    </ul>
</body>
</html>
`))

type HealthHandler struct {
	clock services.Clock
}

func NewHealthHandler(clock services.Clock) *HealthHandler {
	if clock == nil {
		clock = services.SystemClock()
	}
	return &HealthHandler{clock: clock}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	response := jsonResponse{
		"status":    "OK",
		"timestamp": h.clock.Now().Format(time.RFC3339Nano),
		"endpoints": Endpoints,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Index отдаёт HTML-страницу со списком эндпоинтов
func (h *HealthHandler) Index(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, Endpoints); err != nil {
		serverErrorResponse(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.ErrorContext(r.Context(), "failed to write index page", slog.Any("error", err))
	}
}
