package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Dosada05/tournament-platform/models"
	"github.com/Dosada05/tournament-platform/repositories"
	"github.com/Dosada05/tournament-platform/services" // Импортируем для маппинга ошибок сервисов
	"github.com/go-chi/chi/v5"
)

type jsonResponse map[string]interface{}

var errEmptyBody = errors.New("body must not be empty")

func readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	maxBytes := 1_048_576 // 1MB
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errEmptyBody
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown key %s", fieldName)
		case errors.As(err, &maxBytesError):
			return fmt.Errorf("body must not be larger than %d bytes", maxBytes)
		case errors.As(err, &invalidUnmarshalError):
			panic(err) // Паника, т.к. это ошибка программиста (передан не указатель)
		default:
			return err
		}
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	if err != nil {
		return err
	}

	return nil
}

func errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	env := jsonResponse{"message": message}
	err := writeJSON(w, status, env, nil)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to write error response", slog.Any("error", err))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "internal server error",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)
	message := "the server encountered a problem and could not process your request"
	errorResponse(w, r, http.StatusInternalServerError, message)
}

func badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func notFoundResponse(w http.ResponseWriter, r *http.Request, err error) {
	errorResponse(w, r, http.StatusNotFound, err.Error())
}

func conflictResponse(w http.ResponseWriter, r *http.Request, err error) {
	errorResponse(w, r, http.StatusConflict, err.Error())
}

// mapServiceErrorToHTTP преобразует ошибки сервисного слоя в HTTP-ответы
func mapServiceErrorToHTTP(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	// Ссылка на несуществующую команду - проблема во входных данных, а не в ресурсе URL.
	case errors.Is(err, services.ErrTeamReferenceNotFound):
		badRequestResponse(w, r, err)
	case errors.Is(err, services.ErrNotFound):
		notFoundResponse(w, r, err)

	// Эти конфликты клиент получает как 400
	case errors.Is(err, services.ErrTeamNameConflict),
		errors.Is(err, services.ErrResultMissing):
		badRequestResponse(w, r, err)
	case errors.Is(err, services.ErrConflict):
		conflictResponse(w, r, err)

	case errors.Is(err, services.ErrValidationFailed):
		badRequestResponse(w, r, err)

	case errors.Is(err, repositories.ErrStorage):
		serverErrorResponse(w, r, err)

	// Непредвиденные ошибки / ошибки по умолчанию
	default:
		serverErrorResponse(w, r, err)
	}
}

// getIDFromURL извлекает непустой id из параметра пути.
func getIDFromURL(r *http.Request, paramName string) (models.ID, error) {
	id := models.ID(strings.TrimSpace(chi.URLParam(r, paramName)))
	if id.IsZero() {
		return "", fmt.Errorf("missing %s in URL path", paramName)
	}
	return id, nil
}
