package repositories

import (
	"context"
	"log/slog"

	"github.com/Dosada05/tournament-platform/models"
	"github.com/Dosada05/tournament-platform/storage"
)

const matchesDocument = "matches"

type MatchRepository interface {
	Collection[models.Match]

	// Raw отдаёт сохранённый документ матчей байт в байт (для экспорта JSON).
	Raw(ctx context.Context) []byte
}

func NewMatchRepository(store storage.DocumentStore, logger *slog.Logger) MatchRepository {
	return newDocumentCollection[models.Match](store, matchesDocument, logger)
}
