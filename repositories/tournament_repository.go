package repositories

import (
	"log/slog"

	"github.com/Dosada05/tournament-platform/models"
	"github.com/Dosada05/tournament-platform/storage"
)

const tournamentsDocument = "tournaments"

type TournamentRepository interface {
	Collection[models.Tournament]
}

func NewTournamentRepository(store storage.DocumentStore, logger *slog.Logger) TournamentRepository {
	return newDocumentCollection[models.Tournament](store, tournamentsDocument, logger)
}
