package repositories

import (
	"log/slog"

	"github.com/Dosada05/tournament-platform/models"
	"github.com/Dosada05/tournament-platform/storage"
)

const teamsDocument = "teams"

type TeamRepository interface {
	Collection[models.Team]
}

func NewTeamRepository(store storage.DocumentStore, logger *slog.Logger) TeamRepository {
	return newDocumentCollection[models.Team](store, teamsDocument, logger)
}
