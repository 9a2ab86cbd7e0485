package services

import (
	"context"

	"github.com/Dosada05/tournament-platform/models"
	"github.com/Dosada05/tournament-platform/repositories"
)

type TournamentService interface {
	ListTournaments(ctx context.Context) []models.Tournament
}

type tournamentService struct {
	tournaments repositories.TournamentRepository
}

func NewTournamentService(tournaments repositories.TournamentRepository) TournamentService {
	return &tournamentService{tournaments: tournaments}
}

// ListTournaments отдаёт турниры как есть; сиды без participants получают пустой список.
func (s *tournamentService) ListTournaments(ctx context.Context) []models.Tournament {
	tournaments := s.tournaments.GetAll(ctx)
	for i := range tournaments {
		if tournaments[i].Participants == nil {
			tournaments[i].Participants = []models.ID{}
		}
	}
	return tournaments
}
