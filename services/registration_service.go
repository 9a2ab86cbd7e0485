package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/Dosada05/tournament-platform/models"
	"github.com/Dosada05/tournament-platform/repositories"
)

type RegisterInput struct {
	TournamentID models.ID  `json:"tournamentId"`
	Team         *TeamInput `json:"team"`
}

func (in RegisterInput) Validate() error {
	if in.TournamentID.IsZero() {
		return ErrTournamentIDRequired
	}
	if in.Team == nil {
		return ErrTeamNameRequired
	}
	return in.Team.Validate()
}

type Registration struct {
	Success    bool              `json:"success"`
	Tournament models.Tournament `json:"tournament"`
	Team       models.Team       `json:"team"`
}

// RegistrationService регистрирует команду на турнир, создавая её при первом упоминании.
type RegistrationService interface {
	Register(ctx context.Context, input RegisterInput) (*Registration, error)
}

type registrationService struct {
	teams       repositories.TeamRepository
	tournaments repositories.TournamentRepository
	logger      *slog.Logger
}

func NewRegistrationService(
	teams repositories.TeamRepository,
	tournaments repositories.TournamentRepository,
	logger *slog.Logger,
) RegistrationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &registrationService{
		teams:       teams,
		tournaments: tournaments,
		logger:      logger,
	}
}

// Register идемпотентен: повторная регистрация той же команды не меняет participants.
// Команда сохраняется раньше турнира, поэтому сбой между записями оставляет
// "осиротевшую" команду, а не ссылку на несуществующую.
func (s *registrationService) Register(ctx context.Context, input RegisterInput) (*Registration, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if _, ok := s.tournaments.FindByID(ctx, input.TournamentID); !ok {
		return nil, ErrTournamentNotFound
	}

	team, err := s.resolveTeam(ctx, *input.Team)
	if err != nil {
		return nil, err
	}

	tournament, err := s.addParticipant(ctx, input.TournamentID, team.ID)
	if err != nil {
		return nil, err
	}

	return &Registration{
		Success:    true,
		Tournament: tournament,
		Team:       team,
	}, nil
}

func (s *registrationService) resolveTeam(ctx context.Context, input TeamInput) (models.Team, error) {
	unlock := s.teams.Lock()
	defer unlock()

	teams := s.teams.GetAll(ctx)
	exact, folded := findTeamByName(teams, input.Name)
	switch {
	case exact != -1:
		return teams[exact], nil
	case folded != -1:
		// Имя совпадает без учёта регистра, но не точно: новую команду создать нельзя.
		return models.Team{}, ErrTeamNameConflict
	}

	team := input.toTeam(newID())
	if err := s.teams.ReplaceAll(ctx, append(teams, team)); err != nil {
		return models.Team{}, fmt.Errorf("failed to create team %q: %w", team.Name, err)
	}
	s.logger.InfoContext(ctx, "team created during registration",
		slog.String("team_id", team.ID.String()),
		slog.String("name", team.Name),
	)
	return team, nil
}

func (s *registrationService) addParticipant(ctx context.Context, tournamentID, teamID models.ID) (models.Tournament, error) {
	unlock := s.tournaments.Lock()
	defer unlock()

	tournaments := s.tournaments.GetAll(ctx)
	idx := indexOf(tournaments, tournamentID)
	if idx == -1 {
		return models.Tournament{}, ErrTournamentNotFound
	}

	tournament := tournaments[idx]
	if tournament.HasParticipant(teamID) {
		return tournament, nil
	}

	tournament.Participants = append(slices.Clone(tournament.Participants), teamID)
	tournaments[idx] = tournament
	if err := s.tournaments.ReplaceAll(ctx, tournaments); err != nil {
		return models.Tournament{}, fmt.Errorf("failed to register team %s for tournament %s: %w", teamID, tournamentID, err)
	}

	s.logger.InfoContext(ctx, "team registered for tournament",
		slog.String("tournament_id", tournamentID.String()),
		slog.String("team_id", teamID.String()),
	)
	return tournament, nil
}
