package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/Dosada05/tournament-platform/models"
	"github.com/Dosada05/tournament-platform/repositories"
)

// TeamInput - тело POST /teams и поле team в POST /register.
// members и meta принимаются как есть и нормализуются: не массив -> [],
// не объект -> {}.
type TeamInput struct {
	Name    string          `json:"name"`
	Members json.RawMessage `json:"members,omitempty"`
	Meta    json.RawMessage `json:"meta,omitempty"`
}

func (in TeamInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrTeamNameRequired
	}
	return nil
}

func (in TeamInput) toTeam(id models.ID) models.Team {
	return models.Team{
		ID:      id,
		Name:    strings.TrimSpace(in.Name),
		Members: normalizeMembers(in.Members),
		Meta:    normalizeMeta(in.Meta),
	}
}

// TeamDeletion описывает результат каскадного удаления команды.
type TeamDeletion struct {
	TeamID              models.ID `json:"teamId"`
	AffectedTournaments int       `json:"affectedTournaments"`
	RemovedMatches      int       `json:"removedMatches"`
}

type TeamService interface {
	ListTeams(ctx context.Context) []models.Team
	CreateTeam(ctx context.Context, input TeamInput) (*models.Team, error)
	// DeleteTeam удаляет команду, убирает её из участников всех турниров
	// и удаляет все матчи с её участием.
	DeleteTeam(ctx context.Context, teamID models.ID) (*TeamDeletion, error)
}

type teamService struct {
	teams       repositories.TeamRepository
	tournaments repositories.TournamentRepository
	matches     repositories.MatchRepository
	logger      *slog.Logger
}

func NewTeamService(
	teams repositories.TeamRepository,
	tournaments repositories.TournamentRepository,
	matches repositories.MatchRepository,
	logger *slog.Logger,
) TeamService {
	if logger == nil {
		logger = slog.Default()
	}
	return &teamService{
		teams:       teams,
		tournaments: tournaments,
		matches:     matches,
		logger:      logger,
	}
}

func (s *teamService) ListTeams(ctx context.Context) []models.Team {
	return s.teams.GetAll(ctx)
}

func (s *teamService) CreateTeam(ctx context.Context, input TeamInput) (*models.Team, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	unlock := s.teams.Lock()
	defer unlock()

	teams := s.teams.GetAll(ctx)
	if _, folded := findTeamByName(teams, input.Name); folded != -1 {
		return nil, ErrTeamNameConflict
	}

	team := input.toTeam(newID())
	teams = append(teams, team)
	if err := s.teams.ReplaceAll(ctx, teams); err != nil {
		return nil, fmt.Errorf("failed to create team %q: %w", team.Name, err)
	}

	s.logger.InfoContext(ctx, "team created", slog.String("team_id", team.ID.String()), slog.String("name", team.Name))
	return &team, nil
}

func (s *teamService) DeleteTeam(ctx context.Context, teamID models.ID) (*TeamDeletion, error) {
	// Порядок блокировок общий для всех сервисов: teams, tournaments, matches.
	unlockTeams := s.teams.Lock()
	defer unlockTeams()
	unlockTournaments := s.tournaments.Lock()
	defer unlockTournaments()
	unlockMatches := s.matches.Lock()
	defer unlockMatches()

	snap, err := loadSnapshot(ctx, s.tournaments, s.teams, s.matches)
	if err != nil {
		return nil, err
	}

	next, deletion, ok := cascadeTeamDeletion(teamID, snap)
	if !ok {
		return nil, ErrTeamNotFound
	}

	// Три независимые записи: сбой посередине оставляет состояние частично
	// применённым, транзакции поверх документов нет.
	if err := s.teams.ReplaceAll(ctx, next.teams); err != nil {
		return nil, fmt.Errorf("failed to delete team %s: %w", teamID, err)
	}
	if err := s.tournaments.ReplaceAll(ctx, next.tournaments); err != nil {
		return nil, fmt.Errorf("failed to remove team %s from tournaments: %w", teamID, err)
	}
	if err := s.matches.ReplaceAll(ctx, next.matches); err != nil {
		return nil, fmt.Errorf("failed to remove matches of team %s: %w", teamID, err)
	}

	s.logger.InfoContext(ctx, "team deleted",
		slog.String("team_id", teamID.String()),
		slog.Int("affected_tournaments", deletion.AffectedTournaments),
		slog.Int("removed_matches", deletion.RemovedMatches),
	)
	return &deletion, nil
}

// cascadeTeamDeletion считает результат удаления команды без побочных эффектов.
func cascadeTeamDeletion(teamID models.ID, snap snapshot) (snapshot, TeamDeletion, bool) {
	idx := indexOf(snap.teams, teamID)
	if idx == -1 {
		return snap, TeamDeletion{}, false
	}

	deletion := TeamDeletion{TeamID: teamID}
	next := snapshot{
		teams: slices.Delete(slices.Clone(snap.teams), idx, idx+1),
	}

	next.tournaments = make([]models.Tournament, len(snap.tournaments))
	for i, t := range snap.tournaments {
		if t.HasParticipant(teamID) {
			t.Participants = slices.DeleteFunc(slices.Clone(t.Participants), func(id models.ID) bool {
				return id == teamID
			})
			deletion.AffectedTournaments++
		}
		next.tournaments[i] = t
	}

	next.matches = make([]models.Match, 0, len(snap.matches))
	for _, m := range snap.matches {
		if m.Involves(teamID) {
			deletion.RemovedMatches++
			continue
		}
		next.matches = append(next.matches, m)
	}

	return next, deletion, true
}
