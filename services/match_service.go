package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/Dosada05/tournament-platform/brackets"
	"github.com/Dosada05/tournament-platform/models"
	"github.com/Dosada05/tournament-platform/repositories"
)

// Score принимает JSON-число или числовую строку ("3").
// Отсутствующее поле и null считаются незаданными.
type Score struct {
	Value   float64
	Set     bool
	invalid bool
}

func (s *Score) UnmarshalJSON(data []byte) error {
	*s = Score{}
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	s.Set = true

	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
		if err != nil {
			s.invalid = true
			return nil
		}
		s.Value = v
		return nil
	}

	return json.Unmarshal(data, &s.Value)
}

func (s Score) validate() error {
	if !s.Set {
		return ErrScoresRequired
	}
	if s.invalid || math.IsNaN(s.Value) || math.IsInf(s.Value, 0) {
		return ErrInvalidScore
	}
	return nil
}

type CreateMatchInput struct {
	TournamentID  models.ID `json:"tournamentId"`
	TeamAID       models.ID `json:"teamAId"`
	TeamBID       models.ID `json:"teamBId"`
	ScheduledTime string    `json:"scheduledTime,omitempty"`
}

func (in CreateMatchInput) Validate() error {
	if in.TournamentID.IsZero() || in.TeamAID.IsZero() || in.TeamBID.IsZero() {
		return ErrMatchTeamsRequired
	}
	if strings.TrimSpace(in.ScheduledTime) != "" {
		if _, err := parseScheduledTime(in.ScheduledTime); err != nil {
			return err
		}
	}
	return nil
}

type RecordResultInput struct {
	MatchID models.ID `json:"matchId"`
	ScoreA  Score     `json:"scoreA"`
	ScoreB  Score     `json:"scoreB"`
}

func (in RecordResultInput) Validate() error {
	if in.MatchID.IsZero() {
		return ErrMatchIDRequired
	}
	if err := in.ScoreA.validate(); err != nil {
		return err
	}
	return in.ScoreB.validate()
}

type RoundRobinInput struct {
	Legs          int    `json:"legs,omitempty"`
	ScheduledTime string `json:"scheduledTime,omitempty"`
}

func (in RoundRobinInput) Validate() error {
	if in.Legs < 0 || in.Legs > 2 {
		return ErrInvalidLegs
	}
	if strings.TrimSpace(in.ScheduledTime) != "" {
		if _, err := parseScheduledTime(in.ScheduledTime); err != nil {
			return err
		}
	}
	return nil
}

// MatchFilter: пустой TournamentID означает все матчи.
type MatchFilter struct {
	TournamentID models.ID
}

// RoomBroadcaster рассылает события о матчах подписчикам турнира (brackets.Hub).
type RoomBroadcaster interface {
	BroadcastToRoom(roomID string, message interface{})
}

// MatchService управляет жизненным циклом матча:
// scheduled --(результат)--> completed --(удаление результата)--> scheduled.
type MatchService interface {
	ListMatches(ctx context.Context, filter MatchFilter) ([]models.MatchWithTeams, error)
	CreateMatch(ctx context.Context, input CreateMatchInput) (*models.MatchWithTeams, error)
	// RecordResult перезаписывает результат и каждый раз дописывает историю,
	// поэтому исправления сохраняются.
	RecordResult(ctx context.Context, input RecordResultInput) (*models.MatchWithTeams, error)
	RemoveResult(ctx context.Context, matchID models.ID) (*models.MatchWithTeams, error)
	DeleteMatch(ctx context.Context, matchID models.ID) error
	GenerateRoundRobin(ctx context.Context, tournamentID models.ID, input RoundRobinInput) ([]models.MatchWithTeams, error)
}

type matchService struct {
	matches     repositories.MatchRepository
	teams       repositories.TeamRepository
	tournaments repositories.TournamentRepository
	generator   brackets.BracketGenerator
	hub         RoomBroadcaster
	clock       Clock
	logger      *slog.Logger
}

func NewMatchService(
	matches repositories.MatchRepository,
	teams repositories.TeamRepository,
	tournaments repositories.TournamentRepository,
	hub RoomBroadcaster,
	clock Clock,
	logger *slog.Logger,
) MatchService {
	if clock == nil {
		clock = SystemClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &matchService{
		matches:     matches,
		teams:       teams,
		tournaments: tournaments,
		generator:   brackets.NewRoundRobinGenerator(),
		hub:         hub,
		clock:       clock,
		logger:      logger,
	}
}

func (s *matchService) ListMatches(ctx context.Context, filter MatchFilter) ([]models.MatchWithTeams, error) {
	snap, err := loadSnapshot(ctx, nil, s.teams, s.matches)
	if err != nil {
		return nil, err
	}

	names := models.TeamNames(snap.teams)
	views := make([]models.MatchWithTeams, 0, len(snap.matches))
	for _, m := range snap.matches {
		if !filter.TournamentID.IsZero() && m.TournamentID != filter.TournamentID {
			continue
		}
		views = append(views, models.EnrichMatch(m, names))
	}
	return views, nil
}

func (s *matchService) CreateMatch(ctx context.Context, input CreateMatchInput) (*models.MatchWithTeams, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	teams := s.teams.GetAll(ctx)
	if indexOf(teams, input.TeamAID) == -1 || indexOf(teams, input.TeamBID) == -1 {
		return nil, ErrTeamReferenceNotFound
	}

	now := s.clock.Now()
	scheduled := now
	if strings.TrimSpace(input.ScheduledTime) != "" {
		scheduled, _ = parseScheduledTime(input.ScheduledTime)
	}
	match := newScheduledMatch(input.TournamentID, input.TeamAID, input.TeamBID, scheduled, now)

	unlock := s.matches.Lock()
	matches := s.matches.GetAll(ctx)
	err := s.matches.ReplaceAll(ctx, append(matches, match))
	unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	view := models.EnrichMatch(match, models.TeamNames(teams))
	s.logger.InfoContext(ctx, "match created",
		slog.String("match_id", match.ID.String()),
		slog.String("tournament_id", match.TournamentID.String()),
	)
	s.publish(match.TournamentID, brackets.EventMatchCreated, view)
	return &view, nil
}

func (s *matchService) RecordResult(ctx context.Context, input RecordResultInput) (*models.MatchWithTeams, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	match, err := s.updateMatch(ctx, input.MatchID, func(m *models.Match) error {
		scoreA, scoreB := input.ScoreA.Value, input.ScoreB.Value
		m.Result = &models.MatchResult{ScoreA: scoreA, ScoreB: scoreB, TS: now}
		m.Status = models.MatchStatusCompleted
		m.History = append(m.History, models.HistoryEntry{
			Action: models.HistoryResultAdded,
			ScoreA: &scoreA,
			ScoreB: &scoreB,
			TS:     now,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "match result recorded",
		slog.String("match_id", match.ID.String()),
		slog.Float64("score_a", input.ScoreA.Value),
		slog.Float64("score_b", input.ScoreB.Value),
	)
	return s.enrichAndPublish(ctx, match, brackets.EventMatchUpdated), nil
}

func (s *matchService) RemoveResult(ctx context.Context, matchID models.ID) (*models.MatchWithTeams, error) {
	if matchID.IsZero() {
		return nil, ErrMatchIDRequired
	}

	now := s.clock.Now()
	match, err := s.updateMatch(ctx, matchID, func(m *models.Match) error {
		if m.Result == nil {
			return ErrResultMissing
		}
		oldA, oldB := m.Result.ScoreA, m.Result.ScoreB
		m.History = append(m.History, models.HistoryEntry{
			Action:    models.HistoryResultRemoved,
			OldScoreA: &oldA,
			OldScoreB: &oldB,
			TS:        now,
		})
		m.Result = nil
		m.Status = models.MatchStatusScheduled
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "match result removed", slog.String("match_id", match.ID.String()))
	return s.enrichAndPublish(ctx, match, brackets.EventMatchUpdated), nil
}

func (s *matchService) DeleteMatch(ctx context.Context, matchID models.ID) error {
	if matchID.IsZero() {
		return ErrMatchIDRequired
	}

	unlock := s.matches.Lock()
	defer unlock()

	matches := s.matches.GetAll(ctx)
	idx := indexOf(matches, matchID)
	if idx == -1 {
		return ErrMatchNotFound
	}
	deleted := matches[idx]

	if err := s.matches.ReplaceAll(ctx, slices.Delete(matches, idx, idx+1)); err != nil {
		return fmt.Errorf("failed to delete match %s: %w", matchID, err)
	}

	s.logger.InfoContext(ctx, "match deleted", slog.String("match_id", matchID.String()))
	s.publish(deleted.TournamentID, brackets.EventMatchDeleted, map[string]models.ID{"id": matchID})
	return nil
}

func (s *matchService) GenerateRoundRobin(ctx context.Context, tournamentID models.ID, input RoundRobinInput) ([]models.MatchWithTeams, error) {
	if tournamentID.IsZero() {
		return nil, ErrTournamentIDRequired
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	snap, err := loadSnapshot(ctx, s.tournaments, s.teams, nil)
	if err != nil {
		return nil, err
	}
	idx := indexOf(snap.tournaments, tournamentID)
	if idx == -1 {
		return nil, ErrTournamentNotFound
	}

	// Участники, чьи команды удалены, пропускаются.
	names := models.TeamNames(snap.teams)
	participants := make([]models.ID, 0, len(snap.tournaments[idx].Participants))
	for _, id := range snap.tournaments[idx].Participants {
		if _, ok := names[id]; ok {
			participants = append(participants, id)
		}
	}
	if len(participants) < 2 {
		return nil, ErrNotEnoughParticipants
	}

	pairings, err := s.generator.GenerateBracket(ctx, brackets.GenerateBracketParams{
		TournamentID: tournamentID,
		Participants: participants,
		Legs:         input.Legs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s pairings: %w", s.generator.GetName(), err)
	}

	now := s.clock.Now()
	scheduled := now
	if strings.TrimSpace(input.ScheduledTime) != "" {
		scheduled, _ = parseScheduledTime(input.ScheduledTime)
	}

	created := make([]models.Match, 0, len(pairings))
	for _, p := range pairings {
		created = append(created, newScheduledMatch(tournamentID, p.TeamAID, p.TeamBID, scheduled, now))
	}

	unlock := s.matches.Lock()
	matches := s.matches.GetAll(ctx)
	err = s.matches.ReplaceAll(ctx, append(matches, created...))
	unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to store round-robin matches: %w", err)
	}

	s.logger.InfoContext(ctx, "round-robin matches generated",
		slog.String("tournament_id", tournamentID.String()),
		slog.Int("matches", len(created)),
	)

	views := make([]models.MatchWithTeams, len(created))
	for i, m := range created {
		views[i] = models.EnrichMatch(m, names)
		s.publish(tournamentID, brackets.EventMatchCreated, views[i])
	}
	return views, nil
}

// updateMatch применяет mutate к матчу под блокировкой коллекции и сохраняет её.
// Ошибка mutate возвращается без записи.
func (s *matchService) updateMatch(ctx context.Context, matchID models.ID, mutate func(m *models.Match) error) (models.Match, error) {
	unlock := s.matches.Lock()
	defer unlock()

	matches := s.matches.GetAll(ctx)
	idx := indexOf(matches, matchID)
	if idx == -1 {
		return models.Match{}, ErrMatchNotFound
	}

	match := matches[idx]
	match.History = slices.Clone(match.History)
	if err := mutate(&match); err != nil {
		return models.Match{}, err
	}
	if match.History == nil {
		match.History = []models.HistoryEntry{}
	}
	matches[idx] = match

	if err := s.matches.ReplaceAll(ctx, matches); err != nil {
		return models.Match{}, fmt.Errorf("failed to update match %s: %w", matchID, err)
	}
	return match, nil
}

func (s *matchService) enrichAndPublish(ctx context.Context, match models.Match, event string) *models.MatchWithTeams {
	view := models.EnrichMatch(match, models.TeamNames(s.teams.GetAll(ctx)))
	s.publish(match.TournamentID, event, view)
	return &view
}

func (s *matchService) publish(tournamentID models.ID, event string, payload interface{}) {
	if s.hub == nil {
		return
	}
	room := brackets.TournamentRoom(tournamentID.String())
	s.hub.BroadcastToRoom(room, brackets.WebSocketMessage{
		Type:    event,
		Payload: payload,
		RoomID:  room,
	})
}

func newScheduledMatch(tournamentID, teamAID, teamBID models.ID, scheduled, now time.Time) models.Match {
	return models.Match{
		ID:            newID(),
		TournamentID:  tournamentID,
		TeamAID:       teamAID,
		TeamBID:       teamBID,
		ScheduledTime: scheduled,
		Status:        models.MatchStatusScheduled,
		History:       []models.HistoryEntry{},
		CreatedAt:     now,
	}
}
