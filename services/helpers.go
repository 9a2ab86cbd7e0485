package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/Dosada05/tournament-platform/models"
	"github.com/Dosada05/tournament-platform/repositories"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
)

var newID = func() models.ID {
	return models.ID(uuid.NewString())
}

// foldName приводит имя команды к виду для сравнения без учёта регистра.
// cases.Caser хранит состояние, поэтому создаётся на каждый вызов.
func foldName(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

func findTeamByName(teams []models.Team, name string) (exact, folded int) {
	exact, folded = -1, -1
	name = strings.TrimSpace(name)
	key := foldName(name)
	for i, t := range teams {
		if exact == -1 && t.Name == name {
			exact = i
		}
		if folded == -1 && foldName(t.Name) == key {
			folded = i
		}
	}
	return exact, folded
}

func normalizeMembers(raw json.RawMessage) []string {
	var members []string
	if len(raw) == 0 || json.Unmarshal(raw, &members) != nil || members == nil {
		return []string{}
	}
	return members
}

func normalizeMeta(raw json.RawMessage) map[string]any {
	var meta map[string]any
	if len(raw) == 0 || json.Unmarshal(raw, &meta) != nil || meta == nil {
		return map[string]any{}
	}
	return meta
}

func indexOf[T repositories.Entity](items []T, id models.ID) int {
	for i, item := range items {
		if item.EntityID() == id {
			return i
		}
	}
	return -1
}

func parseScheduledTime(value string) (time.Time, error) {
	t, err := models.ParseTimestamp(value)
	if err != nil {
		return time.Time{}, ErrInvalidScheduledTime
	}
	return t, nil
}

type snapshot struct {
	tournaments []models.Tournament
	teams       []models.Team
	matches     []models.Match
}

// loadSnapshot читает нужные коллекции параллельно. nil-репозиторий пропускается.
func loadSnapshot(ctx context.Context, tournaments repositories.TournamentRepository, teams repositories.TeamRepository, matches repositories.MatchRepository) (snapshot, error) {
	var snap snapshot
	g, gCtx := errgroup.WithContext(ctx)

	if tournaments != nil {
		g.Go(func() error {
			snap.tournaments = tournaments.GetAll(gCtx)
			return gCtx.Err()
		})
	}
	if teams != nil {
		g.Go(func() error {
			snap.teams = teams.GetAll(gCtx)
			return gCtx.Err()
		})
	}
	if matches != nil {
		g.Go(func() error {
			snap.matches = matches.GetAll(gCtx)
			return gCtx.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return snapshot{}, err
	}
	return snap, nil
}
