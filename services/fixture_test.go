package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Dosada05/tournament-platform/brackets"
	"github.com/Dosada05/tournament-platform/models"
	"github.com/Dosada05/tournament-platform/repositories"
	"github.com/Dosada05/tournament-platform/storage"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type recordedMessage struct {
	room    string
	message brackets.WebSocketMessage
}

type fakeBroadcaster struct {
	mu       sync.Mutex
	messages []recordedMessage
}

func (b *fakeBroadcaster) BroadcastToRoom(roomID string, message interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messages = append(b.messages, recordedMessage{room: roomID, message: message.(brackets.WebSocketMessage)})
}

func (b *fakeBroadcaster) types() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.messages))
	for i, m := range b.messages {
		out[i] = m.message.Type
	}
	return out
}

type fixture struct {
	fs          afero.Fs
	tournaments repositories.TournamentRepository
	teams       repositories.TeamRepository
	matches     repositories.MatchRepository
	hub         *fakeBroadcaster

	teamService         TeamService
	registrationService RegistrationService
	matchService        MatchService
	exportService       ExportService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	fsys := afero.NewMemMapFs()
	store, err := storage.NewFileStore(fsys, "data")
	require.NoError(t, err)

	f := &fixture{
		fs:          fsys,
		tournaments: repositories.NewTournamentRepository(store, nil),
		teams:       repositories.NewTeamRepository(store, nil),
		matches:     repositories.NewMatchRepository(store, nil),
		hub:         &fakeBroadcaster{},
	}
	ctx := context.Background()
	require.NoError(t, f.tournaments.Init(ctx))
	require.NoError(t, f.teams.Init(ctx))
	require.NoError(t, f.matches.Init(ctx))

	clock := FixedClock(testNow)
	f.teamService = NewTeamService(f.teams, f.tournaments, f.matches, nil)
	f.registrationService = NewRegistrationService(f.teams, f.tournaments, nil)
	f.matchService = NewMatchService(f.matches, f.teams, f.tournaments, f.hub, clock, nil)
	f.exportService = NewExportService(f.matches, f.teams, clock, time.UTC)
	return f
}

func (f *fixture) seedTournament(t *testing.T, tournaments ...models.Tournament) {
	t.Helper()
	require.NoError(t, f.tournaments.ReplaceAll(context.Background(), tournaments))
}

func (f *fixture) createTeam(t *testing.T, name string) models.Team {
	t.Helper()
	team, err := f.teamService.CreateTeam(context.Background(), TeamInput{Name: name})
	require.NoError(t, err)
	return *team
}

func (f *fixture) tournament(t *testing.T, id models.ID) models.Tournament {
	t.Helper()
	tournament, ok := f.tournaments.FindByID(context.Background(), id)
	require.True(t, ok)
	return tournament
}

func score(v float64) Score {
	return Score{Value: v, Set: true}
}
