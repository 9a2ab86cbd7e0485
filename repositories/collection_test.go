package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/Dosada05/tournament-platform/models"
	"github.com/Dosada05/tournament-platform/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore - DocumentStore в памяти с управляемыми ошибками.
type memStore struct {
	docs     map[string][]byte
	readErr  error
	writeErr error
}

func newMemStore() *memStore {
	return &memStore{docs: map[string][]byte{}}
}

func (s *memStore) Read(_ context.Context, name string) ([]byte, error) {
	if s.readErr != nil {
		return nil, s.readErr
	}
	data, ok := s.docs[name]
	if !ok {
		return nil, storage.ErrDocumentNotFound
	}
	return data, nil
}

func (s *memStore) Write(_ context.Context, name string, data []byte) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.docs[name] = data
	return nil
}

func TestCollection_MissingDocumentReadsEmpty(t *testing.T) {
	repo := NewTeamRepository(newMemStore(), nil)

	teams := repo.GetAll(context.Background())
	assert.NotNil(t, teams)
	assert.Empty(t, teams)
}

func TestCollection_CorruptDocumentReadsEmpty(t *testing.T) {
	store := newMemStore()
	store.docs["tournaments"] = []byte("{not json")
	repo := NewTournamentRepository(store, nil)

	assert.Empty(t, repo.GetAll(context.Background()))
	_, found := repo.FindByID(context.Background(), "1")
	assert.False(t, found)
}

func TestCollection_ReadErrorReadsEmpty(t *testing.T) {
	store := newMemStore()
	store.readErr = errors.New("disk on fire")
	repo := NewMatchRepository(store, nil)

	assert.Empty(t, repo.GetAll(context.Background()))
	assert.Equal(t, "[]", string(repo.Raw(context.Background())))
}

func TestCollection_ReplaceAllAndFind(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	repo := NewTournamentRepository(store, nil)

	err := repo.ReplaceAll(ctx, []models.Tournament{
		{ID: "1", Title: "Spring Cup", Participants: []models.ID{}},
		{ID: "2", Title: "Autumn Cup", Participants: []models.ID{"a"}},
	})
	require.NoError(t, err)

	got, found := repo.FindByID(ctx, "2")
	require.True(t, found)
	assert.Equal(t, "Autumn Cup", got.Title)
	assert.Equal(t, []models.ID{"a"}, got.Participants)
	assert.Len(t, repo.GetAll(ctx), 2)
}

func TestCollection_NumericIDsInSeedData(t *testing.T) {
	store := newMemStore()
	store.docs["tournaments"] = []byte(`[{"id": 1, "title": "Seed", "participants": [7]}]`)
	repo := NewTournamentRepository(store, nil)

	got, found := repo.FindByID(context.Background(), "1")
	require.True(t, found)
	assert.Equal(t, []models.ID{"7"}, got.Participants)
}

func TestCollection_ReplaceAllNilWritesEmptyArray(t *testing.T) {
	store := newMemStore()
	repo := NewTeamRepository(store, nil)

	require.NoError(t, repo.ReplaceAll(context.Background(), nil))
	assert.Equal(t, "[]", string(store.docs["teams"]))
}

func TestCollection_WriteFailureWrapsErrStorage(t *testing.T) {
	store := newMemStore()
	store.writeErr = errors.New("no space left")
	repo := NewTeamRepository(store, nil)

	err := repo.ReplaceAll(context.Background(), []models.Team{{ID: "1", Name: "Alpha"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, err, store.writeErr)
}

func TestCollection_UndecodableRecordsAreKeptOnReplaceAll(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.docs["matches"] = []byte(`[
		{"id":"m1","tournamentId":"t1","teamAId":"a","teamBId":"b","scheduledTime":"2024-05-01T10:00","status":"scheduled","history":[]},
		{"id":"m2","tournamentId":"t1","teamAId":"a","teamBId":"c","scheduledTime":"next tuesday","status":"scheduled","history":[]},
		"oops"
	]`)
	repo := NewMatchRepository(store, nil)

	matches := repo.GetAll(ctx)
	require.Len(t, matches, 1)
	assert.Equal(t, models.ID("m1"), matches[0].ID)

	matches = append(matches, models.Match{ID: "m3", TournamentID: "t1", TeamAID: "b", TeamBID: "c", Status: models.MatchStatusScheduled})
	require.NoError(t, repo.ReplaceAll(ctx, matches))

	var written []map[string]any
	require.NoError(t, json.Unmarshal(store.docs["matches"], &written))
	require.Len(t, written, 3)
	ids := []any{written[0]["id"], written[1]["id"], written[2]["id"]}
	assert.Equal(t, []any{"m1", "m3", "m2"}, ids)
	assert.Equal(t, "next tuesday", written[2]["scheduledTime"])
	assert.Contains(t, string(store.docs["matches"]), `"oops"`)
}

func TestCollection_ReplaceAllRefusesToOverwriteCorruptDocument(t *testing.T) {
	store := newMemStore()
	store.docs["teams"] = []byte("{not json")
	repo := NewTeamRepository(store, nil)

	err := repo.ReplaceAll(context.Background(), []models.Team{{ID: "1", Name: "Alpha"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorage)
	assert.Equal(t, "{not json", string(store.docs["teams"]))
}

func TestCollection_ReplaceAllRefusesToWriteWhenReadFails(t *testing.T) {
	store := newMemStore()
	store.docs["teams"] = []byte(`[{"id":"1","name":"Alpha"},{"id":"2","name":"Beta"}]`)
	store.readErr = errors.New("permission denied")
	repo := NewTeamRepository(store, nil)

	err := repo.ReplaceAll(context.Background(), []models.Team{{ID: "3", Name: "Gamma"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, err, store.readErr)
	assert.JSONEq(t, `[{"id":"1","name":"Alpha"},{"id":"2","name":"Beta"}]`, string(store.docs["teams"]))
}

func TestCollection_Init(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.docs["teams"] = []byte(`[{"id":"1","name":"Alpha"}]`)

	require.NoError(t, NewTeamRepository(store, nil).Init(ctx))
	require.NoError(t, NewMatchRepository(store, nil).Init(ctx))

	assert.JSONEq(t, `[{"id":"1","name":"Alpha"}]`, string(store.docs["teams"]))
	assert.Equal(t, "[]", string(store.docs["matches"]))
}

func TestCollection_InitReadErrorIsStorageError(t *testing.T) {
	store := newMemStore()
	store.readErr = errors.New("permission denied")

	err := NewTeamRepository(store, nil).Init(context.Background())
	assert.ErrorIs(t, err, ErrStorage)
}

func TestMatchRepository_RawIsStoredBytes(t *testing.T) {
	store := newMemStore()
	raw := []byte("[\n  {\"id\": \"m1\", \"custom\": true}\n]")
	store.docs["matches"] = raw
	repo := NewMatchRepository(store, nil)

	assert.Equal(t, raw, repo.Raw(context.Background()))
}
