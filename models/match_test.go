package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch_UnmarshalJSONAcceptsLocalScheduledTime(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"rfc3339", `"2024-05-01T10:00:00+02:00"`, time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)},
		{"datetime-local", `"2024-05-01T10:00"`, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)},
		{"date", `"2024-05-01"`, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		{"empty", `""`, time.Time{}},
		{"null", `null`, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m Match
			doc := `{"id":"m1","teamAId":"a","teamBId":"b","status":"scheduled","scheduledTime":` + tt.input + `}`
			require.NoError(t, json.Unmarshal([]byte(doc), &m))
			assert.Equal(t, ID("m1"), m.ID)
			assert.Equal(t, MatchStatusScheduled, m.Status)
			assert.True(t, tt.want.Equal(m.ScheduledTime), m.ScheduledTime)
		})
	}
}

func TestMatch_UnmarshalJSONRejectsUnknownTimeFormat(t *testing.T) {
	var m Match
	err := json.Unmarshal([]byte(`{"id":"m1","scheduledTime":"next tuesday"}`), &m)
	assert.ErrorIs(t, err, ErrInvalidTimestamp)
}

func TestMatchWithTeams_RoundTrip(t *testing.T) {
	score := 2.0
	in := MatchWithTeams{
		Match: Match{
			ID:            "m1",
			TeamAID:       "a",
			TeamBID:       "b",
			ScheduledTime: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
			Status:        MatchStatusScheduled,
			History:       []HistoryEntry{{Action: HistoryResultAdded, ScoreA: &score, ScoreB: &score}},
		},
		TeamA: "Alpha",
		TeamB: "Beta",
	}

	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out MatchWithTeams
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "Alpha", out.TeamA)
	assert.Equal(t, "Beta", out.TeamB)
	assert.Equal(t, in.ScheduledTime, out.ScheduledTime)
	require.Len(t, out.History, 1)
	assert.Equal(t, 2.0, *out.History[0].ScoreA)
}

func TestTeam_UnmarshalJSONAcceptsAnyMembers(t *testing.T) {
	var team Team
	require.NoError(t, json.Unmarshal([]byte(`{"id":"a","name":"Alpha","members":["ann", {"nick": "x"}, 7]}`), &team))
	assert.Equal(t, "Alpha", team.Name)
	assert.Equal(t, []string{"ann", `{"nick":"x"}`, "7"}, team.Members)

	var bare Team
	require.NoError(t, json.Unmarshal([]byte(`{"id":"b","name":"Beta"}`), &bare))
	assert.NotNil(t, bare.Members)
	assert.Empty(t, bare.Members)
}
