package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type MatchStatus string

const (
	MatchStatusScheduled MatchStatus = "scheduled"
	MatchStatusCompleted MatchStatus = "completed"
)

type HistoryAction string

const (
	HistoryResultAdded   HistoryAction = "result_added"
	HistoryResultRemoved HistoryAction = "result_removed"
)

type MatchResult struct {
	ScoreA float64   `json:"scoreA"`
	ScoreB float64   `json:"scoreB"`
	TS     time.Time `json:"ts"`
}

// HistoryEntry is one append-only audit record of a result change.
// result_added carries ScoreA/ScoreB, result_removed carries the previous
// scores in OldScoreA/OldScoreB.
type HistoryEntry struct {
	Action    HistoryAction `json:"action"`
	ScoreA    *float64      `json:"scoreA,omitempty"`
	ScoreB    *float64      `json:"scoreB,omitempty"`
	OldScoreA *float64      `json:"oldScoreA,omitempty"`
	OldScoreB *float64      `json:"oldScoreB,omitempty"`
	TS        time.Time     `json:"ts"`
}

type Match struct {
	ID            ID             `json:"id"`
	TournamentID  ID             `json:"tournamentId"`
	TeamAID       ID             `json:"teamAId"`
	TeamBID       ID             `json:"teamBId"`
	ScheduledTime time.Time      `json:"scheduledTime"`
	Status        MatchStatus    `json:"status"`
	Result        *MatchResult   `json:"result,omitempty"`
	History       []HistoryEntry `json:"history"`
	CreatedAt     time.Time      `json:"createdAt"`
}

func (m Match) EntityID() ID { return m.ID }

// UnmarshalJSON принимает scheduledTime в любом формате, который понимает
// ParseTimestamp: старые документы хранят его в том виде, в каком прислал клиент.
func (m *Match) UnmarshalJSON(data []byte) error {
	type plain Match
	aux := struct {
		*plain
		ScheduledTime *string `json:"scheduledTime"`
	}{plain: (*plain)(m)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	m.ScheduledTime = time.Time{}
	if aux.ScheduledTime == nil || strings.TrimSpace(*aux.ScheduledTime) == "" {
		return nil
	}
	t, err := ParseTimestamp(*aux.ScheduledTime)
	if err != nil {
		return fmt.Errorf("match %s: scheduledTime %q: %w", m.ID, *aux.ScheduledTime, err)
	}
	m.ScheduledTime = t
	return nil
}

// Involves reports whether the team plays on either side of the match.
func (m Match) Involves(teamID ID) bool {
	return m.TeamAID == teamID || m.TeamBID == teamID
}

// MatchWithTeams is a match enriched with the display names of both sides.
// A name falls back to the raw team id when the team no longer exists.
type MatchWithTeams struct {
	Match
	TeamA string `json:"teamA"`
	TeamB string `json:"teamB"`
}

// UnmarshalJSON is required because the promoted Match.UnmarshalJSON would
// otherwise drop teamA/teamB.
func (m *MatchWithTeams) UnmarshalJSON(data []byte) error {
	if err := m.Match.UnmarshalJSON(data); err != nil {
		return err
	}
	var names struct {
		TeamA string `json:"teamA"`
		TeamB string `json:"teamB"`
	}
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	m.TeamA, m.TeamB = names.TeamA, names.TeamB
	return nil
}

// EnrichMatch resolves display names through names (team id -> name).
func EnrichMatch(m Match, names map[ID]string) MatchWithTeams {
	return MatchWithTeams{
		Match: m,
		TeamA: displayName(m.TeamAID, names),
		TeamB: displayName(m.TeamBID, names),
	}
}

func displayName(id ID, names map[ID]string) string {
	if name, ok := names[id]; ok && name != "" {
		return name
	}
	return id.String()
}

// TeamNames indexes teams by id for EnrichMatch.
func TeamNames(teams []Team) map[ID]string {
	names := make(map[ID]string, len(teams))
	for _, t := range teams {
		names[t.ID] = t.Name
	}
	return names
}
