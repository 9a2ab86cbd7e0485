package export

import (
	"bytes"
	"encoding/xml"

	"github.com/Dosada05/tournament-platform/models"
)

type xmlMatches struct {
	XMLName xml.Name   `xml:"matches"`
	Matches []xmlMatch `xml:"match"`
}

// Field order is fixed by declaration order.
type xmlMatch struct {
	ID            string      `xml:"id"`
	TournamentID  string      `xml:"tournamentId"`
	TeamAID       string      `xml:"teamAId"`
	TeamBID       string      `xml:"teamBId"`
	Status        string      `xml:"status"`
	ScheduledTime string      `xml:"scheduledTime"`
	CreatedAt     string      `xml:"createdAt"`
	Result        *xmlResult  `xml:"result"`
	History       *xmlHistory `xml:"history"`
}

type xmlResult struct {
	ScoreA    string `xml:"scoreA"`
	ScoreB    string `xml:"scoreB"`
	Timestamp string `xml:"timestamp"`
}

type xmlHistory struct {
	Entries []xmlEntry `xml:"entry"`
}

type xmlEntry struct {
	Action    string  `xml:"action"`
	Timestamp string  `xml:"timestamp"`
	ScoreA    *string `xml:"scoreA"`
	ScoreB    *string `xml:"scoreB"`
	OldScoreA *string `xml:"oldScoreA"`
	OldScoreB *string `xml:"oldScoreB"`
}

// XML renders one <match> element per match. <result> appears only for
// completed matches and <history> only when the match has history entries.
func XML(matches []models.MatchWithTeams) ([]byte, error) {
	doc := xmlMatches{Matches: make([]xmlMatch, 0, len(matches))}
	for _, m := range matches {
		doc.Matches = append(doc.Matches, toXMLMatch(m.Match))
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Grow(len(xml.Header) + len(body))
	buf.WriteString(xml.Header)
	buf.Write(body)
	return buf.Bytes(), nil
}

func toXMLMatch(m models.Match) xmlMatch {
	out := xmlMatch{
		ID:            m.ID.String(),
		TournamentID:  m.TournamentID.String(),
		TeamAID:       m.TeamAID.String(),
		TeamBID:       m.TeamBID.String(),
		Status:        string(m.Status),
		ScheduledTime: formatTimestamp(m.ScheduledTime),
		CreatedAt:     formatTimestamp(m.CreatedAt),
	}

	if m.Result != nil {
		out.Result = &xmlResult{
			ScoreA:    formatScore(m.Result.ScoreA),
			ScoreB:    formatScore(m.Result.ScoreB),
			Timestamp: formatTimestamp(m.Result.TS),
		}
	}

	if len(m.History) > 0 {
		out.History = &xmlHistory{Entries: make([]xmlEntry, 0, len(m.History))}
		for _, h := range m.History {
			out.History.Entries = append(out.History.Entries, xmlEntry{
				Action:    string(h.Action),
				Timestamp: formatTimestamp(h.TS),
				ScoreA:    optionalScore(h.ScoreA),
				ScoreB:    optionalScore(h.ScoreB),
				OldScoreA: optionalScore(h.OldScoreA),
				OldScoreB: optionalScore(h.OldScoreB),
			})
		}
	}
	return out
}

func optionalScore(v *float64) *string {
	if v == nil {
		return nil
	}
	s := formatScore(*v)
	return &s
}
