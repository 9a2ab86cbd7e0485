package export

import (
	"bytes"
	"html/template"
	"time"

	"github.com/Dosada05/tournament-platform/models"
)

const reportTimeLayout = "2006-01-02 15:04:05 MST"

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>Matches Report</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        table { width: 100%; border-collapse: collapse; margin-top: 20px; }
        th, td { border: 1px solid #ddd; padding: 12px; text-align: left; }
        th { background-color: #f2f2f2; }
        tr:nth-child(even) { background-color: #f9f9f9; }
        .result { font-weight: bold; color: #2c5f2d; }
        .status-scheduled { color: #666; }
        .status-completed { color: #2c5f2d; }
    </style>
</head>
<body>
    <h1>Tournament Matches Report</h1>
    <p>Generated on: {{.GeneratedAt}}</p>
    <table>
        <thead>
            <tr>
                <th>Match ID</th>
                <th>Tournament</th>
                <th>Team A</th>
                <th>Team B</th>
                <th>Status</th>
                <th>Result</th>
                <th>Scheduled Time</th>
            </tr>
        </thead>
        <tbody>
{{- range .Rows}}
            <tr>
                <td>{{.ID}}</td>
                <td>{{.TournamentID}}</td>
                <td>{{.TeamA}}</td>
                <td>{{.TeamB}}</td>
                <td class="status-{{.StatusClass}}">{{.Status}}</td>
                <td class="result">{{.Result}}</td>
                <td>{{.ScheduledTime}}</td>
            </tr>
{{- end}}
        </tbody>
    </table>
    <p>Total matches: {{.Total}}</p>
</body>
</html>
`))

type htmlRow struct {
	ID            string
	TournamentID  string
	TeamA         string
	TeamB         string
	Status        string
	StatusClass   string
	Result        string
	ScheduledTime string
}

type htmlReport struct {
	GeneratedAt string
	Rows        []htmlRow
	Total       int
}

// HTML renders a single table report. generatedAt is supplied by the caller;
// all times are shown in loc (UTC when nil).
func HTML(matches []models.MatchWithTeams, generatedAt time.Time, loc *time.Location) ([]byte, error) {
	if loc == nil {
		loc = time.UTC
	}

	report := htmlReport{
		GeneratedAt: generatedAt.In(loc).Format(reportTimeLayout),
		Rows:        make([]htmlRow, 0, len(matches)),
		Total:       len(matches),
	}
	for _, m := range matches {
		report.Rows = append(report.Rows, htmlRow{
			ID:            m.ID.String(),
			TournamentID:  m.TournamentID.String(),
			TeamA:         m.TeamA,
			TeamB:         m.TeamB,
			Status:        string(m.Status),
			StatusClass:   statusClass(m.Status),
			Result:        resultText(m.Result),
			ScheduledTime: m.ScheduledTime.In(loc).Format(reportTimeLayout),
		})
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, report); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func statusClass(status models.MatchStatus) string {
	if status == models.MatchStatusCompleted {
		return string(models.MatchStatusCompleted)
	}
	return string(models.MatchStatusScheduled)
}

func resultText(r *models.MatchResult) string {
	if r == nil {
		return "Not played"
	}
	return formatScore(r.ScoreA) + " - " + formatScore(r.ScoreB)
}
