package services

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/Dosada05/tournament-platform/models"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExportFormat(t *testing.T) {
	tests := []struct {
		raw     string
		want    ExportFormat
		wantErr error
	}{
		{"json", ExportJSON, nil},
		{"XML", ExportXML, nil},
		{" Html ", ExportHTML, nil},
		{"", "", ErrFormatRequired},
		{"csv", "", ErrFormatUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseExportFormat(tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, ErrValidationFailed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExport_JSONIsStoredDocument(t *testing.T) {
	f, _, _, match := setupMatch(t)
	ctx := context.Background()
	_, err := f.matchService.RecordResult(ctx, RecordResultInput{MatchID: match.ID, ScoreA: score(3), ScoreB: score(1)})
	require.NoError(t, err)

	file, err := f.exportService.Export(ctx, ExportJSON)
	require.NoError(t, err)
	assert.Equal(t, "matches.json", file.Filename)
	assert.Equal(t, "application/json", file.ContentType)

	onDisk, err := afero.ReadFile(f.fs, "data/matches.json")
	require.NoError(t, err)
	assert.Equal(t, onDisk, file.Body)

	var decoded []models.Match
	require.NoError(t, json.Unmarshal(file.Body, &decoded))
	assert.Equal(t, f.matches.GetAll(ctx), decoded)
	assert.NotContains(t, string(file.Body), `"teamA"`)
}

func TestExport_XMLScenario(t *testing.T) {
	f, _, _, match := setupMatch(t)
	ctx := context.Background()
	_, err := f.matchService.RecordResult(ctx, RecordResultInput{MatchID: match.ID, ScoreA: score(3), ScoreB: score(1)})
	require.NoError(t, err)

	file, err := f.exportService.Export(ctx, ExportXML)
	require.NoError(t, err)
	body := string(file.Body)

	assert.Equal(t, "matches.xml", file.Filename)
	assert.Equal(t, "application/xml", file.ContentType)
	assert.Equal(t, 1, strings.Count(body, "<match>"))
	assert.Equal(t, 1, strings.Count(body, "<result>"))
	assert.Equal(t, 1, strings.Count(body, "<entry>"))
	assert.Contains(t, body, "<action>result_added</action>")
}

func TestExport_HTMLUsesTeamNamesAndClock(t *testing.T) {
	f, _, _, _ := setupMatch(t)

	file, err := f.exportService.Export(context.Background(), ExportHTML)
	require.NoError(t, err)
	body := string(file.Body)

	assert.Equal(t, "text/html; charset=utf-8", file.ContentType)
	assert.Contains(t, body, "<td>Alpha</td>")
	assert.Contains(t, body, "<td>Beta</td>")
	assert.Contains(t, body, "Generated on: 2024-05-01 12:00:00 UTC")
	assert.Contains(t, body, "Total matches: 1")
}
