package export

import (
	"strings"
	"testing"
	"time"

	"github.com/Dosada05/tournament-platform/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTML_Report(t *testing.T) {
	scheduled := completedMatch()
	scheduled.ID = "m2"
	scheduled.Status = models.MatchStatusScheduled
	scheduled.Result = nil
	scheduled.TeamB = "<Gamma>"

	generatedAt := time.Date(2024, 5, 2, 8, 0, 0, 0, time.UTC)
	out, err := HTML([]models.MatchWithTeams{completedMatch(), scheduled}, generatedAt, nil)
	require.NoError(t, err)
	page := string(out)

	assert.Contains(t, page, "Generated on: 2024-05-02 08:00:00 UTC")
	assert.Contains(t, page, "Total matches: 2")
	assert.Contains(t, page, `<td class="result">3 - 1</td>`)
	assert.Contains(t, page, `<td class="result">Not played</td>`)
	assert.Contains(t, page, `<td class="status-completed">completed</td>`)
	assert.Contains(t, page, `<td class="status-scheduled">scheduled</td>`)
	assert.Contains(t, page, "<td>2024-05-01 10:00:00 UTC</td>")
	assert.Contains(t, page, "&lt;Gamma&gt;")
	assert.Equal(t, 2, strings.Count(page, "<tr>\n                <td>"))
}

func TestHTML_IsDeterministic(t *testing.T) {
	matches := []models.MatchWithTeams{completedMatch()}
	generatedAt := time.Date(2024, 5, 2, 8, 0, 0, 0, time.UTC)

	first, err := HTML(matches, generatedAt, time.UTC)
	require.NoError(t, err)
	second, err := HTML(matches, generatedAt, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestHTML_UsesLocation(t *testing.T) {
	loc := time.FixedZone("MSK", 3*60*60)
	generatedAt := time.Date(2024, 5, 2, 8, 0, 0, 0, time.UTC)

	out, err := HTML([]models.MatchWithTeams{completedMatch()}, generatedAt, loc)
	require.NoError(t, err)
	assert.Contains(t, string(out), "Generated on: 2024-05-02 11:00:00 MSK")
	assert.Contains(t, string(out), "<td>2024-05-01 13:00:00 MSK</td>")
}
