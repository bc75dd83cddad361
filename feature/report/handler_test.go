package report

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"comics-etl/core/dataset"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeTables(t *testing.T, dir string) {
	t.Helper()
	rows := []dataset.ResultRow{
		{Name: "A", CharacterID: 1, ComicsCount: 2, CountCalculated: 2},
		{Name: "B", CharacterID: 2, ComicsCount: 3, CountCalculated: 2, Difference: 1},
		{Name: "Beta", CharacterID: 3, ComicsCount: 9, CountCalculated: 4, Difference: 5},
		{Name: "C", CharacterID: 4, ComicsCount: 1, CountCalculated: 2, Difference: -1},
	}
	require.NoError(t, dataset.WriteResults(dir+"/"+dataset.FinalResultsFile, rows))
	require.NoError(t, dataset.WriteVerified(dir+"/"+dataset.VerifiedResultsFile, rows[1:3]))
}

func setupTestApp(t *testing.T, dir string) *fiber.App {
	app := fiber.New()
	feature := NewFeature(dir, time.Minute, zap.NewNop())
	require.NoError(t, feature.Load(app))
	return app
}

func getJSON(t *testing.T, app *fiber.App, target string, out any) int {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

type pageBody struct {
	Total  int                 `json:"total"`
	Offset int                 `json:"offset"`
	Limit  int                 `json:"limit"`
	Items  []dataset.ResultRow `json:"items"`
}

func TestHandleResults(t *testing.T) {
	dir := t.TempDir()
	writeTables(t, dir)
	app := setupTestApp(t, dir)

	t.Run("All", func(t *testing.T) {
		var body pageBody
		assert.Equal(t, 200, getJSON(t, app, "/results", &body))
		assert.Equal(t, 4, body.Total)
		assert.Len(t, body.Items, 4)
		assert.Equal(t, -1, body.Items[3].Difference)
	})

	t.Run("Name Filter", func(t *testing.T) {
		var body pageBody
		assert.Equal(t, 200, getJSON(t, app, "/results?name=b", &body))
		assert.Equal(t, 2, body.Total)
	})

	t.Run("Paging", func(t *testing.T) {
		var body pageBody
		assert.Equal(t, 200, getJSON(t, app, "/results?limit=1&offset=2", &body))
		require.Len(t, body.Items, 1)
		assert.Equal(t, "Beta", body.Items[0].Name)
	})

	t.Run("Offset Past End", func(t *testing.T) {
		var body pageBody
		assert.Equal(t, 200, getJSON(t, app, "/results?offset=50", &body))
		assert.Empty(t, body.Items)
	})
}

func TestHandleDiscrepancies(t *testing.T) {
	dir := t.TempDir()
	writeTables(t, dir)
	app := setupTestApp(t, dir)

	var body pageBody
	assert.Equal(t, 200, getJSON(t, app, "/results/discrepancies", &body))
	require.Len(t, body.Items, 2)
	assert.Equal(t, "Beta", body.Items[0].Name)
	for _, r := range body.Items {
		assert.Greater(t, r.Difference, 0)
	}
}

func TestHandleSummary(t *testing.T) {
	dir := t.TempDir()
	writeTables(t, dir)
	app := setupTestApp(t, dir)

	var body struct {
		Summary Summary `json:"summary"`
	}
	assert.Equal(t, 200, getJSON(t, app, "/results/summary", &body))
	assert.Equal(t, Summary{Characters: 4, Matched: 1, Discrepancies: 2, Overcounted: 1, MissingComics: 6}, body.Summary)
}

func TestHandleCharacter(t *testing.T) {
	dir := t.TempDir()
	writeTables(t, dir)
	app := setupTestApp(t, dir)

	var rows []dataset.ResultRow
	assert.Equal(t, 200, getJSON(t, app, "/results/3", &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, 5, rows[0].Difference)

	assert.Equal(t, 404, getJSON(t, app, "/results/99", nil))
	assert.Equal(t, 400, getJSON(t, app, "/results/abc", nil))
}

func TestHandleResults_NoTables(t *testing.T) {
	app := setupTestApp(t, t.TempDir())

	var body map[string]string
	assert.Equal(t, 404, getJSON(t, app, "/results", &body))
	assert.Contains(t, body["error"], "run the pipeline")

	assert.Equal(t, 200, getJSON(t, app, "/health", nil))
}
