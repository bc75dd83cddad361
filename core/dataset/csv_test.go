package dataset_test

import (
	"os"
	"path/filepath"
	"testing"

	"comics-etl/core/dataset"
	"comics-etl/core/failure"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCharactersTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stage", dataset.CharactersFile)
	rows := []dataset.CharacterRow{
		{ID: 1011334, Name: "3-D Man", ComicsCount: 12},
		{ID: 1017100, Name: "A-Bomb (HAS), \"Rick\"", ComicsCount: 4},
	}

	require.NoError(t, dataset.WriteCharacters(path, rows))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "index,id,name,comics_count\n0,1011334,3-D Man,12\n1,1017100,\"A-Bomb (HAS), \"\"Rick\"\"\",4\n", string(raw))

	got, err := dataset.ReadCharacters(path)
	require.NoError(t, err)
	if diff := cmp.Diff(rows, got); diff != "" {
		t.Errorf("ReadCharacters mismatch (-want +got):\n%s", diff)
	}
}

func TestComicsTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), dataset.ComicsFile)
	rows := []dataset.ComicRow{
		{ID: 10, Title: "X", CharacterID: 1},
		{ID: 10, Title: "X", CharacterID: 2},
	}

	require.NoError(t, dataset.WriteComics(path, rows))
	got, err := dataset.ReadComics(path)
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestResultTables(t *testing.T) {
	dir := t.TempDir()
	rows := []dataset.ResultRow{
		{Name: "A", CharacterID: 1, ComicsCount: 3, CountCalculated: 2, Difference: 1},
	}

	t.Run("Final", func(t *testing.T) {
		path := filepath.Join(dir, dataset.FinalResultsFile)
		require.NoError(t, dataset.WriteResults(path, rows))

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "name,character_id,comics_count,count_calculated\nA,1,3,2\n", string(raw))

		got, err := dataset.ReadResults(path)
		require.NoError(t, err)
		assert.Equal(t, rows, got)
	})

	t.Run("Verified", func(t *testing.T) {
		path := filepath.Join(dir, dataset.VerifiedResultsFile)
		require.NoError(t, dataset.WriteVerified(path, rows))

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "name,character_id,comics_count,count_calculated,difference\nA,1,3,2,1\n", string(raw))

		got, err := dataset.ReadResults(path)
		require.NoError(t, err)
		assert.Equal(t, rows, got)
	})
}

func TestReadErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("Missing", func(t *testing.T) {
		_, err := dataset.ReadCharacters(filepath.Join(dir, "nope.csv"))
		assert.True(t, failure.Is(err, failure.KindFilesystem))
	})

	t.Run("WrongHeader", func(t *testing.T) {
		path := filepath.Join(dir, "bad_header.csv")
		require.NoError(t, os.WriteFile(path, []byte("a,b,c,d\n"), 0o644))
		_, err := dataset.ReadComics(path)
		assert.True(t, failure.Is(err, failure.KindParse))
	})

	t.Run("BadInteger", func(t *testing.T) {
		path := filepath.Join(dir, "bad_int.csv")
		require.NoError(t, os.WriteFile(path, []byte("index,id,name,comics_count\n0,x,A,1\n"), 0o644))
		_, err := dataset.ReadCharacters(path)
		assert.True(t, failure.Is(err, failure.KindParse))
	})
}
