package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortedKeys(t *testing.T) {
	m := map[int]string{3: "c", 1: "a", 2: "b"}
	assert.Equal(t, []int{1, 2, 3}, SortedKeys(m))
}

func TestNumericHelpers(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(uint64(10), Sum([]int{1, 2, 3, 4}))
	assert.Equal(uint64(0), Sum([]uint8{}))
	assert.Equal(2, Min(2, 5))
	assert.Equal(7, Abs(-7))
}

func TestGatherDocumentPaths(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.yml", "a.json", "c.txt", "d.YAML"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0644))
	}

	paths, err := GatherDocumentPaths(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.json"),
		filepath.Join(dir, "b.yml"),
		filepath.Join(dir, "d.YAML"),
	}, paths)

	single, err := GatherDocumentPaths(filepath.Join(dir, "c.txt"))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "c.txt")}, single)
}

func TestBinaryRoundTrip(t *testing.T) {
	type snapshot struct {
		Name      string
		Durations []int
	}
	path := filepath.Join(t.TempDir(), "bars.dat")
	require.NoError(t, CreateBinary(path, snapshot{Name: "x", Durations: []int{800, 1200}}))

	got, err := ReadBinary[snapshot](path)
	require.NoError(t, err)
	assert.Equal(t, snapshot{Name: "x", Durations: []int{800, 1200}}, got)
}
