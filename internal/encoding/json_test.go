package encoding

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sample.json")

	require.NoError(t, SaveJSON(path, sample{Name: "geeks4geeks", Count: 3}))

	got, err := LoadJSON[sample](path)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "geeks4geeks", got.Name)
	assert.Equal(t, 3, got.Count)
}

func TestLoadJSONMissingFile(t *testing.T) {
	got, err := LoadJSON[sample](filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLoadJSONInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, SaveJSON(path, "not an object"))

	_, err := LoadJSON[sample](path)
	assert.Error(t, err)
}
