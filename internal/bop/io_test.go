package bop

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromJSONReader(t *testing.T) {
	s := MustSchema(String("path"), Bool("success"), Int("correct"))

	input := `[
		{"path": "a.json", "success": true, "correct": 3, "extra": "dropped"},
		{"path": "b.json", "success": false}
	]`

	b, err := FromJSONReader(s, strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, 2, b.Len())

	correct, err := b.Ints("correct")
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 0}, correct)
}

func TestFromJSONReaderRejectsNonArray(t *testing.T) {
	s := MustSchema(String("path"))

	_, err := FromJSONReader(s, strings.NewReader(`{"path": "a.json"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "array of objects")
}

func TestFromJSONMissingFile(t *testing.T) {
	s := MustSchema(String("path"))

	_, err := FromJSON(s, filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestCSVRoundTrip(t *testing.T) {
	s := MustSchema(String("id"), String("d_with_params"), Int("weight"))

	b, err := FromRecords(s, []Record{
		{"id": "sample_001", "d_with_params": "def f(x): return x", "weight": 2},
		{"id": "sample_002", "d_with_params": "def g(): pass"},
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.csv")

	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, b.WriteCSV(f))
	require.NoError(t, f.Close())

	got, err := FromCSV(s, path)
	require.NoError(t, err)
	require.Equal(t, 2, got.Len())

	ids, err := got.Strings("id")
	require.NoError(t, err)
	assert.Equal(t, []string{"sample_001", "sample_002"}, ids)

	// The empty cell stays null through the round trip.
	null, err := got.IsNull(1, "weight")
	require.NoError(t, err)
	assert.True(t, null)
}

func TestFromCSVReaderBadCell(t *testing.T) {
	s := MustSchema(String("id"), Int("n"))

	_, err := FromCSVReader(s, strings.NewReader("id,n\nx,notanumber\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"n"`)
}

func TestFromCSVReaderEmptyInput(t *testing.T) {
	s := MustSchema(String("id"))

	b, err := FromCSVReader(s, strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, b.Len())
}

func TestFromCSVReaderIgnoresUnknownColumns(t *testing.T) {
	s := MustSchema(String("id"))

	b, err := FromCSVReader(s, strings.NewReader("id,unknown\nx,y\n"))
	require.NoError(t, err)
	require.Equal(t, 1, b.Len())

	_, ok := b.Record(0)["unknown"]
	assert.False(t, ok)
}

func TestWriteCSVConflatesEmptyStringWithNull(t *testing.T) {
	s := MustSchema(String("id"), String("note"))

	b, err := FromRecords(s, []Record{{"id": "a", "note": ""}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, b.WriteCSV(&buf))

	// CSV has no null marker, so the empty string comes back as null.
	got, err := FromCSVReader(s, &buf)
	require.NoError(t, err)
	require.Equal(t, 1, got.Len())

	null, err := got.IsNull(0, "note")
	require.NoError(t, err)
	assert.True(t, null)
}
