package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aip-heidelberg/codeeval/internal/bop"
)

func TestBuild(t *testing.T) {
	dir := t.TempDir()

	files := map[string]string{
		"sample_b.d": "def g(y):\n    return y * 2\n",
		"sample_a.d": "def f(x):\n    return x + 1\n",
		"notes.txt":  "ignored",
	}

	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}

	out := filepath.Join(t.TempDir(), "d_with_params.csv")

	n, err := Build(context.Background(), dir, out)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	bag, err := bop.FromCSV(CorpusSchema, out)
	require.NoError(t, err)
	require.Equal(t, 2, bag.Len())

	ids, err := bag.Strings("id")
	require.NoError(t, err)
	assert.Equal(t, []string{"sample_a", "sample_b"}, ids, "rows are sorted by id")

	contents, err := bag.Strings("d_with_params")
	require.NoError(t, err)
	assert.Contains(t, contents[0], "return x + 1")
}

func TestBuildNoFiles(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.csv")

	_, err := Build(context.Background(), t.TempDir(), out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no .d files")
}

func TestBuildMissingDir(t *testing.T) {
	_, err := Build(context.Background(), filepath.Join(t.TempDir(), "absent"), "out.csv")
	assert.Error(t, err)
}

func TestBuildCancelled(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.d"), []byte("x"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Build(ctx, dir, filepath.Join(t.TempDir(), "out.csv"))
	assert.ErrorIs(t, err, context.Canceled)
}
