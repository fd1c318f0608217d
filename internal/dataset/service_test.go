//go:build !bolt

package dataset

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aip-heidelberg/codeeval/internal/store"
)

func newTestService(t *testing.T, hubURL string, ttl time.Duration) *Service {
	t.Helper()

	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	return NewService(st, NewHubClient(hubURL, nil), ttl, nil)
}

func TestServiceFetchCaches(t *testing.T) {
	srv := fakeHub(t, hubRows(5))
	defer srv.Close()

	svc := newTestService(t, srv.URL, 0)
	ctx := context.Background()

	bag, cached, err := svc.Fetch(ctx, "geeks4geeks", false)
	require.NoError(t, err)
	assert.False(t, cached, "first fetch goes to the hub")
	assert.Equal(t, 5, bag.Len())

	bag, cached, err = svc.Fetch(ctx, "geeks4geeks", false)
	require.NoError(t, err)
	assert.True(t, cached, "second fetch is served from the cache")
	assert.Equal(t, 5, bag.Len())

	list, err := svc.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 5, list[0].NumRows)
}

func TestServiceFetchForceBypassesCache(t *testing.T) {
	srv := fakeHub(t, hubRows(2))
	defer srv.Close()

	svc := newTestService(t, srv.URL, 0)
	ctx := context.Background()

	_, _, err := svc.Fetch(ctx, "geeks4geeks", false)
	require.NoError(t, err)

	_, cached, err := svc.Fetch(ctx, "geeks4geeks", true)
	require.NoError(t, err)
	assert.False(t, cached)
}

func TestServiceFromCacheMiss(t *testing.T) {
	svc := newTestService(t, "http://unused.invalid", 0)

	_, err := svc.FromCache("geeks4geeks")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestServiceFetchUnknownDataset(t *testing.T) {
	svc := newTestService(t, "http://unused.invalid", 0)

	_, _, err := svc.Fetch(context.Background(), "nope", false)
	assert.Error(t, err)
}
