package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHub serves paginated /rows responses the way the datasets-server does.
func fakeHub(t *testing.T, rows []map[string]any) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rows", r.URL.Path)
		require.Equal(t, "train", r.URL.Query().Get("split"))
		require.NotEmpty(t, r.URL.Query().Get("dataset"))

		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		length, _ := strconv.Atoi(r.URL.Query().Get("length"))

		end := offset + length
		if end > len(rows) {
			end = len(rows)
		}

		type wrapped struct {
			Row map[string]any `json:"row"`
		}

		page := struct {
			Rows         []wrapped `json:"rows"`
			NumRowsTotal int       `json:"num_rows_total"`
		}{NumRowsTotal: len(rows)}

		for _, row := range rows[offset:end] {
			page.Rows = append(page.Rows, wrapped{Row: row})
		}

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(page))
	}))
}

func hubRows(n int) []map[string]any {
	rows := make([]map[string]any, n)
	for i := range rows {
		rows[i] = map[string]any{
			"id":            fmt.Sprintf("g4g_%03d", i),
			"function_java": "int f() { return 0; }",
			"extra_column":  "dropped on ingest",
		}
	}

	return rows
}

func TestHubFetchSinglePage(t *testing.T) {
	srv := fakeHub(t, hubRows(3))
	defer srv.Close()

	c := NewHubClient(srv.URL, nil)

	info, err := Lookup("geeks4geeks")
	require.NoError(t, err)

	bag, err := c.Fetch(context.Background(), info)
	require.NoError(t, err)
	assert.Equal(t, 3, bag.Len())

	ids, err := bag.Strings("id")
	require.NoError(t, err)
	assert.Equal(t, "g4g_000", ids[0])

	// Upstream columns outside the schema are dropped.
	_, ok := bag.Record(0)["extra_column"]
	assert.False(t, ok)
}

func TestHubFetchPaginates(t *testing.T) {
	srv := fakeHub(t, hubRows(pageSize + 7))
	defer srv.Close()

	c := NewHubClient(srv.URL, nil)

	info, err := Lookup("geeks4geeks")
	require.NoError(t, err)

	bag, err := c.Fetch(context.Background(), info)
	require.NoError(t, err)
	assert.Equal(t, pageSize+7, bag.Len())
}

func TestHubFetchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "dataset not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewHubClient(srv.URL, nil)

	info, err := Lookup("geeks4geeks")
	require.NoError(t, err)

	_, err = c.Fetch(context.Background(), info)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "geeks4geeks")
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"geeks4geeks"}, Names())
}
