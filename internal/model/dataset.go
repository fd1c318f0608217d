package model

import (
	"encoding/json"
	"time"
)

// CachedDataset is a hub dataset stored in the local cache.
type CachedDataset struct {
	// Name is the registry name (e.g. "geeks4geeks")
	Name string `json:"name"`

	// HubID is the upstream dataset identifier
	HubID string `json:"hub_id"`

	// NumRows is the cached row count
	NumRows int `json:"num_rows"`

	// FetchedAt is when the rows were downloaded
	FetchedAt time.Time `json:"fetched_at"`

	// Rows holds the dataset rows as a JSON array of objects
	Rows json.RawMessage `json:"rows"`
}

// Fresh reports whether the cache entry is still within ttl. A zero ttl
// never expires.
func (d *CachedDataset) Fresh(ttl time.Duration, now time.Time) bool {
	if ttl <= 0 {
		return true
	}

	return now.Sub(d.FetchedAt) < ttl
}
