//go:build bolt

package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"go.etcd.io/bbolt"

	"github.com/aip-heidelberg/codeeval/internal/application"
	"github.com/aip-heidelberg/codeeval/internal/model"
)

const (
	boltBucketDatasets = "datasets" // key: name -> CachedDataset JSON
	boltBucketRuns     = "runs"     // key: started_at + id -> SetupRun JSON
)

// Bolt implements the Store interface using BoltDB.
type Bolt struct {
	storage *bbolt.DB
}

// NewBolt creates a new Bolt database at the specified path.
func NewBolt(path string) (*Bolt, error) {
	instance, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}

	if err := instance.Update(func(tx *bbolt.Tx) error {
		for _, bucket := range []string{boltBucketDatasets, boltBucketRuns} {
			if _, err := tx.CreateBucketIfNotExists([]byte(bucket)); err != nil {
				return err
			}
		}

		return nil
	}); err != nil {
		_ = instance.Close()

		return nil, err
	}

	return &Bolt{storage: instance}, nil
}

func initDB() (Store, error) {
	dbPath, err := application.DatabasePath()
	if err != nil {
		return nil, err
	}

	return NewBolt(dbPath)
}

// Ping verifies the database handle is usable.
func (b *Bolt) Ping() error {
	return b.storage.View(func(tx *bbolt.Tx) error { return nil })
}

// Close closes the database.
func (b *Bolt) Close() error {
	return b.storage.Close()
}

// SaveDataset inserts or replaces a cached dataset by name.
func (b *Bolt) SaveDataset(ds *model.CachedDataset) error {
	raw, err := json.Marshal(ds)
	if err != nil {
		return fmt.Errorf("marshaling dataset %s: %w", ds.Name, err)
	}

	return b.storage.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boltBucketDatasets)).Put([]byte(ds.Name), raw)
	})
}

// GetDataset returns a cached dataset by name.
func (b *Bolt) GetDataset(name string) (*model.CachedDataset, error) {
	var ds model.CachedDataset

	err := b.storage.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket([]byte(boltBucketDatasets)).Get([]byte(name))
		if raw == nil {
			return fmt.Errorf("dataset %s: %w", name, ErrNotFound)
		}

		return json.Unmarshal(raw, &ds)
	})
	if err != nil {
		return nil, err
	}

	return &ds, nil
}

// ListDatasets returns all cached datasets ordered by name.
func (b *Bolt) ListDatasets() ([]model.CachedDataset, error) {
	var out []model.CachedDataset

	err := b.storage.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boltBucketDatasets)).ForEach(func(_, raw []byte) error {
			var ds model.CachedDataset
			if err := json.Unmarshal(raw, &ds); err != nil {
				return err
			}

			out = append(out, ds)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("listing datasets: %w", err)
	}

	return out, nil
}

// DeleteDataset removes a cached dataset. Deleting an absent entry is not
// an error.
func (b *Bolt) DeleteDataset(name string) error {
	return b.storage.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boltBucketDatasets)).Delete([]byte(name))
	})
}

// SaveRun records one setup step execution.
func (b *Bolt) SaveRun(run *model.SetupRun) error {
	raw, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("marshaling run %s/%s: %w", run.RunID, run.Step, err)
	}

	key := run.StartedAt.UTC().Format(time.RFC3339Nano) + "/" + run.ID

	return b.storage.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boltBucketRuns)).Put([]byte(key), raw)
	})
}

// ListRuns returns the most recent setup steps, newest first.
func (b *Bolt) ListRuns(limit int) ([]model.SetupRun, error) {
	if limit <= 0 {
		limit = 50
	}

	var out []model.SetupRun

	err := b.storage.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boltBucketRuns)).ForEach(func(_, raw []byte) error {
			var run model.SetupRun
			if err := json.Unmarshal(raw, &run); err != nil {
				return err
			}

			out = append(out, run)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.After(out[j].StartedAt) })

	if len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}
