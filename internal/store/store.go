// Package store provides the local storage layer: cached hub datasets and
// setup run history.
//
// The default backend is SQLite (pure Go driver). A BoltDB backend is
// available behind the `bolt` build tag. Use [GetDB] to obtain the
// singleton instance.
package store

import (
	"errors"
	"sync"

	"github.com/aip-heidelberg/codeeval/internal/model"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the database operations used by the app.
type Store interface {
	Ping() error

	// Dataset cache
	SaveDataset(ds *model.CachedDataset) error
	GetDataset(name string) (*model.CachedDataset, error)
	ListDatasets() ([]model.CachedDataset, error)
	DeleteDataset(name string) error

	// Setup run history
	SaveRun(run *model.SetupRun) error
	ListRuns(limit int) ([]model.SetupRun, error)

	Close() error
}

var (
	once sync.Once
	db   Store
)

// GetDB returns the initialized database store.
func GetDB() Store {
	once.Do(lazyInit)

	return db
}

func lazyInit() {
	instance, err := initDB()
	if err != nil {
		panic(err)
	}

	_ = instance.Ping()
	db = instance
}
