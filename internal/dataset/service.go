package dataset

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/aip-heidelberg/codeeval/internal/bop"
	"github.com/aip-heidelberg/codeeval/internal/model"
	"github.com/aip-heidelberg/codeeval/internal/store"
)

// Service combines the hub client with the local cache store.
type Service struct {
	store store.Store
	hub   *HubClient
	ttl   time.Duration
	log   *zap.Logger
}

// NewService creates a dataset service. A zero ttl keeps cache entries
// fresh forever.
func NewService(st store.Store, hub *HubClient, ttl time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{store: st, hub: hub, ttl: ttl, log: logger.Named("dataset")}
}

// Fetch returns a named dataset, served from the cache when fresh unless
// force is set. The second return value reports a cache hit.
func (s *Service) Fetch(ctx context.Context, name string, force bool) (*bop.Bag, bool, error) {
	info, err := Lookup(name)
	if err != nil {
		return nil, false, err
	}

	if !force {
		cached, err := s.store.GetDataset(name)
		if err == nil && cached.Fresh(s.ttl, time.Now()) {
			bag, err := decodeRows(info.Schema, cached.Rows)
			if err != nil {
				return nil, false, fmt.Errorf("cached dataset %s is corrupt: %w", name, err)
			}

			s.log.Debug("cache hit", zap.String("dataset", name), zap.Int("rows", bag.Len()))

			return bag, true, nil
		}

		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, false, err
		}
	}

	bag, err := s.hub.Fetch(ctx, info)
	if err != nil {
		return nil, false, err
	}

	rows, err := json.Marshal(bag.Records())
	if err != nil {
		return nil, false, fmt.Errorf("encoding dataset %s for cache: %w", name, err)
	}

	entry := &model.CachedDataset{
		Name:      name,
		HubID:     info.HubID,
		NumRows:   bag.Len(),
		FetchedAt: time.Now().UTC(),
		Rows:      rows,
	}

	if err := s.store.SaveDataset(entry); err != nil {
		return nil, false, err
	}

	return bag, false, nil
}

// FromCache returns a cached dataset without touching the network.
func (s *Service) FromCache(name string) (*bop.Bag, error) {
	info, err := Lookup(name)
	if err != nil {
		return nil, err
	}

	cached, err := s.store.GetDataset(name)
	if err != nil {
		return nil, err
	}

	return decodeRows(info.Schema, cached.Rows)
}

// List returns the cache entries for all known datasets.
func (s *Service) List() ([]model.CachedDataset, error) {
	return s.store.ListDatasets()
}

func decodeRows(schema *bop.Schema, rows json.RawMessage) (*bop.Bag, error) {
	return bop.FromJSONReader(schema, bytes.NewReader(rows))
}
