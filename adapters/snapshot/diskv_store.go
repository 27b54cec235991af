package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"regimen/domain/core"
	"regimen/domain/feed"
	"regimen/ports"

	"github.com/peterbourgon/diskv/v3"
)

// diskvStore persists one rendered feed per storefront as a JSON document
// on local disk. The store is the fallback read path when live assembly
// fails, so writes always replace the whole document.
type diskvStore struct {
	d *diskv.Diskv
}

// NewDiskvStore creates a snapshot store rooted at basePath
func NewDiskvStore(basePath string) ports.SnapshotStore {
	return &diskvStore{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		Transform:    func(s string) []string { return []string{} },
		CacheSizeMax: 1024 * 1024, // 1MB
	})}
}

// Save overwrites the storefront's snapshot
func (s *diskvStore) Save(storefront core.StorefrontID, snap feed.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := s.d.Write(storefront.String(), data); err != nil {
		return fmt.Errorf("failed to write snapshot for %s: %w", storefront, err)
	}
	return nil
}

// Load returns the storefront's snapshot if one exists
func (s *diskvStore) Load(storefront core.StorefrontID) (*feed.Snapshot, error) {
	data, err := s.d.Read(storefront.String())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("storefront %s: %w", storefront, core.ErrSnapshotNotFound)
		}
		return nil, fmt.Errorf("failed to read snapshot for %s: %w", storefront, err)
	}

	var snap feed.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot for %s: %w", storefront, err)
	}

	return &snap, nil
}
