package ports

import (
	"regimen/domain/core"
	"regimen/domain/feed"
)

// SnapshotStore persists the last-good home feed render per storefront.
// Implementations are local disk stores; absence is reported with
// core.ErrSnapshotNotFound.
type SnapshotStore interface {
	// Save overwrites the storefront's snapshot
	Save(storefront core.StorefrontID, snapshot feed.Snapshot) error

	// Load returns the storefront's snapshot if one exists
	Load(storefront core.StorefrontID) (*feed.Snapshot, error)
}
