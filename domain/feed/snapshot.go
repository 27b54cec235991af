package feed

import (
	"time"

	"regimen/domain/core"
)

// Snapshot is a persisted last-good home feed render. When live assembly
// fails the screen is served from here instead of erroring, marked stale.
type Snapshot struct {
	Rows        []Row           `json:"rows"`
	LayoutHash  core.LayoutHash `json:"layout_hash"`
	AssembledAt time.Time       `json:"assembled_at"`
}
