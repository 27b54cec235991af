package core

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// LayoutHash fingerprints an ordered section layout. Two renders with the
// same hash have identical section slugs in identical order, so cached
// scroll indices remain valid.
type LayoutHash Hash

// NewLayoutHash creates a layout hash from raw data
func NewLayoutHash(data []byte) LayoutHash { return LayoutHash(NewHash(data)) }

func (h LayoutHash) String() string { return Hash(h).String() }

// ComputeLayoutHash fingerprints the ordered slug sequence of a layout.
// Order matters: the same slugs in a different order hash differently.
func ComputeLayoutHash(slugs []string) LayoutHash {
	var data strings.Builder
	for _, slug := range slugs {
		data.WriteString(slug)
		data.WriteString("\n")
	}
	return NewLayoutHash([]byte(data.String()))
}
