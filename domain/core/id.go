package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	// Use UUID v7 for time-ordered, sortable IDs
	// Falls back to v4 if v7 is not available (for compatibility)
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	UserID       ID
	ProductID    ID
	DealID       ID
	StorefrontID ID
)

// String conversions for domain IDs
func (id UserID) String() string       { return ID(id).String() }
func (id ProductID) String() string    { return ID(id).String() }
func (id DealID) String() string       { return ID(id).String() }
func (id StorefrontID) String() string { return ID(id).String() }

// ParseUserID parses a string into UserID
func ParseUserID(s string) (UserID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("user ID cannot be empty")
	}
	return UserID(s), nil
}

// ParseProductID parses a string into ProductID
func ParseProductID(s string) (ProductID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("product ID cannot be empty")
	}
	return ProductID(s), nil
}

// ParseDealID parses a string into DealID
func ParseDealID(s string) (DealID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("deal ID cannot be empty")
	}
	return DealID(s), nil
}

// ParseStorefrontID parses a string into StorefrontID
func ParseStorefrontID(s string) (StorefrontID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("storefront ID cannot be empty")
	}
	return StorefrontID(s), nil
}
