package store

import (
	"context"

	"github.com/tokenagents/character-registry/internal/model"
)

// Store exposes persistence operations required by services.
// Implementations live under internal/store/<driver>/.
type Store interface {
	Characters() Characters

	// HealthPing verifies the underlying connection is responsive.
	HealthPing(ctx context.Context) error
}

// Characters is the character record contract.
type Characters interface {
	// Create inserts a new record and returns it with the assigned id
	// and timestamps.
	Create(ctx context.Context, tokenID int64, name string, data model.CharacterData) (*model.Character, error)

	// GetByTokenID returns the record for tokenID or model.ErrNotFound.
	// TokenID carries no uniqueness constraint; with duplicates the
	// lowest-id row wins, which callers must not rely on.
	GetByTokenID(ctx context.Context, tokenID int64) (*model.Character, error)

	// UpdateData replaces the character document wholesale and bumps
	// updated_at. Updating a missing tokenID is a silent no-op, not an
	// error; callers that need not-found must check with GetByTokenID
	// first.
	UpdateData(ctx context.Context, tokenID int64, data model.CharacterData) error

	// Delete removes every row matching tokenID. Deleting a missing
	// tokenID is a no-op.
	Delete(ctx context.Context, tokenID int64) error

	// ListSummaries returns {name, token_id} projections in insertion
	// order.
	ListSummaries(ctx context.Context) ([]model.CharacterSummary, error)
}
