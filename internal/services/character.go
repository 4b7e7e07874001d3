package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tokenagents/character-registry/internal/eliza"
	"github.com/tokenagents/character-registry/internal/model"
	"github.com/tokenagents/character-registry/internal/settings"
	"github.com/tokenagents/character-registry/internal/store"
)

// CharacterService orchestrates the character record lifecycle between
// the store, the settings merge and the Eliza relay.
type CharacterService struct {
	store store.Store
	eliza *eliza.Client
	log   zerolog.Logger
}

func NewCharacterService(s store.Store, e *eliza.Client, log zerolog.Logger) *CharacterService {
	return &CharacterService{store: s, eliza: e, log: log}
}

// CreateCharacter inserts a new record after minimal presence checks.
func (s *CharacterService) CreateCharacter(ctx context.Context, tokenID int64, name string, data model.CharacterData) (*model.Character, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", model.ErrValidation)
	}
	if data == nil {
		data = model.CharacterData{}
	}
	s.log.Debug().Int64("token_id", tokenID).Str("name", name).Msg("creating character")
	return s.store.Characters().Create(ctx, tokenID, name, data)
}

// GetCharacter returns the record for tokenID or model.ErrNotFound.
func (s *CharacterService) GetCharacter(ctx context.Context, tokenID int64) (*model.Character, error) {
	return s.store.Characters().GetByTokenID(ctx, tokenID)
}

// DeleteCharacter removes matching rows; deleting a missing token is a
// no-op.
func (s *CharacterService) DeleteCharacter(ctx context.Context, tokenID int64) error {
	s.log.Debug().Int64("token_id", tokenID).Msg("deleting character")
	return s.store.Characters().Delete(ctx, tokenID)
}

// ListSummaries returns the {name, token_id} projection of every record.
func (s *CharacterService) ListSummaries(ctx context.Context) ([]model.CharacterSummary, error) {
	return s.store.Characters().ListSummaries(ctx)
}

// UpdateSettings merges a partial settings payload into the stored
// character document and persists the result. Returns model.ErrNotFound
// when the token has no record; existence is checked here because the
// store's update deliberately ignores missing rows.
func (s *CharacterService) UpdateSettings(ctx context.Context, tokenID int64, patch map[string]interface{}) error {
	c, err := s.store.Characters().GetByTokenID(ctx, tokenID)
	if err != nil {
		return err
	}
	changed := settings.Apply(c.Data, patch)
	s.log.Debug().Int64("token_id", tokenID).Bool("changed", changed).Msg("merged character settings")
	return s.store.Characters().UpdateData(ctx, tokenID, c.Data)
}

// InitCharacters relays the full summary list to the Eliza server and
// returns it. A relay failure does not fail the operation: the wire
// contract predates upstream error surfacing, so the failure is only
// logged. Callers still get the summaries that were sent.
func (s *CharacterService) InitCharacters(ctx context.Context) ([]model.CharacterSummary, error) {
	summaries, err := s.store.Characters().ListSummaries(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.eliza.InitCharacters(ctx, summaries); err != nil {
		s.log.Error().Err(err).Int("characters", len(summaries)).Msg("init relay to eliza server failed")
	}
	return summaries, nil
}
