package model

import "time"

// CharacterData is the opaque character document supplied by callers.
// The registry never interprets it beyond the settings merge, which
// touches the top-level "settings" object and "clients" array.
type CharacterData map[string]interface{}

// Character is the persisted unit representing one agent profile.
// TokenID is the external lookup key; it carries no uniqueness
// constraint, so duplicates are possible and lookups return the
// lowest-id match.
type Character struct {
	ID        int64         `json:"id"`
	TokenID   int64         `json:"tokenId"`
	Name      string        `json:"name"`
	Data      CharacterData `json:"characterData"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// CharacterSummary is the {name, token_id} projection used for bulk
// listing and for the init relay to the orchestration server.
type CharacterSummary struct {
	Name    string `json:"name"`
	TokenID int64  `json:"token_id"`
}
