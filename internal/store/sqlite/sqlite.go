// Package sqlite implements store.Store on an embedded single-file
// SQLite database via modernc.org/sqlite. Writes are serialized by the
// engine; no additional locking is needed.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/tokenagents/character-registry/internal/model"
	"github.com/tokenagents/character-registry/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS characters (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    token_id INTEGER,
    name TEXT NOT NULL,
    character_data TEXT,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

type sqliteStore struct {
	db *sql.DB
}

// New opens (or creates) the database file and applies the schema.
// A schema failure makes the store unusable; callers should treat the
// error as fatal.
func New(path string) (store.Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	s, err := NewWithDB(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewWithDB wires the store onto an existing connection (used by the
// factory and by tests running in-memory).
func NewWithDB(db *sql.DB) (store.Store, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create characters table: %w", err)
	}
	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) Characters() store.Characters { return &characters{db: s.db} }

func (s *sqliteStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

type characters struct {
	db *sql.DB
}

func (c *characters) Create(ctx context.Context, tokenID int64, name string, data model.CharacterData) (*model.Character, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal character_data: %w", err)
	}
	now := time.Now().UTC()
	res, err := c.db.ExecContext(ctx,
		`INSERT INTO characters (token_id, name, character_data, created_at, updated_at) VALUES (?,?,?,?,?)`,
		tokenID, name, string(raw), now, now)
	if err != nil {
		return nil, fmt.Errorf("insert character: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &model.Character{
		ID:        id,
		TokenID:   tokenID,
		Name:      name,
		Data:      data,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (c *characters) GetByTokenID(ctx context.Context, tokenID int64) (*model.Character, error) {
	row := c.db.QueryRowContext(ctx,
		`SELECT id, token_id, name, character_data, created_at, updated_at
         FROM characters WHERE token_id = ? ORDER BY id LIMIT 1`, tokenID)
	return scanCharacter(row)
}

func (c *characters) UpdateData(ctx context.Context, tokenID int64, data model.CharacterData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal character_data: %w", err)
	}
	// Affected-row count is deliberately ignored: updating a missing
	// tokenID is a defined no-op (see store.Characters).
	_, err = c.db.ExecContext(ctx,
		`UPDATE characters SET character_data = ?, updated_at = ? WHERE token_id = ?`,
		string(raw), time.Now().UTC(), tokenID)
	if err != nil {
		return fmt.Errorf("update character: %w", err)
	}
	return nil
}

func (c *characters) Delete(ctx context.Context, tokenID int64) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM characters WHERE token_id = ?`, tokenID); err != nil {
		return fmt.Errorf("delete character: %w", err)
	}
	return nil
}

func (c *characters) ListSummaries(ctx context.Context) ([]model.CharacterSummary, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT name, token_id FROM characters ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list characters: %w", err)
	}
	defer rows.Close()

	out := []model.CharacterSummary{}
	for rows.Next() {
		var s model.CharacterSummary
		if err := rows.Scan(&s.Name, &s.TokenID); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCharacter(row rowScanner) (*model.Character, error) {
	var m model.Character
	var raw string
	if err := row.Scan(&m.ID, &m.TokenID, &m.Name, &raw, &m.CreatedAt, &m.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	// character_data is always valid JSON at rest; a parse failure here
	// means the row is corrupt.
	if err := json.Unmarshal([]byte(raw), &m.Data); err != nil {
		return nil, fmt.Errorf("character_data corrupt for token %d: %w", m.TokenID, err)
	}
	return &m, nil
}
