// Package postgres implements store.Store on PostgreSQL via the pgx
// stdlib driver, for deployments that outgrow the embedded file store.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/tokenagents/character-registry/internal/model"
	"github.com/tokenagents/character-registry/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS characters (
    id BIGSERIAL PRIMARY KEY,
    token_id BIGINT,
    name TEXT NOT NULL,
    character_data TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Open opens a PostgreSQL connection and verifies connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewWithDB applies the schema and wires the store onto an existing
// connection. A schema failure is fatal for the caller.
func NewWithDB(db *sql.DB) (store.Store, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create characters table: %w", err)
	}
	return &pgStore{db: db}, nil
}

type pgStore struct {
	db *sql.DB
}

func (s *pgStore) Characters() store.Characters { return &characters{db: s.db} }

func (s *pgStore) HealthPing(ctx context.Context) error {
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
	out := &model.Character{TokenID: tokenID, Name: name, Data: data}
	row := c.db.QueryRowContext(ctx, `
        INSERT INTO characters (token_id, name, character_data)
        VALUES ($1,$2,$3)
        RETURNING id, created_at, updated_at
    `, tokenID, name, string(raw))
	if err := row.Scan(&out.ID, &out.CreatedAt, &out.UpdatedAt); err != nil {
		return nil, fmt.Errorf("insert character: %w", err)
	}
	return out, nil
}

func (c *characters) GetByTokenID(ctx context.Context, tokenID int64) (*model.Character, error) {
	var m model.Character
	var raw string
	row := c.db.QueryRowContext(ctx, `
        SELECT id, token_id, name, character_data, created_at, updated_at
        FROM characters WHERE token_id = $1 ORDER BY id LIMIT 1
    `, tokenID)
	if err := row.Scan(&m.ID, &m.TokenID, &m.Name, &raw, &m.CreatedAt, &m.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal([]byte(raw), &m.Data); err != nil {
		return nil, fmt.Errorf("character_data corrupt for token %d: %w", m.TokenID, err)
	}
	return &m, nil
}

func (c *characters) UpdateData(ctx context.Context, tokenID int64, data model.CharacterData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal character_data: %w", err)
	}
	// Missing rows are a defined no-op; the affected count is ignored.
	_, err = c.db.ExecContext(ctx, `
        UPDATE characters SET character_data = $1, updated_at = now() WHERE token_id = $2
    `, string(raw), tokenID)
	if err != nil {
		return fmt.Errorf("update character: %w", err)
	}
	return nil
}

func (c *characters) Delete(ctx context.Context, tokenID int64) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM characters WHERE token_id = $1`, tokenID); err != nil {
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
