// Package storetest exercises a compliance suite against any
// store.Store implementation. Drivers call Run from their own tests
// with a clean, isolated store.
package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/tokenagents/character-registry/internal/model"
	"github.com/tokenagents/character-registry/internal/store"
)

func sampleData(bio string) model.CharacterData {
	return model.CharacterData{
		"clients": []interface{}{},
		"settings": map[string]interface{}{
			"voice": map[string]interface{}{"model": "en_US-hfc_female-medium"},
		},
		"bio": []interface{}{bio},
	}
}

// Run exercises the character store contract.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()
	chars := s.Characters()

	t.Run("RoundTrip", func(t *testing.T) {
		in := sampleData("round trip")
		created, err := chars.Create(ctx, 42, "Ada", in)
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if created.ID == 0 {
			t.Fatalf("Create: id not assigned")
		}

		got, err := chars.GetByTokenID(ctx, 42)
		if err != nil {
			t.Fatalf("GetByTokenID: %v", err)
		}
		if got.Name != "Ada" || got.TokenID != 42 {
			t.Fatalf("unexpected record: %+v", got)
		}
		bio, _ := got.Data["bio"].([]interface{})
		if len(bio) != 1 || bio[0] != "round trip" {
			t.Fatalf("character_data did not round-trip: %+v", got.Data)
		}
	})

	t.Run("GetMissingIsNotFound", func(t *testing.T) {
		_, err := chars.GetByTokenID(ctx, 999)
		if !errors.Is(err, model.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("UpdateReplacesDataWholesale", func(t *testing.T) {
		if _, err := chars.Create(ctx, 7, "Grace", sampleData("v1")); err != nil {
			t.Fatalf("Create: %v", err)
		}
		if err := chars.UpdateData(ctx, 7, model.CharacterData{"bio": []interface{}{"v2"}}); err != nil {
			t.Fatalf("UpdateData: %v", err)
		}
		got, err := chars.GetByTokenID(ctx, 7)
		if err != nil {
			t.Fatalf("GetByTokenID: %v", err)
		}
		if _, still := got.Data["settings"]; still {
			t.Fatalf("update was not wholesale: %+v", got.Data)
		}
		if got.UpdatedAt.Before(got.CreatedAt) {
			t.Fatalf("updated_at not bumped: created=%v updated=%v", got.CreatedAt, got.UpdatedAt)
		}
	})

	t.Run("UpdateMissingIsSilentNoop", func(t *testing.T) {
		if err := chars.UpdateData(ctx, 555, sampleData("ghost")); err != nil {
			t.Fatalf("UpdateData on missing row: %v", err)
		}
		if _, err := chars.GetByTokenID(ctx, 555); !errors.Is(err, model.ErrNotFound) {
			t.Fatalf("update must not create a row, got %v", err)
		}
	})

	t.Run("DeleteIsIdempotent", func(t *testing.T) {
		if _, err := chars.Create(ctx, 13, "Alan", sampleData("x")); err != nil {
			t.Fatalf("Create: %v", err)
		}
		if err := chars.Delete(ctx, 13); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if err := chars.Delete(ctx, 13); err != nil {
			t.Fatalf("Delete (second): %v", err)
		}
		if _, err := chars.GetByTokenID(ctx, 13); !errors.Is(err, model.ErrNotFound) {
			t.Fatalf("record survived delete: %v", err)
		}
	})

	t.Run("ListSummaries", func(t *testing.T) {
		fresh := makeStore(t).Characters()
		for i, name := range []string{"A", "B", "C"} {
			if _, err := fresh.Create(ctx, int64(i+1), name, sampleData(name)); err != nil {
				t.Fatalf("Create %s: %v", name, err)
			}
		}
		got, err := fresh.ListSummaries(ctx)
		if err != nil {
			t.Fatalf("ListSummaries: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("expected 3 summaries, got %d", len(got))
		}
		seen := map[int64]string{}
		for _, s := range got {
			if prev, dup := seen[s.TokenID]; dup {
				t.Fatalf("duplicate summary for token %d (%s, %s)", s.TokenID, prev, s.Name)
			}
			seen[s.TokenID] = s.Name
		}
		for i, name := range []string{"A", "B", "C"} {
			if seen[int64(i+1)] != name {
				t.Fatalf("missing summary {%s, %d}: %+v", name, i+1, got)
			}
		}
	})

	t.Run("DuplicateTokenIDsReturnLowestID", func(t *testing.T) {
		fresh := makeStore(t).Characters()
		if _, err := fresh.Create(ctx, 21, "First", sampleData("first")); err != nil {
			t.Fatalf("Create: %v", err)
		}
		if _, err := fresh.Create(ctx, 21, "Second", sampleData("second")); err != nil {
			t.Fatalf("Create: %v", err)
		}
		got, err := fresh.GetByTokenID(ctx, 21)
		if err != nil {
			t.Fatalf("GetByTokenID: %v", err)
		}
		if got.Name != "First" {
			t.Fatalf("expected first-inserted match, got %q", got.Name)
		}
	})
}
