package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestCLI_AddListUpdateDelete(t *testing.T) {
	// Stub registry
	mux := http.NewServeMux()
	mux.HandleFunc("/character", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"message": "Character added to database",
			"data":    map[string]interface{}{"tokenId": 42, "name": "Ada"},
		})
	})
	mux.HandleFunc("/fetch-characters", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"characterNames": []map[string]interface{}{{"name": "Ada", "token_id": 42}},
		})
	})
	mux.HandleFunc("/update-character-settings", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Character updated"})
	})
	mux.HandleFunc("/character/42", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"character": map[string]interface{}{"name": "Ada"}})
		case http.MethodDelete:
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "message": "Character deleted"})
		}
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()
	t.Setenv("CHARACTER_REGISTRY_URL", srv.URL)

	docPath := filepath.Join(t.TempDir(), "ada.json")
	if err := os.WriteFile(docPath, []byte(`{"clients":[],"settings":{}}`), 0o644); err != nil {
		t.Fatalf("write doc: %v", err)
	}
	settingsPath := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(settingsPath, []byte(`{"discord":{"token":"x"}}`), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}

	run := func(args ...string) {
		t.Helper()
		root := NewRootCmd()
		root.SetArgs(args)
		if err := root.Execute(); err != nil {
			t.Fatalf("command %v failed: %v", args, err)
		}
	}

	run("add", "--token-id", "42", "--name", "Ada", "--file", docPath)
	run("get", "--token-id", "42")
	run("list")
	run("update-settings", "--token-id", "42", "--file", settingsPath)
	run("delete", "--token-id", "42")
}

func TestCLI_GetMissingCharacterFails(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/character/999", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Character not found"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()
	t.Setenv("CHARACTER_REGISTRY_URL", srv.URL)

	root := NewRootCmd()
	root.SetArgs([]string{"get", "--token-id", "999"})
	if err := root.Execute(); err == nil {
		t.Fatalf("expected error for missing character")
	}
}
