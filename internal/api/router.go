package api

import (
	"github.com/gorilla/mux"

	"github.com/tokenagents/character-registry/internal/api/recovery"
	"github.com/tokenagents/character-registry/internal/api/requestid"
	"github.com/tokenagents/character-registry/internal/services"
	"github.com/tokenagents/character-registry/internal/store"
)

// NewRouter creates the HTTP router with all registry routes.
func NewRouter(svc *services.CharacterService, st store.Store) *mux.Router {
	router := mux.NewRouter()

	router.Use(recovery.Middleware)
	router.Use(requestid.Middleware)

	characterHandler := NewCharacterHandler(svc)
	healthHandler := NewHealthHandler(st)

	router.HandleFunc("/", characterHandler.Hello).Methods("GET")

	router.HandleFunc("/character", characterHandler.CreateCharacter).Methods("POST")
	router.HandleFunc("/character/{tokenId}", characterHandler.GetCharacter).Methods("GET")
	router.HandleFunc("/character/{tokenId}", characterHandler.DeleteCharacter).Methods("DELETE")

	router.HandleFunc("/init-characters", characterHandler.InitCharacters).Methods("GET")
	router.HandleFunc("/fetch-characters", characterHandler.FetchCharacters).Methods("GET")
	router.HandleFunc("/update-character-settings", characterHandler.UpdateCharacterSettings).Methods("POST")

	router.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")

	return router
}
