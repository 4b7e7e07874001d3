package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/tokenagents/character-registry/internal/api/respond"
	"github.com/tokenagents/character-registry/internal/model"
	"github.com/tokenagents/character-registry/internal/services"
)

// CharacterHandler provides HTTP transport for character operations.
type CharacterHandler struct {
	svc *services.CharacterService
}

func NewCharacterHandler(svc *services.CharacterService) *CharacterHandler {
	return &CharacterHandler{svc: svc}
}

// Hello GET /
func (h *CharacterHandler) Hello(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]string{"hello": "world"})
}

// CreateCharacter POST /character
func (h *CharacterHandler) CreateCharacter(w http.ResponseWriter, r *http.Request) {
	var in struct {
		TokenID *int64              `json:"tokenId"`
		Name    string              `json:"name"`
		Data    model.CharacterData `json:"character_data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteFailure(w, http.StatusBadRequest, "Error adding character to database", err)
		return
	}
	if in.TokenID == nil {
		respond.WriteFailure(w, http.StatusBadRequest, "Error adding character to database",
			errors.New("tokenId is required"))
		return
	}

	created, err := h.svc.CreateCharacter(r.Context(), *in.TokenID, in.Name, in.Data)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, model.ErrValidation) {
			status = http.StatusBadRequest
		}
		zerolog.Ctx(r.Context()).Error().Err(err).Int64("token_id", *in.TokenID).Msg("create character failed")
		respond.WriteFailure(w, status, "Error adding character to database", err)
		return
	}
	respond.WriteSuccess(w, "Character added to database", map[string]interface{}{
		"tokenId": created.TokenID,
		"name":    created.Name,
	})
}

// GetCharacter GET /character/{tokenId}
func (h *CharacterHandler) GetCharacter(w http.ResponseWriter, r *http.Request) {
	tokenID, ok := tokenIDVar(w, r)
	if !ok {
		return
	}
	c, err := h.svc.GetCharacter(r.Context(), tokenID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			respond.WriteFailure(w, http.StatusNotFound, "Character not found", err)
			return
		}
		zerolog.Ctx(r.Context()).Error().Err(err).Int64("token_id", tokenID).Msg("get character failed")
		respond.WriteFailure(w, http.StatusInternalServerError, "Error reading character", err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"character": c.Data})
}

// DeleteCharacter DELETE /character/{tokenId}
func (h *CharacterHandler) DeleteCharacter(w http.ResponseWriter, r *http.Request) {
	tokenID, ok := tokenIDVar(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteCharacter(r.Context(), tokenID); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Int64("token_id", tokenID).Msg("delete character failed")
		respond.WriteFailure(w, http.StatusInternalServerError, "Error deleting character", err)
		return
	}
	respond.WriteSuccess(w, "Character deleted", nil)
}

// InitCharacters GET /init-characters
func (h *CharacterHandler) InitCharacters(w http.ResponseWriter, r *http.Request) {
	if _, err := h.svc.InitCharacters(r.Context()); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("init characters failed")
		respond.WriteFailure(w, http.StatusInternalServerError, "Error initializing characters", err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]string{"message": "Characters initialized"})
}

// FetchCharacters GET /fetch-characters
func (h *CharacterHandler) FetchCharacters(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.svc.ListSummaries(r.Context())
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("fetch characters failed")
		respond.WriteFailure(w, http.StatusInternalServerError, "Error fetching characters", err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"characterNames": summaries})
}

// UpdateCharacterSettings POST /update-character-settings
func (h *CharacterHandler) UpdateCharacterSettings(w http.ResponseWriter, r *http.Request) {
	var in struct {
		TokenID          *int64 `json:"tokenId"`
		NewCharacterData struct {
			Settings map[string]interface{} `json:"settings"`
		} `json:"new_character_data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteFailure(w, http.StatusBadRequest, "Error updating character", err)
		return
	}
	if in.TokenID == nil {
		respond.WriteFailure(w, http.StatusBadRequest, "Error updating character",
			errors.New("tokenId is required"))
		return
	}

	err := h.svc.UpdateSettings(r.Context(), *in.TokenID, in.NewCharacterData.Settings)
	switch {
	case errors.Is(err, model.ErrNotFound):
		// Not-found is a business result here, not an HTTP error.
		respond.WriteJSON(w, http.StatusOK, map[string]string{"message": "Character not found"})
	case err != nil:
		zerolog.Ctx(r.Context()).Error().Err(err).Int64("token_id", *in.TokenID).Msg("update settings failed")
		respond.WriteFailure(w, http.StatusInternalServerError, "Error updating character", err)
	default:
		respond.WriteJSON(w, http.StatusOK, map[string]string{"message": "Character updated"})
	}
}

func tokenIDVar(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := mux.Vars(r)["tokenId"]
	tokenID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		respond.WriteFailure(w, http.StatusBadRequest, "Invalid tokenId", err)
		return 0, false
	}
	return tokenID, true
}
