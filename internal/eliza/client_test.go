package eliza

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokenagents/character-registry/internal/model"
)

func TestInitCharactersPostsSummaryList(t *testing.T) {
	var gotPath string
	var gotBody []model.CharacterSummary
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(b, &gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL)
	err := c.InitCharacters(context.Background(), []model.CharacterSummary{
		{Name: "A", TokenID: 1},
		{Name: "B", TokenID: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, "/init-characters", gotPath)
	require.Len(t, gotBody, 2)
	assert.Equal(t, int64(1), gotBody[0].TokenID)
	assert.Equal(t, "B", gotBody[1].Name)
}

func TestInitCharactersSurfacesUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := New(srv.URL).InitCharacters(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrUpstream))
}

func TestInitCharactersConnectFailureIsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	err := New(srv.URL).InitCharacters(context.Background(), nil)
	assert.True(t, errors.Is(err, model.ErrUpstream))
}
