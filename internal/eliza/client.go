// Package eliza is the HTTP client for the external orchestration
// server that boots agent runtimes from character summaries.
package eliza

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/tokenagents/character-registry/internal/model"
)

// requestTimeout bounds the relay call. The upstream contract has no
// timeout of its own; an unbounded call would tie up the handler.
const requestTimeout = 10 * time.Second

// Client talks to the Eliza orchestration server.
type Client struct {
	http *resty.Client
}

// New creates a client for the given base URL, e.g. "http://eliza:3001".
func New(baseURL string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(requestTimeout),
	}
}

// InitCharacters posts the full summary list to /init-characters so the
// orchestration server can initialize every character. Failures are
// reported as model.ErrUpstream.
func (c *Client) InitCharacters(ctx context.Context, summaries []model.CharacterSummary) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(summaries).
		Post("/init-characters")
	if err != nil {
		return fmt.Errorf("%w: init-characters: %v", model.ErrUpstream, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: init-characters: eliza server returned %s", model.ErrUpstream, resp.Status())
	}
	return nil
}
