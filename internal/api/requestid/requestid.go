// Package requestid tags each request with an id for log correlation.
package requestid

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const header = "X-Request-Id"

// Middleware assigns a request id when the caller did not send one,
// echoes it in the response and attaches a logger carrying it to the
// request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(header)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(header, id)

		l := log.With().Str("request_id", id).Logger()
		next.ServeHTTP(w, r.WithContext(l.WithContext(r.Context())))
	})
}
