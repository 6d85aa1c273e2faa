package middleware

import (
	"io"
	"net/http"
)

// handlers that never touch the body should not force us to read
// arbitrarily much of it before closing
const drainLimitBytes = 1 << 20

// DrainAndCloseRequest makes sure the request body gets fully read and
// closed after the handler runs, so the underlying connection can be
// reused.
func DrainAndCloseRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
			if r.Body == nil {
				return
			}
			_, _ = io.Copy(io.Discard, io.LimitReader(r.Body, drainLimitBytes))
			_ = r.Body.Close()
		})
	}
}
