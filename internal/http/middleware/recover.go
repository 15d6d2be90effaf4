package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/preston-bernstein/ops-console-service/internal/logging"
)

// Recover turns a handler panic into a 500 JSON error and logs the stack.
// http.ErrAbortHandler is re-raised so net/http can drop the connection.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			logger := logging.FromContext(r.Context(), nil)
			logging.Error(logger, "handler panic", fmt.Errorf("%v", v), "stack", string(debug.Stack()))

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"internal server error","code":"internal"}`))
		}()
		next.ServeHTTP(w, r)
	})
}
