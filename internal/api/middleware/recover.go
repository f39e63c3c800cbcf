package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"github.com/rehearse-io/rehearse-server/internal/api/response"
	"github.com/rehearse-io/rehearse-server/internal/config"
)

// Recover is the catch-all responder for faults no handler mapped. The stack
// trace is echoed to the client only outside production deployments.
func Recover(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					stack := debug.Stack()
					log.Printf("ERROR [middleware.Recover] panic: %v\n%s", rec, stack)
					if cfg.IsProduction() {
						response.Err(w, http.StatusInternalServerError, "Internal Server Error")
						return
					}
					response.ErrWithDetail(w, http.StatusInternalServerError, "Internal Server Error", string(stack))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
