package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/phrazzld/mensagens-api/internal/api/shared"
	"github.com/phrazzld/mensagens-api/internal/platform/logger"
)

// Recoverer turns a panic in a downstream handler into a 500 response with
// the standard error body. The panic value and stack are logged, never sent.
// http.ErrAbortHandler is re-raised so net/http can abort the connection.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			if rvr == http.ErrAbortHandler { //nolint:errorlint
				panic(rvr)
			}

			logger.FromContext(r.Context()).Error("panic recovered",
				slog.String("panic", fmt.Sprint(rvr)),
				slog.String("stack", string(debug.Stack())))

			if r.Header.Get("Connection") != "Upgrade" {
				shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, shared.MsgInternalError,
					fmt.Errorf("panic: %v", rvr))
			}
		}()

		next.ServeHTTP(w, r)
	})
}
