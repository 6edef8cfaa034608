package middleware

import (
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	ctxutil "github.com/wanderdata/wanderdata/core/shared/context"
)

// RequestID copies the id assigned by chi's RequestID middleware into the
// request context under the shared key and echoes it in the response
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chimiddleware.GetReqID(r.Context())
		if id == "" {
			id = ctxutil.GenerateRequestID()
		}
		w.Header().Set(ctxutil.RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(ctxutil.WithRequestID(r.Context(), id)))
	})
}
