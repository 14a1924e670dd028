package middlewares

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/jcmexdev/restaurant-orders/internal/pkg/requestctx"
)

// AttachRequestMetadata copies the chi request id and the client's
// idempotency key into the request context. It must run after
// middleware.RequestID.
func AttachRequestMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := middleware.GetReqID(r.Context())
		idempotencyKey := r.Header.Get(requestctx.HeaderXIdempotencyKey)

		ctx := requestctx.WithRequestID(r.Context(), requestID)
		ctx = requestctx.WithIdempotencyKey(ctx, idempotencyKey)

		if requestID != "" {
			w.Header().Set(requestctx.HeaderXRequestId, requestID)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
