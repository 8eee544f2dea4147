package auth

import (
	"net/http"
	"strings"

	dErrors "bima/pkg/domain-errors"
	"bima/pkg/platform/httputil"
	"bima/pkg/requestcontext"
)

// RequireAuth rejects requests without a valid Bearer token and injects the
// authenticated user ID into the request context.
func RequireAuth(tokens *JWTService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
				return
			}

			claims, err := tokens.ValidateToken(token)
			if err != nil {
				httputil.WriteError(w, err)
				return
			}

			ctx := requestcontext.WithUserID(r.Context(), claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
