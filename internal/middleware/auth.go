package middleware

import (
	"net/http"

	"myshop-be/internal/auth"
	"myshop-be/internal/logger"
	"myshop-be/internal/utils"

	"go.uber.org/zap"
)

// AuthMiddleware is passive: anonymous requests pass through untouched,
// a presented token that fails verification is rejected.
func AuthMiddleware(issuer *auth.Issuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := auth.ExtractAccessToken(r)
			if tokenStr == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := issuer.Parse(tokenStr)
			if err != nil {
				logger.FromCtx(r.Context()).Debug("rejecting access token", zap.Error(err))
				auth.ClearAccessTokenCookie(w)
				utils.WriteJSONError(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := utils.SetUserContext(r.Context(), claims.UserID, claims.Email, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
