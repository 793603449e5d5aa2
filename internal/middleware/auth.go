package middleware

import (
	"net/http"

	"bookstore-be/internal/apperror"
	"bookstore-be/internal/auth"
	"bookstore-be/internal/logger"
	"bookstore-be/internal/transport"
	"bookstore-be/internal/utils"
)

var (
	ErrNotAuthenticated = apperror.Unauthorized("authentication credentials were not provided")
	ErrInvalidToken     = apperror.Unauthorized("token is invalid or expired")
	ErrPermissionDenied = apperror.Forbidden("you do not have permission to perform this action")
)

type TokenParser interface {
	Parse(tokenStr string, expected auth.TokenType) (*auth.CustomClaims, error)
}

// AuthMiddleware attaches the caller to the request context when an access
// token is present. Requests without a token pass through anonymously; a
// token that fails verification is rejected with 401.
func AuthMiddleware(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := auth.ExtractAccessToken(r)
			if tokenStr == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := tokens.Parse(tokenStr, auth.AccessToken)
			if err != nil {
				transport.WriteError(w, r, ErrInvalidToken)
				return
			}

			ctx := utils.SetUserContext(r.Context(), claims.UserID, claims.Email, claims.Role)
			ctx = logger.WithUserID(ctx, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects anonymous requests.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.GetUserIDFromContext(r.Context()); !ok {
			transport.WriteError(w, r, ErrNotAuthenticated)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole rejects callers whose role is not listed.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := utils.GetUserRoleFromContext(r.Context())
			for _, allowed := range roles {
				if role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}
			transport.WriteError(w, r, ErrPermissionDenied)
		}))
	}
}
