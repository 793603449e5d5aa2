package auth

import (
	"net/http"
	"strings"
)

const AccessCookieName = "access_token"

// ExtractAccessToken reads the access token from the access_token cookie,
// falling back to an "Authorization: Bearer" header.
func ExtractAccessToken(r *http.Request) string {
	if cookie, err := r.Cookie(AccessCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
