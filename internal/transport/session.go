package transport

import (
	"net/http"
	"time"

	"bookstore-be/internal/logger"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"go.uber.org/zap"
)

const (
	GuestSessionCookie = "sessionid"
	guestSessionMaxAge = 14 * 24 * time.Hour
)

// GuestSessions issues and reads the signed cookie that keys a guest cart.
// Only keys minted by the server decode; a cookie holding a bare or
// re-signed value is treated as no session.
type GuestSessions struct {
	codec *securecookie.SecureCookie
}

// NewGuestSessions signs cookies with secret. An empty secret gets a random
// key, which invalidates guest sessions on restart.
func NewGuestSessions(secret string) *GuestSessions {
	hashKey := []byte(secret)
	if len(hashKey) == 0 {
		hashKey = securecookie.GenerateRandomKey(32)
	}
	codec := securecookie.New(hashKey, nil)
	codec.MaxAge(int(guestSessionMaxAge.Seconds()))
	return &GuestSessions{codec: codec}
}

// Key returns the guest session key carried by the request, or "" when the
// client has none or the cookie fails verification.
func (g *GuestSessions) Key(r *http.Request) string {
	c, err := r.Cookie(GuestSessionCookie)
	if err != nil {
		return ""
	}
	var key string
	if err := g.codec.Decode(GuestSessionCookie, c.Value, &key); err != nil {
		return ""
	}
	if _, err := uuid.Parse(key); err != nil {
		return ""
	}
	return key
}

// Cookie builds the signed HTTP-only cookie for key.
func (g *GuestSessions) Cookie(key string) (*http.Cookie, error) {
	value, err := g.codec.Encode(GuestSessionCookie, key)
	if err != nil {
		return nil, err
	}
	return &http.Cookie{
		Name:     GuestSessionCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   int(guestSessionMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

// Ensure returns the existing guest session key or mints a new one and sets
// its cookie.
func (g *GuestSessions) Ensure(w http.ResponseWriter, r *http.Request) string {
	if key := g.Key(r); key != "" {
		return key
	}

	key := uuid.NewString()
	c, err := g.Cookie(key)
	if err != nil {
		logger.FromCtx(r.Context()).Error("failed to sign guest session cookie", zap.Error(err))
		return key
	}
	http.SetCookie(w, c)
	return key
}
