// Package i18n renders user-facing messages in the language negotiated from
// the Accept-Language header. Polish is the default; English falls back to
// the message keys themselves.
package i18n

import (
	"context"
	"net/http"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var supported = []language.Tag{language.Polish, language.English}

var matcher = language.NewMatcher(supported)

type ctxKey struct{}

func init() {
	for key, msg := range polish {
		if err := message.SetString(language.Polish, key, msg); err != nil {
			panic(err)
		}
	}
}

// Match picks the best supported language for an Accept-Language value.
func Match(acceptLanguage string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return supported[0]
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return supported[0]
	}
	return supported[idx]
}

func WithLanguage(ctx context.Context, tag language.Tag) context.Context {
	return context.WithValue(ctx, ctxKey{}, tag)
}

func LanguageFrom(ctx context.Context) language.Tag {
	if tag, ok := ctx.Value(ctxKey{}).(language.Tag); ok {
		return tag
	}
	return supported[0]
}

// T translates key for the language stored in ctx.
func T(ctx context.Context, key string, args ...any) string {
	return message.NewPrinter(LanguageFrom(ctx)).Sprintf(key, args...)
}

// Middleware stores the negotiated language in the request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tag := Match(r.Header.Get("Accept-Language"))
		w.Header().Set("Content-Language", tag.String())
		next.ServeHTTP(w, r.WithContext(WithLanguage(r.Context(), tag)))
	})
}
