package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"bookstore-be/internal/utils"

	"golang.org/x/time/rate"
)

// Rate Limit Tiers
const (
	// login, password reset, payment webhook
	limitStrict = rate.Limit(2)
	burstStrict = 5

	// checkout and payment session creation
	limitCheckout = rate.Limit(1)
	burstCheckout = 3

	limitGeneral = rate.Limit(10)
	burstGeneral = 20
)

var strictPaths = []string{
	"/api/auth/login/",
	"/api/auth/register/",
	"/api/auth/vendor/register/",
	"/api/auth/forgot-password/",
	"/api/auth/reset-password/",
	"/api/payments/webhook/",
}

var checkoutPaths = []string{
	"/api/orders/create/",
	"/api/checkout/guest/",
	"/api/payments/create-checkout-session/",
}

// visitor holds the rate limiter and the last time it was seen.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	ttl      time.Duration
}

// NewRateLimiter starts a limiter whose idle entries are swept every minute
// until ctx is done.
func NewRateLimiter(ctx context.Context) *RateLimiter {
	l := &RateLimiter{visitors: make(map[string]*visitor), ttl: 3 * time.Minute}
	go l.cleanupVisitors(ctx, time.Minute)
	return l
}

func (l *RateLimiter) getVisitor(key string, r rate.Limit, b int) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, exists := l.visitors[key]
	if !exists {
		limiter := rate.NewLimiter(r, b)
		l.visitors[key] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

func (l *RateLimiter) cleanupVisitors(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.sweep(time.Now())
		}
	}
}

func (l *RateLimiter) sweep(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) > l.ttl {
			delete(l.visitors, key)
		}
	}
}

// Middleware rejects requests over the tier quota with 429.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit, burst, tier := resolveRateTier(r)

		var identity string
		if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
			identity = fmt.Sprintf("user:%d", userID)
		} else {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			identity = "ip:" + ip
		}

		// separate quotas per tier, e.g. "user:1:strict"
		key := fmt.Sprintf("%s:%s", identity, tier)

		if !l.getVisitor(key, limit, burst).Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func resolveRateTier(r *http.Request) (rate.Limit, int, string) {
	if r.Method == http.MethodPost {
		if hasPath(strictPaths, r.URL.Path) {
			return limitStrict, burstStrict, "strict"
		}
		if hasPath(checkoutPaths, r.URL.Path) {
			return limitCheckout, burstCheckout, "checkout"
		}
	}
	return limitGeneral, burstGeneral, "general"
}

func hasPath(paths []string, p string) bool {
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	for _, candidate := range paths {
		if p == candidate {
			return true
		}
	}
	return false
}
