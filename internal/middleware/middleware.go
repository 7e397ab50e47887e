package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"
)

var allowed = map[string]struct{}{
	"http://localhost:5173":           {},
	"http://localhost:5174":           {},
	"https://jandarpan.github.io":     {},
	"https://dashboard.jandarpan.in":  {},
	"https://jd-backend.onrender.com": {},
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		// Echo the origin back only if it’s on our allow-list
		if _, ok := allowed[origin]; ok {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin") // important for caches
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods",
				"GET, POST, PUT, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers",
				"Content-Type, Authorization, X-Admin-Key")
		}

		w.Header().Set("Access-Control-Expose-Headers", "Retry-After, Cache-Control")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ClientIP extracts the originating client address, honoring X-Forwarded-For
// set by the fronting proxy.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware enforces a per-client hourly request budget. Idle
// limiters are dropped after an hour so the map does not grow unbounded.
func RateLimitMiddleware(perHour int) func(http.Handler) http.Handler {
	var (
		mu       sync.Mutex
		limiters = make(map[string]*clientLimiter)
	)

	burst := perHour / 10
	if burst < 5 {
		burst = 5
	}

	getLimiter := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()

		now := time.Now()
		if cl, ok := limiters[ip]; ok {
			cl.lastSeen = now
			return cl.limiter
		}
		for key, cl := range limiters {
			if now.Sub(cl.lastSeen) > time.Hour {
				delete(limiters, key)
			}
		}
		cl := &clientLimiter{
			limiter:  rate.NewLimiter(rate.Every(time.Hour/time.Duration(perHour)), burst),
			lastSeen: now,
		}
		limiters[ip] = cl
		return cl.limiter
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if perHour <= 0 {
				next.ServeHTTP(w, r)
				return
			}
			if !getLimiter(ClientIP(r)).Allow() {
				w.Header().Set("Retry-After", "60")
				http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AdminKeyMiddleware guards write endpoints. Requests must carry an X-Admin-Key
// header matching the configured bcrypt hash. An empty hash disables the
// endpoints entirely.
func AdminKeyMiddleware(keyHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if keyHash == "" {
				http.Error(w, "Admin endpoints are disabled", http.StatusServiceUnavailable)
				return
			}

			key := r.Header.Get("X-Admin-Key")
			if key == "" {
				http.Error(w, "Missing admin key", http.StatusUnauthorized)
				return
			}

			if err := bcrypt.CompareHashAndPassword([]byte(keyHash), []byte(key)); err != nil {
				http.Error(w, "Invalid admin key", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
