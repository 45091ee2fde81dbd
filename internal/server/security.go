package server

import (
	"net/http"
	"strings"
)

// SecurityConfig controls the security middleware.
type SecurityConfig struct {
	// EnableCORS turns on CORS headers for allowed origins.
	EnableCORS bool
	// AllowedOrigins lists origins allowed by CORS; "*" allows any.
	AllowedOrigins []string
	// AllowedMethods lists the methods advertised in CORS responses.
	AllowedMethods []string
	// MaxWriteLen caps the buffer the server allocates for a write. Longer
	// requests still reach the device with the requested length, which
	// then rejects the undersized buffer as a fault.
	MaxWriteLen int
}

// DefaultSecurityConfig returns the configuration used by New when none is
// given.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		MaxWriteLen:    1 << 16,
	}
}

// SecurityMiddleware sets defensive response headers and CORS headers, and
// answers preflight requests itself.
func SecurityMiddleware(config SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "1; mode=block")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		if config.EnableCORS {
			if origin, ok := allowedOrigin(config.AllowedOrigins, r.Header.Get("Origin")); ok {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
				h.Set("Access-Control-Allow-Headers", "Content-Type")
				h.Set("Access-Control-Max-Age", "86400")
			}
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next(w, r)
	}
}

// allowedOrigin returns the Access-Control-Allow-Origin value for origin.
func allowedOrigin(allowed []string, origin string) (string, bool) {
	for _, a := range allowed {
		if a == "*" {
			return "*", true
		}
		if origin != "" && a == origin {
			return origin, true
		}
	}
	return "", false
}
