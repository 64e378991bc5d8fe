package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/openshop-kr/journey-api/internal/auth"
	"github.com/openshop-kr/journey-api/internal/config"
	"github.com/openshop-kr/journey-api/internal/domain"
	"go.uber.org/zap"
)

// RateLimiter throttles API traffic. General requests share one bucket per
// caller; image uploads get a tighter bucket per caller and project.
type RateLimiter struct {
	cfg            *config.RateLimitConfig
	logger         *zap.Logger
	general        func(http.Handler) http.Handler
	uploads        func(http.Handler) http.Handler
	whitelistIPs   map[string]bool
	whitelistPaths map[string]bool
}

func NewRateLimiter(cfg *config.RateLimitConfig, logger *zap.Logger) *RateLimiter {
	rl := &RateLimiter{
		cfg:            cfg,
		logger:         logger,
		whitelistIPs:   make(map[string]bool),
		whitelistPaths: make(map[string]bool),
	}

	for _, ip := range cfg.WhitelistIPs {
		rl.whitelistIPs[ip] = true
	}
	for _, path := range cfg.WhitelistPaths {
		rl.whitelistPaths[path] = true
	}

	rl.general = httprate.Limit(
		cfg.RequestsPerMinute,
		time.Minute,
		httprate.WithKeyFuncs(rl.callerKey),
		httprate.WithLimitHandler(rl.reject("general")),
	)

	uploadsPerMinute := cfg.UploadsPerMinute
	if uploadsPerMinute <= 0 {
		uploadsPerMinute = cfg.RequestsPerMinute
	}
	rl.uploads = httprate.Limit(
		uploadsPerMinute,
		time.Minute,
		httprate.WithKeyFuncs(rl.callerKey, projectKey),
		httprate.WithLimitHandler(rl.reject("uploads")),
	)

	logger.Info("Rate limiter initialized",
		zap.Bool("enabled", cfg.Enabled),
		zap.Int("requests_per_minute", cfg.RequestsPerMinute),
		zap.Int("uploads_per_minute", uploadsPerMinute),
		zap.Strings("whitelist_paths", cfg.WhitelistPaths),
	)

	return rl
}

// Limit applies the general bucket. Authenticated requests are keyed per
// user, anonymous ones per client IP.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return rl.wrap(rl.general, next)
}

// Uploads applies the upload bucket. It must be mounted under a route with
// an {id} project parameter.
func (rl *RateLimiter) Uploads(next http.Handler) http.Handler {
	return rl.wrap(rl.uploads, next)
}

func (rl *RateLimiter) wrap(limiter func(http.Handler) http.Handler, next http.Handler) http.Handler {
	if !rl.cfg.Enabled {
		return next
	}

	limited := limiter(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.isPathWhitelisted(r.URL.Path) || rl.whitelistIPs[clientIP(r)] {
			next.ServeHTTP(w, r)
			return
		}
		limited.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) callerKey(r *http.Request) (string, error) {
	if userCtx, ok := auth.FromContext(r.Context()); ok {
		return "user:" + userCtx.UserID, nil
	}
	return "ip:" + clientIP(r), nil
}

func projectKey(r *http.Request) (string, error) {
	return "project:" + chi.URLParam(r, "id"), nil
}

// clientIP prefers the first X-Forwarded-For hop, then X-Real-IP.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func (rl *RateLimiter) isPathWhitelisted(path string) bool {
	if rl.whitelistPaths[path] {
		return true
	}

	// Entries ending with /* match by prefix
	for wp := range rl.whitelistPaths {
		if strings.HasSuffix(wp, "/*") && strings.HasPrefix(path, strings.TrimSuffix(wp, "/*")) {
			return true
		}
	}

	return false
}

func (rl *RateLimiter) reject(bucket string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := ""
		if userCtx, ok := auth.FromContext(r.Context()); ok {
			userID = userCtx.UserID
		}

		rl.logger.Warn("rate limit exceeded",
			zap.String("bucket", bucket),
			zap.String("path", r.URL.Path),
			zap.String("method", r.Method),
			zap.String("client_ip", clientIP(r)),
			zap.String("user_id", userID),
		)

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Retry-After", "60")
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(domain.APIError{
			Type:   domain.ErrorTypeRateLimited,
			Kind:   "RATE_LIMITED",
			Title:  http.StatusText(http.StatusTooManyRequests),
			Status: http.StatusTooManyRequests,
			Detail: "Too many requests. Please try again later.",
		})
	}
}
