package middleware

import (
	"errors"
	"math"
	"net"
	"net/http"
	"lodging/shared"
	"lodging/shared/cache"
	"lodging/shared/constant"
	"lodging/shared/timezone"
	"lodging/transport/http/response"
	"strconv"
	"strings"
	"time"
)

const (
	cacheKeyRateLimit = "limiter"
)

// window is a fixed rate limit window. The entry is re-saved with the time
// left until ResetAt, so every request in the window shares one deadline.
type window struct {
	Count   int       `json:"count"`
	ResetAt time.Time `json:"reset_at"`
}

func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !a.config.App.RateLimiter.Enable {
				next.ServeHTTP(w, r)

				return
			}

			maxReqs := a.config.App.RateLimiter.MaxRequests
			windowSecs := a.config.App.RateLimiter.WindowSeconds
			now := timezone.Now()

			cacheKey := shared.BuildCacheKey(cacheKeyRateLimit, a.getClientIP(r), a.getUA(r))

			var current window

			err := a.cache.Get(r.Context(), cacheKey, &current)

			switch {
			case err != nil && !errors.Is(err, cache.Nil):
				next.ServeHTTP(w, r)

				return
			case err != nil || !now.Before(current.ResetAt):
				current = window{Count: 1, ResetAt: now.Add(time.Duration(windowSecs) * time.Second)}
			default:
				current.Count++
			}

			remaining := current.ResetAt.Sub(now)

			w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(maxReqs))
			w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.Itoa(max(0, maxReqs-current.Count)))
			w.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(windowSecs))

			if current.Count > maxReqs {
				w.Header().Set(constant.ResponseHeaderRetryAfter, strconv.Itoa(ceilSeconds(remaining)))
				response.WithRequestLimitExceeded(w)

				return
			}

			if err := a.cache.Save(r.Context(), cacheKey, current, ceilSeconds(remaining)); err != nil {
				next.ServeHTTP(w, r)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func ceilSeconds(d time.Duration) int {
	return max(1, int(math.Ceil(d.Seconds())))
}

func (a *appMiddleware) getUA(r *http.Request) string {
	ua := r.Header.Get(constant.RequestHeaderUserAgent)
	if ua == "" {
		ua = "unknown"
	}

	return ua
}

func (a *appMiddleware) getClientIP(r *http.Request) string {
	if xff := r.Header.Get(constant.RequestHeaderForwardedFor); xff != "" {
		if first, _, found := strings.Cut(xff, ","); found {
			return strings.TrimSpace(first)
		}

		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get(constant.RequestHeaderRealIP); xri != "" {
		return strings.TrimSpace(xri)
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}

	return r.RemoteAddr
}
