// internal/app/system/ratelimit/ratelimit.go
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Limiter counts requests per key over a fixed window. Safe for concurrent
// use. Entries for idle keys are reaped in the background.
type Limiter struct {
	mu       sync.Mutex
	windows  map[string]*window
	limit    int
	duration time.Duration
}

type window struct {
	count     int
	expiresAt time.Time
}

// New creates a limiter allowing at most limit requests per duration per key.
func New(limit int, duration time.Duration) *Limiter {
	l := &Limiter{
		windows:  make(map[string]*window),
		limit:    limit,
		duration: duration,
	}
	go l.reapLoop(duration * 2)
	return l
}

// Allow records one request for the key and reports whether it fits in the
// current window.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	w, ok := l.windows[key]
	if !ok || now.After(w.expiresAt) {
		l.windows[key] = &window{count: 1, expiresAt: now.Add(l.duration)}
		return true
	}
	if w.count >= l.limit {
		return false
	}
	w.count++
	return true
}

// Reset clears the window for a key, used after a successful login so a user
// who finally typed the right password is not still throttled.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.windows, key)
}

func (l *Limiter) reapLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for range ticker.C {
		l.mu.Lock()
		now := time.Now()
		for key, w := range l.windows {
			if now.After(w.expiresAt) {
				delete(l.windows, key)
			}
		}
		l.mu.Unlock()
	}
}

// ClientIP extracts the caller's IP, preferring X-Forwarded-For then
// X-Real-IP for proxied deployments, falling back to RemoteAddr.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := strings.TrimSpace(strings.Split(xff, ",")[0]); ip != "" {
			return ip
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// LoginLimiter throttles login attempts on two axes: per source IP against
// spray attacks, and per username against attacks aimed at one account.
type LoginLimiter struct {
	ipLimiter   *Limiter
	userLimiter *Limiter
}

// NewLoginLimiter builds a login limiter. Zero or negative arguments fall
// back to 10 attempts per IP per minute and 5 per username per 5 minutes.
func NewLoginLimiter(ipLimit int, ipWindow time.Duration, userLimit int, userWindow time.Duration) *LoginLimiter {
	if ipLimit <= 0 {
		ipLimit = 10
	}
	if ipWindow <= 0 {
		ipWindow = time.Minute
	}
	if userLimit <= 0 {
		userLimit = 5
	}
	if userWindow <= 0 {
		userWindow = 5 * time.Minute
	}
	return &LoginLimiter{
		ipLimiter:   New(ipLimit, ipWindow),
		userLimiter: New(userLimit, userWindow),
	}
}

// Check reports whether a login attempt may proceed and, when blocked, a
// message safe to show the caller.
func (ll *LoginLimiter) Check(r *http.Request, username string) (bool, string) {
	if !ll.ipLimiter.Allow(ClientIP(r)) {
		return false, "too many login attempts; wait a minute before trying again"
	}
	if username != "" {
		if !ll.userLimiter.Allow(userKey(username)) {
			return false, "too many login attempts for this account; wait a few minutes"
		}
	}
	return true, ""
}

// ResetUser clears the per-username window after a successful login.
func (ll *LoginLimiter) ResetUser(username string) {
	if username != "" {
		ll.userLimiter.Reset(userKey(username))
	}
}

func userKey(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
