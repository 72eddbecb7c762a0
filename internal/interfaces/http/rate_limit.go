package http

import (
	"context"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
)

// OrgRateLimiter token bucket por organización.
type OrgRateLimiter struct {
	limit rate.Limit
	burst int

	mu       sync.Mutex
	limiters map[string]*orgLimiter
	now      func() time.Time
}

type orgLimiter struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// NewOrgRateLimiter crea el limitador. rps <= 0 lo desactiva.
func NewOrgRateLimiter(rps float64, burst int) *OrgRateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &OrgRateLimiter{
		limit:    rate.Limit(rps),
		burst:    burst,
		limiters: make(map[string]*orgLimiter),
		now:      time.Now,
	}
}

// Allow consume un token de la organización.
func (l *OrgRateLimiter) Allow(orgID string) bool {
	if l.limit <= 0 {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	e, ok := l.limiters[orgID]
	if !ok {
		e = &orgLimiter{lim: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[orgID] = e
	}
	e.lastSeen = now
	return e.lim.AllowN(now, 1)
}

// Prune elimina limitadores sin uso desde hace más de idle. Devuelve cuántos quitó.
func (l *OrgRateLimiter) Prune(idle time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	cutoff := l.now().Add(-idle)
	n := 0
	for org, e := range l.limiters {
		if e.lastSeen.Before(cutoff) {
			delete(l.limiters, org)
			n++
		}
	}
	return n
}

// StartCleanup poda periódicamente hasta que ctx termine.
func (l *OrgRateLimiter) StartCleanup(ctx context.Context, every, idle time.Duration) {
	ticker := time.NewTicker(every)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				l.Prune(idle)
			}
		}
	}()
}

// Middleware responde 429 cuando la organización del token agota su cuota.
// Debe ir después de AuthMiddleware.
func (l *OrgRateLimiter) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !l.Allow(GetOrgID(c)) {
			c.Set(fiber.HeaderRetryAfter, "1")
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code:    "RATE_LIMITED",
				Message: "demasiadas peticiones, intente más tarde",
			})
		}
		return c.Next()
	}
}
