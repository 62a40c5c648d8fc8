package middleware

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/MNabeel-Git/RecruitmentManagementSystem/pkg/jwtutil"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/pkg/logger"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Throttler applies a per-principal token-bucket rate limit. Authenticated
// requests are tracked per user id so a busy tenant can't starve others
// behind the same NAT; anonymous requests fall back to the client IP.
type Throttler struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

// NewThrottler creates a throttler with the given steady rate and burst
func NewThrottler(rps float64, burst int) *Throttler {
	return &Throttler{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

// tracker returns the rate-limit key for a request
func (t *Throttler) tracker(c echo.Context) string {
	if claims, ok := c.Get("user").(*jwtutil.UserClaims); ok && claims != nil {
		return fmt.Sprintf("user:%d", claims.UserID)
	}
	return "ip:" + c.RealIP()
}

func (t *Throttler) limiter(key string) *rate.Limiter {
	t.mu.Lock()
	defer t.mu.Unlock()
	limiter, ok := t.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(t.rps, t.burst)
		t.limiters[key] = limiter
	}
	return limiter
}

// Middleware returns the echo middleware enforcing the limit
func (t *Throttler) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		key := t.tracker(c)
		if !t.limiter(key).Allow() {
			logger.FromEcho(c).Warn("Request throttled", zap.String("tracker", key))
			prometheus.ThrottledRequestsCounter.Inc()
			return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "Too many requests. Please try again later."})
		}
		return next(c)
	}
}
