package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	limit "github.com/yangxikun/gin-limit-by-key"
	"golang.org/x/time/rate"
)

// limiterTTL is how long an idle client's bucket is kept.
const limiterTTL = time.Hour

// MsgTooManyRequests is returned when a client runs out of tokens.
const MsgTooManyRequests = "Demasiadas solicitudes. Inténtalo de nuevo en un momento."

// limiterSeq namespaces keys in gin-limit-by-key's process-wide cache, so two
// ClientLimiters never hand out each other's buckets.
var limiterSeq atomic.Uint64

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ClientLimiter keeps one token bucket per client key. HTTP routes and
// websocket messages that share a ClientLimiter draw from the same bucket.
type ClientLimiter struct {
	prefix string
	every  rate.Limit
	burst  int
	ttl    time.Duration
	now    func() time.Time

	mu        sync.Mutex
	buckets   map[string]*clientBucket
	lastSweep time.Time
}

// NewClientLimiter allows perMinute events per key with the given burst.
func NewClientLimiter(perMinute, burst int) *ClientLimiter {
	if perMinute <= 0 {
		perMinute = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &ClientLimiter{
		prefix:  strconv.FormatUint(limiterSeq.Add(1), 10) + "/",
		every:   rate.Every(time.Minute / time.Duration(perMinute)),
		burst:   burst,
		ttl:     limiterTTL,
		now:     time.Now,
		buckets: make(map[string]*clientBucket),
	}
}

// Limiter returns the bucket for key, creating it on first use.
func (l *ClientLimiter) Limiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > l.ttl {
		for k, b := range l.buckets {
			// twice the ttl so a bucket still cached by the gin middleware is never replaced
			if now.Sub(b.lastSeen) > 2*l.ttl {
				delete(l.buckets, k)
			}
		}
		l.lastSweep = now
	}

	b, ok := l.buckets[key]
	if !ok {
		b = &clientBucket{limiter: rate.NewLimiter(l.every, l.burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter
}

// Allow reports whether key may spend one token now.
func (l *ClientLimiter) Allow(key string) bool {
	return l.Limiter(key).Allow()
}

// Middleware limits requests by client IP, answering 429 when refused.
// The client IP honours the router's trusted proxies.
func (l *ClientLimiter) Middleware() gin.HandlerFunc {
	return limit.NewRateLimiter(
		func(c *gin.Context) string {
			return l.prefix + c.ClientIP()
		},
		func(c *gin.Context) (*rate.Limiter, time.Duration) {
			return l.Limiter(c.ClientIP()), l.ttl
		},
		func(c *gin.Context) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"ok":    false,
				"error": MsgTooManyRequests,
			})
		},
	)
}

// RateLimit allows perMinute requests per client IP with the given burst.
func RateLimit(perMinute, burst int) gin.HandlerFunc {
	return NewClientLimiter(perMinute, burst).Middleware()
}
