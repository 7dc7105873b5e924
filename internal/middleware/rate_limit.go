package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/annel0/worldobjects/internal/logging"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitConfig - ограничение частоты запросов на один IP
type RateLimitConfig struct {
	RequestsPerSecond float64
	BurstSize         int
	Enabled           bool
}

// RateLimiter держит token bucket на каждый IP клиента
type RateLimiter struct {
	config  RateLimitConfig
	clients map[string]*rate.Limiter
	mu      sync.Mutex
	log     *logging.Logger
}

func NewRateLimiter(config RateLimitConfig) *RateLimiter {
	if config.BurstSize <= 0 {
		config.BurstSize = 1
	}
	return &RateLimiter{
		config:  config,
		clients: make(map[string]*rate.Limiter),
		log:     logging.GetComponentLogger("http"),
	}
}

func (rl *RateLimiter) getLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, exists := rl.clients[ip]
	if !exists {
		limiter = rate.NewLimiter(rate.Limit(rl.config.RequestsPerSecond), rl.config.BurstSize)
		rl.clients[ip] = limiter
	}
	return limiter
}

// Cleanup удаляет клиентов с полным ведром токенов
func (rl *RateLimiter) Cleanup(now time.Time) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	removed := 0
	for ip, limiter := range rl.clients {
		if limiter.TokensAt(now) >= float64(rl.config.BurstSize) {
			delete(rl.clients, ip)
			removed++
		}
	}
	return removed
}

// Run периодически вызывает Cleanup до закрытия stop
func (rl *RateLimiter) Run(stop <-chan struct{}) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			rl.Cleanup(now)
		}
	}
}

// Handler возвращает gin.HandlerFunc; превышение лимита - 429 с Retry-After
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.config.Enabled {
			c.Next()
			return
		}

		ip := c.ClientIP()
		if !rl.getLimiter(ip).Allow() {
			rl.log.Warn("rate limit exceeded ip=%s %s %s", ip, c.Request.Method, c.Request.URL.Path)
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
