// server/internal/api/middleware/ratelimit.go
package middleware

import (
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"vendor-shop-api-server/config"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// memoryCounter là store đếm request trong bộ nhớ, dùng khi Redis không khả dụng.
type memoryCounter struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
}

type memoryEntry struct {
	count     int
	expiresAt time.Time
}

func newMemoryCounter() *memoryCounter {
	return &memoryCounter{entries: make(map[string]*memoryEntry)}
}

// incr tăng bộ đếm của key và trả về giá trị mới.
// Entry hết hạn được reset tại chỗ thay vì dọn bằng timer.
func (m *memoryCounter) incr(key string, window time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	entry, ok := m.entries[key]
	if !ok || now.After(entry.expiresAt) {
		m.entries[key] = &memoryEntry{count: 1, expiresAt: now.Add(window)}
		return 1
	}
	entry.count++
	return entry.count
}

// RateLimiter giới hạn số request của mỗi client trong một cửa sổ thời gian.
// Dùng Redis khi có, fallback về bộ đếm trong bộ nhớ khi không.
type RateLimiter struct {
	rdb    *redis.Client // nil nghĩa là chỉ chạy chế độ in-memory
	mem    *memoryCounter
	window time.Duration
	max    int
}

func NewRateLimiter(rdb *redis.Client, cfg config.RateLimitConfig) *RateLimiter {
	windowMs := cfg.WindowMs
	if windowMs <= 0 {
		windowMs = 60000
	}
	max := cfg.MaxRequests
	if max <= 0 {
		max = 100
	}

	return &RateLimiter{
		rdb:    rdb,
		mem:    newMemoryCounter(),
		window: time.Duration(windowMs) * time.Millisecond,
		max:    max,
	}
}

// Handler trả về middleware Gin áp dụng rate limit theo IP của client.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ratelimit:" + c.ClientIP()

		count, err := rl.increment(c, key)
		if err != nil {
			// Rate limiter lỗi thì vẫn cho request đi qua
			log.Printf("Rate limiter error: %v", err)
			c.Next()
			return
		}

		remaining := rl.max - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.max))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if count > rl.max {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success":    false,
				"message":    "Too many requests, please try again later.",
				"data":       nil,
				"statusCode": http.StatusTooManyRequests,
				"timestamp":  time.Now().UTC().Format(time.RFC3339),
			})
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) increment(c *gin.Context, key string) (int, error) {
	if rl.rdb != nil {
		count, err := rl.rdb.Incr(c.Request.Context(), key).Result()
		if err == nil {
			// Request đầu tiên trong cửa sổ thì đặt thời gian hết hạn
			if count == 1 {
				rl.rdb.PExpire(c.Request.Context(), key, rl.window)
			}
			return int(count), nil
		}
		// Redis lỗi: chuyển qua bộ đếm trong bộ nhớ
		log.Printf("Redis unavailable for rate limiting, falling back to memory: %v", err)
	}

	return rl.mem.incr(key, rl.window), nil
}
