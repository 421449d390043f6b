package middleware

import (
	"sync"
	"time"

	"github.com/kataras/iris/v12"
)

// tokenBucket 令牌桶限流器
type tokenBucket struct {
	capacity   int64
	tokens     int64
	refillRate int64 // 每秒补充的令牌数
	lastRefill time.Time
	mu         sync.Mutex
}

func (tb *tokenBucket) allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(tb.lastRefill)
	tokensToAdd := int64(elapsed.Seconds()) * tb.refillRate
	if tokensToAdd > 0 {
		tb.tokens += tokensToAdd
		if tb.tokens > tb.capacity {
			tb.tokens = tb.capacity
		}
		tb.lastRefill = now
	}

	if tb.tokens > 0 {
		tb.tokens--
		return true
	}
	return false
}

// RateLimit 基于令牌桶的限流中间件，挂在会打到远端集合的接口上，
// 避免前台的连点把远端免费服务刷爆
func RateLimit(capacity, refillRate int64) iris.Handler {
	bucket := &tokenBucket{
		capacity:   capacity,
		tokens:     capacity,
		refillRate: refillRate,
		lastRefill: time.Now(),
	}
	return func(ctx iris.Context) {
		if !bucket.allow() {
			ctx.StopWithJSON(429, iris.Map{
				"code": 429,
				"msg":  "too many requests",
			})
			return
		}
		ctx.Next()
	}
}
