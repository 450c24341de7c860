package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// attemptWindow 按客户端记录窗口内的尝试时间
// 过期记录在请求路径上按窗口周期顺带清理，不另起 goroutine
type attemptWindow struct {
	mu        sync.Mutex
	max       int
	window    time.Duration
	attempts  map[string][]time.Time
	lastSweep time.Time
}

func newAttemptWindow(max int, window time.Duration) *attemptWindow {
	return &attemptWindow{max: max, window: window, attempts: make(map[string][]time.Time)}
}

// allow 记录一次尝试，窗口内已达上限时返回 false 且不计数
func (w *attemptWindow) allow(key string, now time.Time) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if now.Sub(w.lastSweep) >= w.window {
		w.sweepLocked(now)
	}
	recent := recentSince(w.attempts[key], now.Add(-w.window))
	if len(recent) >= w.max {
		w.attempts[key] = recent
		return false
	}
	w.attempts[key] = append(recent, now)
	return true
}

// sweepLocked 清掉窗口外已无记录的客户端
func (w *attemptWindow) sweepLocked(now time.Time) {
	w.lastSweep = now
	cutoff := now.Add(-w.window)
	for key, ts := range w.attempts {
		if recent := recentSince(ts, cutoff); len(recent) > 0 {
			w.attempts[key] = recent
		} else {
			delete(w.attempts, key)
		}
	}
}

func (w *attemptWindow) size() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.attempts)
}

func recentSince(ts []time.Time, cutoff time.Time) []time.Time {
	kept := ts[:0]
	for _, t := range ts {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}

// JoinRateLimit 加入房间接口限流
// 同一 IP 在 window 内最多 maxAttempts 次，超出返回 429，防止枚举加入码
func JoinRateLimit(maxAttempts int, window time.Duration) gin.HandlerFunc {
	limiter := newAttemptWindow(maxAttempts, window)

	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !limiter.allow(ip, time.Now()) {
			rateLimited.WithLabelValues(c.FullPath()).Inc()
			zap.L().Warn("join rate limited", zap.String("ip", ip))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"message": "Too many join attempts, please try again later",
			})
			return
		}
		c.Next()
	}
}
