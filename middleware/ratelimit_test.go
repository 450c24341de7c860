package middleware

import (
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestAttemptWindow_Allow(t *testing.T) {
	w := newAttemptWindow(2, time.Minute)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	steps := []struct {
		key   string
		at    time.Duration
		allow bool
	}{
		{"10.0.0.1", 0, true},
		{"10.0.0.1", 10 * time.Second, true},
		{"10.0.0.1", 20 * time.Second, false},
		{"10.0.0.2", 20 * time.Second, true},
		// 第一次尝试滑出窗口
		{"10.0.0.1", 61 * time.Second, true},
		{"10.0.0.1", 62 * time.Second, false},
	}
	for i, s := range steps {
		assert.Equal(t, s.allow, w.allow(s.key, base.Add(s.at)), "step %d (%s)", i, s.key)
	}
}

func TestAttemptWindow_SweepsOnRequestPath(t *testing.T) {
	w := newAttemptWindow(3, time.Minute)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	w.allow("stale", base)
	w.allow("fresh", base.Add(50*time.Second))
	assert.Equal(t, 2, w.size())

	// 距上次清理已超过一个窗口，本次请求顺带清掉 stale
	assert.True(t, w.allow("other", base.Add(90*time.Second)))
	assert.Equal(t, 2, w.size())
	w.mu.Lock()
	_, staleKept := w.attempts["stale"]
	w.mu.Unlock()
	assert.False(t, staleKept)
}

func TestJoinRateLimit_NoBackgroundGoroutine(t *testing.T) {
	before := runtime.NumGoroutine()
	for i := 0; i < 20; i++ {
		JoinRateLimit(5, time.Minute)
	}
	assert.LessOrEqual(t, runtime.NumGoroutine(), before)
}

func TestJoinRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/api/rooms/join", JoinRateLimit(2, time.Hour), func(c *gin.Context) {
		c.String(http.StatusOK, "joined")
	})

	join := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/api/rooms/join", nil)
		req.RemoteAddr = ip + ":5050"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, join("172.16.0.9").Code)
	assert.Equal(t, http.StatusOK, join("172.16.0.9").Code)

	blocked := join("172.16.0.9")
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.JSONEq(t, `{"message":"Too many join attempts, please try again later"}`, blocked.Body.String())

	// 其他 IP 不受影响
	assert.Equal(t, http.StatusOK, join("172.16.0.10").Code)
}
