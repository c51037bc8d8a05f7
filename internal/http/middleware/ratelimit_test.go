package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	echo "github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func doRequest(t *testing.T, mw echo.MiddlewareFunc) int {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/submit", nil)
	req.Header.Set("X-Real-IP", "203.0.113.7")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	require.NoError(t, h(c))
	return rec.Code
}

func TestRateLimitBlocksAboveRPS(t *testing.T) {
	mr := miniredis.RunT(t)
	rds := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rds.Close() })

	mw := RateLimitMiddleware(RateLimitConfig{
		Redis:          rds,
		RPS:            2,
		Window:         time.Minute, // keep all requests inside one window
		RetryAfterHint: true,
	})

	require.Equal(t, http.StatusOK, doRequest(t, mw))
	require.Equal(t, http.StatusOK, doRequest(t, mw))
	require.Equal(t, http.StatusTooManyRequests, doRequest(t, mw))
}

func TestRateLimitDisabledWithoutRedis(t *testing.T) {
	mw := RateLimitMiddleware(RateLimitConfig{Redis: nil, RPS: 1})

	for i := 0; i < 5; i++ {
		require.Equal(t, http.StatusOK, doRequest(t, mw))
	}
}

func TestRateLimitFailOpenWhenRedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	rds := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rds.Close() })
	mr.Close()

	mw := RateLimitMiddleware(RateLimitConfig{Redis: rds, RPS: 1, Window: time.Minute})

	require.Equal(t, http.StatusOK, doRequest(t, mw))
	require.Equal(t, http.StatusOK, doRequest(t, mw))
}
