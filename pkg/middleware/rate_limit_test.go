package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/knowthatperson/knowthatperson/backend/api/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func doFrom(r *gin.Engine, path, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitMiddleware_AllowsUnderLimit(t *testing.T) {
	before := testutil.ToFloat64(metrics.RateLimitAllowed.WithLabelValues("memory"))

	r := gin.New()
	r.Use(RateLimitMiddleware(10, 2)) // generous rate
	r.GET("/ok", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// two quick requests should pass
	require.Equal(t, http.StatusOK, doFrom(r, "/ok", "10.0.0.1:1111").Code)
	require.Equal(t, http.StatusOK, doFrom(r, "/ok", "10.0.0.1:1111").Code)

	// verify metrics incremented for memory limiter
	require.Equal(t, before+2.0, testutil.ToFloat64(metrics.RateLimitAllowed.WithLabelValues("memory")))
}

func TestRateLimitMiddleware_BlocksWhenExceeded(t *testing.T) {
	r := gin.New()
	// low rate to force rejections; distinct client so limiter state is fresh
	r.Use(RateLimitMiddleware(2, 1))
	r.GET("/limited", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	require.Equal(t, http.StatusOK, doFrom(r, "/limited", "10.0.0.2:1111").Code)
	require.Equal(t, http.StatusTooManyRequests, doFrom(r, "/limited", "10.0.0.2:1111").Code)

	// one token replenishes after 500ms at 2 rps
	time.Sleep(600 * time.Millisecond)
	require.Equal(t, http.StatusOK, doFrom(r, "/limited", "10.0.0.2:1111").Code)
}

func TestRateLimitMiddleware_KeysByClientIP(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(2, 1))
	r.GET("/k", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// exhausting one client's bucket must not affect another client
	require.Equal(t, http.StatusOK, doFrom(r, "/k", "10.0.0.3:1111").Code)
	require.Equal(t, http.StatusTooManyRequests, doFrom(r, "/k", "10.0.0.3:1111").Code)
	require.Equal(t, http.StatusOK, doFrom(r, "/k", "10.0.0.4:1111").Code)
}
