package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/riskforge/payrisk/pkg"
	middleware "github.com/riskforge/payrisk/pkg/middlewares"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func limitedRouter(limiter *pkg.RequestLimiter) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RateLimit(limiter))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func get(r *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	return w
}

func TestRateLimit_RejectsOverBudget(t *testing.T) {
	r := limitedRouter(pkg.NewRequestLimiter(1, 1, zap.NewNop()))

	first := get(r)
	second := get(r)

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)

	var resp pkg.ErrorResponse
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &resp))
	assert.Equal(t, pkg.ErrRateLimitedCode.Code, resp.Code)
}

func TestRateLimit_ZeroRPSMeansUnlimited(t *testing.T) {
	r := limitedRouter(pkg.NewRequestLimiter(0, 0, zap.NewNop()))

	for i := 0; i < 50; i++ {
		assert.Equal(t, http.StatusOK, get(r).Code)
	}
}

func TestTraceID_GeneratesWhenAbsent(t *testing.T) {
	r := gin.New()
	r.Use(middleware.TraceID())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.NotEmpty(t, w.Header().Get(pkg.HeaderTraceId))
}

func TestTraceID_PreservesClientValue(t *testing.T) {
	r := gin.New()
	r.Use(middleware.TraceID())
	var seen string
	r.GET("/ping", func(c *gin.Context) {
		seen = c.GetString(pkg.TraceId)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(pkg.HeaderTraceId, "client-trace")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "client-trace", seen)
	assert.Equal(t, "client-trace", w.Header().Get(pkg.HeaderTraceId))
}
