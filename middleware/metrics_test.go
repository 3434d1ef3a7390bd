package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(Metrics())
	router.GET("/items/:index", func(c *gin.Context) {
		c.String(200, "ok")
	})

	counter := httpRequests.WithLabelValues("GET", "/items/:index", "200")
	before := testutil.ToFloat64(counter)

	for _, path := range []string{"/items/1", "/items/2"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
		assert.Equal(t, 200, w.Code)
	}
	assert.Equal(t, before+2, testutil.ToFloat64(counter))

	missing := httpRequests.WithLabelValues("GET", "unmatched", "404")
	before = testutil.ToFloat64(missing)
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/nope", nil))
	assert.Equal(t, before+1, testutil.ToFloat64(missing))
}
