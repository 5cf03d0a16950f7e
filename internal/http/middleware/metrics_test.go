package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_CountsByRouteAndStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Metrics())
	r.GET("/games/:idOrSlug", func(c *gin.Context) { c.String(http.StatusOK, "game") })

	baseRoute := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/games/:idOrSlug", "200"))
	base404 := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/nope", "404"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/games/hades", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET /games/hades -> %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("GET /nope -> %d", w.Code)
	}

	// The matched request is labeled by route template, not the raw URL, so
	// parameterized paths stay at bounded cardinality.
	got := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/games/:idOrSlug", "200"))
	if got != baseRoute+1 {
		t.Fatalf("route-labeled counter = %v, want %v", got, baseRoute+1)
	}
	if raw := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/games/hades", "200")); raw != 0 {
		t.Fatalf("raw URL must not be used as a label for matched routes, counter = %v", raw)
	}

	// Unmatched requests fall back to the raw path.
	got404 := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/nope", "404"))
	if got404 != base404+1 {
		t.Fatalf("404 counter = %v, want %v", got404, base404+1)
	}
}

func TestMetrics_InflightReturnsToZero(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Metrics())
	r.GET("/peek", func(c *gin.Context) {
		if g := testutil.ToFloat64(httpInflight); g < 1 {
			t.Errorf("inflight during handler = %v, want >= 1", g)
		}
		c.Status(http.StatusOK)
	})

	before := testutil.ToFloat64(httpInflight)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/peek", nil))

	if after := testutil.ToFloat64(httpInflight); after != before {
		t.Fatalf("inflight after request = %v, want %v", after, before)
	}
}
