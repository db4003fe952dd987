package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordOverview(t *testing.T) {
	RecordOverview(3, 2, 1, 4, 5)

	tests := []struct {
		tier string
		want float64
	}{
		{"healthy", 3},
		{"attention", 2},
		{"critical", 1},
	}
	for _, tt := range tests {
		if got := testutil.ToFloat64(ProjectsByTier.WithLabelValues(tt.tier)); got != tt.want {
			t.Errorf("portfolio_projects{tier=%q} = %v, want %v", tt.tier, got, tt.want)
		}
	}
	if got := testutil.ToFloat64(LateTasks); got != 4 {
		t.Errorf("late tasks = %v, want 4", got)
	}
	if got := testutil.ToFloat64(OpenGaps); got != 5 {
		t.Errorf("open gaps = %v, want 5", got)
	}
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/api/projects/:id", func(c *gin.Context) { c.Status(http.StatusTeapot) })
	r.GET("/metrics", gin.WrapH(Handler()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/projects/42", nil))
	if w.Code != http.StatusTeapot {
		t.Fatalf("status = %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := w.Body.String()
	if !strings.Contains(body, `path="/api/projects/:id"`) {
		t.Error("metrics output missing route-pattern path label")
	}
	if strings.Contains(body, `path="/api/projects/42"`) {
		t.Error("metrics output should not contain raw ids")
	}
	if !strings.Contains(body, "portfolio_late_tasks") {
		t.Error("metrics output missing portfolio_late_tasks")
	}
}
