package endpoint

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/voicefeedback/component"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(t *testing.T, h gin.HandlerFunc) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	r := gin.New()
	r.GET("/x", h)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/x", http.NoBody))

	var body map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON %q: %v", rr.Body.String(), err)
	}
	return rr, body
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		statuses   []component.HealthStatus
		wantCode   int
		wantStatus string
	}{
		{"no checker components", nil, http.StatusOK, "healthy"},
		{"all healthy", []component.HealthStatus{component.StatusHealthy, component.StatusHealthy}, http.StatusOK, "healthy"},
		{"degraded", []component.HealthStatus{component.StatusHealthy, component.StatusDegraded}, http.StatusOK, "degraded"},
		{"unhealthy wins", []component.HealthStatus{component.StatusDegraded, component.StatusUnhealthy}, http.StatusServiceUnavailable, "unhealthy"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			checker := func(context.Context) []component.Health {
				out := make([]component.Health, len(tc.statuses))
				for i, s := range tc.statuses {
					out[i] = component.Health{Name: "c", Status: s}
				}
				return out
			}
			rr, body := serve(t, Health("feedbackd", checker))
			if rr.Code != tc.wantCode {
				t.Errorf("code = %d, want %d", rr.Code, tc.wantCode)
			}
			if body["status"] != tc.wantStatus {
				t.Errorf("status = %v, want %s", body["status"], tc.wantStatus)
			}
			if body["service"] != "feedbackd" {
				t.Errorf("service = %v", body["service"])
			}
		})
	}
}

func TestOverall(t *testing.T) {
	hs := []component.Health{
		{Name: "storage", Status: component.StatusHealthy},
		{Name: "feedback-api", Status: component.StatusDegraded},
	}
	if got := Overall(hs); got != component.StatusDegraded {
		t.Errorf("Overall() = %s", got)
	}
	if got := Overall(nil); got != component.StatusHealthy {
		t.Errorf("Overall(nil) = %s", got)
	}
}

func TestHealthNilChecker(t *testing.T) {
	rr, body := serve(t, Health("feedbackd", nil))
	if rr.Code != http.StatusOK || body["status"] != "healthy" {
		t.Errorf("got %d %v", rr.Code, body)
	}
}

func TestInfo(t *testing.T) {
	rr, body := serve(t, Info("feedbackd"))
	if rr.Code != http.StatusOK {
		t.Fatalf("code = %d", rr.Code)
	}
	for _, key := range []string{"service", "version", "go_version", "uptime", "timestamp"} {
		if _, ok := body[key]; !ok {
			t.Errorf("missing %q in %v", key, body)
		}
	}
}

func TestVersion(t *testing.T) {
	rr, body := serve(t, Version())
	if rr.Code != http.StatusOK {
		t.Fatalf("code = %d", rr.Code)
	}
	if _, ok := body["version"]; !ok {
		t.Errorf("missing version in %v", body)
	}
}
