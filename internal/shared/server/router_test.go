package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"career-backend/internal/reports"
	"career-backend/internal/shared/config"
	"career-backend/internal/shared/server/middleware"
)

func testRouter(burst int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	return NewRouter(RouterDeps{
		Config: config.Config{
			Env:              "test",
			CORSAllowOrigin:  []string{"http://localhost:5173"},
			SubmitRatePerSec: 0.01,
			SubmitRateBurst:  burst,
		},
		ReportHandler: reports.NewHandler(&reports.Service{}),
		Limiter:       middleware.NewRateLimiter(func() time.Time { return now }),
	})
}

func TestHealth(t *testing.T) {
	resp := httptest.NewRecorder()
	testRouter(5).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if strings.TrimSpace(resp.Body.String()) != `{"ok":true}` {
		t.Fatalf("unexpected body %s", resp.Body.String())
	}
	if resp.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected request id header")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	resp := httptest.NewRecorder()
	testRouter(5).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "report_submissions_total") {
		t.Fatalf("expected report metrics, got %s", resp.Body.String())
	}
}

func TestSubmitRouteIsRateLimited(t *testing.T) {
	router := testRouter(1)

	submit := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/submit-assessment", strings.NewReader(`{}`))
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		return resp
	}

	if resp := submit(); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected first submission to reach the handler, got %d", resp.Code)
	}
	limited := submit()
	if limited.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", limited.Code)
	}
	if !strings.Contains(limited.Body.String(), `"error":"Too many submissions, please try again later"`) {
		t.Fatalf("unexpected 429 body %s", limited.Body.String())
	}

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("health must not be throttled, got %d", resp.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/submit-assessment", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	resp := httptest.NewRecorder()
	testRouter(5).ServeHTTP(resp, req)

	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("unexpected allow origin %q", got)
	}
}

func TestAddr(t *testing.T) {
	cases := map[string]string{"": ":3001", "8080": ":8080", ":9000": ":9000"}
	for in, want := range cases {
		if got := Addr(in); got != want {
			t.Fatalf("Addr(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestProdConfigEnablesReleaseMode(t *testing.T) {
	t.Setenv("ENV", "prod")
	defer gin.SetMode(gin.TestMode)

	gin.SetMode(gin.DebugMode)
	NewRouter(RouterDeps{Config: config.Load()})
	if gin.Mode() != gin.ReleaseMode {
		t.Fatalf("expected release mode for ENV=prod, got %s", gin.Mode())
	}
}
