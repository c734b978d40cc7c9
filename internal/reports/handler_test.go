package reports_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap/zapcore"

	"career-backend/internal/llm"
	"career-backend/internal/reports"
	"career-backend/internal/shared/telemetry"
)

func post(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/submit-assessment", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func decodeBody(t *testing.T, resp *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var payload map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode body %q: %v", resp.Body.String(), err)
	}
	return payload
}

func TestSubmitAndDownloadReport(t *testing.T) {
	f := newFixture(t, fakeLLM(), nil)
	router := newRouter(f.svc)

	resp := post(router, `{"answers":{"q1":"Data"},"studentName":"Asha"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	body := decodeBody(t, resp)
	if body["message"] != "Report generated successfully" {
		t.Fatalf("unexpected message %q", body["message"])
	}
	if body["report_url"] != "/api/download-report/Asha_Career_Report.pdf" {
		t.Fatalf("unexpected report_url %q", body["report_url"])
	}

	dl := get(router, body["report_url"])
	if dl.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", dl.Code)
	}
	if ct := dl.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("unexpected content type: %s", ct)
	}
	if cd := dl.Header().Get("Content-Disposition"); cd != `attachment; filename="Asha_Career_Report.pdf"` {
		t.Fatalf("unexpected content disposition: %s", cd)
	}
	if !bytes.HasPrefix(dl.Body.Bytes(), []byte("%PDF-")) {
		t.Fatalf("expected pdf body")
	}
}

func TestSubmitMissingAnswers(t *testing.T) {
	f := newFixture(t, fakeLLM(), nil)
	router := newRouter(f.svc)

	for _, body := range []string{`{"studentName":"Asha"}`, `{"answers":null}`, ``} {
		resp := post(router, body)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected status 400, got %d", body, resp.Code)
		}
		if got := decodeBody(t, resp)["error"]; got != "Missing answers data" {
			t.Fatalf("body %q: unexpected error %q", body, got)
		}
	}

	entries, err := os.ReadDir(f.store.Dir())
	if err != nil {
		t.Fatalf("read store dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no artifacts, found %d", len(entries))
	}
}

func TestSubmitInvalidAnswers(t *testing.T) {
	router := newRouter(newFixture(t, fakeLLM(), nil).svc)

	for _, body := range []string{`{"answers":["Data"]}`, `{"answers":"Data"}`, `{"answers":`} {
		resp := post(router, body)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected status 400, got %d", body, resp.Code)
		}
		if got := decodeBody(t, resp)["error"]; got != "Invalid answers format" {
			t.Fatalf("body %q: unexpected error %q", body, got)
		}
	}
}

func TestSubmitRejectsOversizedBody(t *testing.T) {
	f := newFixture(t, fakeLLM(), nil)
	router := newRouter(f.svc)

	body := `{"studentName":"Asha","answers":{"q1":"` + strings.Repeat("a", 2<<20) + `"}}`
	resp := post(router, body)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
	if got := decodeBody(t, resp)["error"]; got != "Request body too large" {
		t.Fatalf("unexpected error %q", got)
	}

	entries, err := os.ReadDir(f.store.Dir())
	if err != nil {
		t.Fatalf("read store dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no artifacts, found %d", len(entries))
	}
}

func TestSubmitPipelineFailures(t *testing.T) {
	failing := llm.ClientFunc(func(context.Context, string) (string, error) { return "", errBackend })

	cases := []struct {
		name     string
		fixture  func(t *testing.T) fixture
		body     string
		wantErr  string
		wantInfo string
		stage    string
	}{
		{
			name:    "extraction",
			fixture: func(t *testing.T) fixture { return newFixture(t, failing, nil) },
			body:    `{"answers":{"q1":"not sure yet"},"studentName":"Asha"}`,
			wantErr: "Failed to extract career goal",
			stage:   reports.StageExtraction,
		},
		{
			name:    "generation",
			fixture: func(t *testing.T) fixture { return newFixture(t, failing, nil) },
			body:    `{"answers":{"q1":"Data"},"studentName":"Asha"}`,
			wantErr: "Failed to generate report sections",
			stage:   reports.StageGeneration,
		},
		{
			name:     "render",
			fixture:  func(t *testing.T) fixture { return newFixture(t, fakeLLM(), failingRenderer{}) },
			body:     `{"answers":{"q1":"Data"},"studentName":"Asha"}`,
			wantErr:  "Assessment processing failed",
			wantInfo: "render stage failed",
			stage:    reports.StageRender,
		},
		{
			name: "storage",
			fixture: func(t *testing.T) fixture {
				f := newFixture(t, fakeLLM(), &countingRenderer{})
				f.svc.Store = failingStore{}
				return f
			},
			body:     `{"answers":{"q1":"Data"},"studentName":"Asha"}`,
			wantErr:  "Assessment processing failed",
			wantInfo: "storage stage failed",
			stage:    reports.StageStorage,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var logs bytes.Buffer
			restore := telemetry.Use(telemetry.New(&logs, zapcore.InfoLevel))
			defer restore()

			router := newRouter(tc.fixture(t).svc)
			resp := post(router, tc.body)
			if resp.Code != http.StatusInternalServerError {
				t.Fatalf("expected status 500, got %d", resp.Code)
			}
			body := decodeBody(t, resp)
			if body["error"] != tc.wantErr {
				t.Fatalf("unexpected error %q", body["error"])
			}
			if body["details"] != tc.wantInfo {
				t.Fatalf("unexpected details %q", body["details"])
			}
			if strings.Contains(resp.Body.String(), errBackend.Error()) || strings.Contains(resp.Body.String(), "disk full") {
				t.Fatalf("internal cause leaked to caller: %s", resp.Body.String())
			}
			if !strings.Contains(logs.String(), `"stage":"`+tc.stage+`"`) {
				t.Fatalf("expected stage %s in logs:\n%s", tc.stage, logs.String())
			}
		})
	}
}

func TestSameNameLastWriterWins(t *testing.T) {
	renderer := &countingRenderer{}
	router := newRouter(newFixture(t, fakeLLM(), renderer).svc)

	for i := 0; i < 2; i++ {
		if resp := post(router, `{"answers":{"q1":"Data"},"studentName":"Asha"}`); resp.Code != http.StatusOK {
			t.Fatalf("submission %d: expected 200, got %d", i+1, resp.Code)
		}
	}

	dl := get(router, "/api/download-report/Asha_Career_Report.pdf")
	if dl.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", dl.Code)
	}
	if got := dl.Body.String(); got != "%PDF-stub 2 Asha" {
		t.Fatalf("expected second submission's artifact, got %q", got)
	}
}

func TestDownloadNotFound(t *testing.T) {
	router := newRouter(newFixture(t, fakeLLM(), nil).svc)

	for _, name := range []string{"does-not-exist.pdf", "..secret.pdf", ".hidden"} {
		resp := get(router, "/api/download-report/"+name)
		if resp.Code != http.StatusNotFound {
			t.Fatalf("%s: expected status 404, got %d", name, resp.Code)
		}
		if got := decodeBody(t, resp)["error"]; got != "File not found" {
			t.Fatalf("%s: unexpected error %q", name, got)
		}
		if cd := resp.Header().Get("Content-Disposition"); cd != "" {
			t.Fatalf("%s: expected no content disposition, got %s", name, cd)
		}
	}
}

func TestDownloadStorageFault(t *testing.T) {
	f := newFixture(t, fakeLLM(), nil)
	f.svc.Store = failingStore{}
	router := newRouter(f.svc)

	resp := get(router, "/api/download-report/Asha_Career_Report.pdf")
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.Code)
	}
	if got := decodeBody(t, resp)["error"]; got != "Failed to retrieve report" {
		t.Fatalf("unexpected error %q", got)
	}
}
