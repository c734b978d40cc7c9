package reports_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"career-backend/internal/assessment"
	"career-backend/internal/career"
	"career-backend/internal/llm"
	"career-backend/internal/reports"
	"career-backend/internal/shared/storage/artifact"
	"career-backend/internal/shared/storage/artifact/local"
	"career-backend/report/model"
	"career-backend/report/render"
)

// fakeLLM answers every section prompt with markdown naming the section.
func fakeLLM() llm.Client {
	return llm.ClientFunc(func(_ context.Context, prompt string) (string, error) {
		for _, topic := range reports.DefaultTopics {
			if strings.Contains(prompt, "Section: "+topic.Title+"\n") {
				return "## " + topic.Title + "\n\nGenerated guidance for **" + topic.ID + "**.\n\n* First step\n* Second step", nil
			}
		}
		return "Data Scientist", nil
	})
}

type countingRenderer struct {
	calls atomic.Int32
}

func (r *countingRenderer) Render(_ context.Context, report model.Report) ([]byte, error) {
	n := r.calls.Add(1)
	return []byte(fmt.Sprintf("%%PDF-stub %d %s", n, report.StudentName)), nil
}

type failingRenderer struct{}

func (failingRenderer) Render(context.Context, model.Report) ([]byte, error) {
	return nil, fmt.Errorf("%w: section strengths: font missing", render.ErrRender)
}

type blockingRenderer struct{}

func (blockingRenderer) Render(ctx context.Context, _ model.Report) ([]byte, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

type failingStore struct{}

func (failingStore) Save(context.Context, string, []byte) (string, error) {
	return "", fmt.Errorf("%w: disk full", artifact.ErrStorage)
}

func (failingStore) Load(context.Context, string) ([]byte, error) {
	return nil, fmt.Errorf("%w: permission denied", artifact.ErrStorage)
}

type fixture struct {
	svc   *reports.Service
	store *local.Store
}

func newFixture(t *testing.T, client llm.Client, renderer reports.Renderer) fixture {
	t.Helper()
	store, err := local.New(t.TempDir())
	if err != nil {
		t.Fatalf("local store: %v", err)
	}
	if renderer == nil {
		renderer = render.NewPDFRenderer()
	}
	svc := &reports.Service{
		Scorer:        assessment.DefaultScorer(),
		Goals:         career.NewExtractor(client, time.Second),
		Sections:      reports.NewSectionGenerator(client, time.Second, 3),
		Renderer:      renderer,
		Store:         store,
		RenderTimeout: 5 * time.Second,
	}
	return fixture{svc: svc, store: store}
}

func newRouter(svc *reports.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	reports.NewHandler(svc).RegisterRoutes(router.Group("/api"))
	return router
}

var errBackend = errors.New("backend unavailable")
