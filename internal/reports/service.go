package reports

import (
	"context"
	"errors"
	"fmt"
	"time"

	"career-backend/internal/assessment"
	"career-backend/internal/career"
	"career-backend/internal/shared/metrics"
	"career-backend/internal/shared/storage/artifact"
	"career-backend/internal/shared/telemetry"
	"career-backend/report/model"
	"career-backend/report/render"
)

// GoalExtractor infers a career goal from ordered answer values.
type GoalExtractor interface {
	Extract(ctx context.Context, values []any) (career.Goal, error)
}

// Generator produces the ordered report sections.
type Generator interface {
	Generate(ctx context.Context, contextText string, goal career.Goal, studentName string) ([]model.Section, error)
}

// Renderer serializes a report into document bytes.
type Renderer interface {
	Render(ctx context.Context, report model.Report) ([]byte, error)
}

// Result describes a stored report.
type Result struct {
	Name       string
	CareerGoal career.Goal
	Sections   int
	SizeBytes  int
}

// Service runs the assessment-to-document pipeline.
type Service struct {
	Scorer   *assessment.Scorer
	Goals    GoalExtractor
	Sections Generator
	Renderer Renderer
	Store    artifact.Store
	// RenderTimeout bounds the render stage. Zero disables it.
	RenderTimeout time.Duration
	Now           func() time.Time
}

// Submit scores, extracts, generates, assembles, renders and stores one submission.
// Any stage failure stops the run and is returned as a *StageError; nothing is stored unless every earlier stage succeeded.
func (s *Service) Submit(ctx context.Context, sub assessment.Submission) (Result, error) {
	if s.Scorer == nil || s.Goals == nil || s.Sections == nil || s.Renderer == nil || s.Store == nil {
		return Result{}, errors.New("missing dependencies")
	}
	now := s.Now
	if now == nil {
		now = time.Now
	}
	start := now()
	metrics.IncSubmitted()

	scores, err := s.Scorer.CalculateScores(sub.Answers)
	if err != nil {
		return Result{}, s.fail(StageScoring, err)
	}
	profile := assessment.BuildProfile(sub)

	goal, err := s.Goals.Extract(ctx, sub.Answers.Values())
	if err != nil {
		return Result{}, s.fail(StageExtraction, err)
	}

	contextText, err := BuildContext(scores, profile)
	if err != nil {
		return Result{}, s.fail(StageGeneration, fmt.Errorf("%w: %v", ErrGeneration, err))
	}
	sections, err := s.Sections.Generate(ctx, contextText, goal, profile.Name)
	if err != nil {
		return Result{}, s.fail(StageGeneration, err)
	}

	report, err := BuildReport(profile.Name, goal, sections)
	if err != nil {
		return Result{}, s.fail(StageAssembly, err)
	}
	report.GeneratedAt = now()

	pdf, err := s.render(ctx, report)
	if err != nil {
		return Result{}, s.fail(StageRender, err)
	}

	name := artifact.NameFor(profile.Name)
	id, err := s.Store.Save(ctx, name, pdf)
	if err != nil {
		return Result{}, s.fail(StageStorage, err)
	}

	elapsed := now().Sub(start)
	metrics.IncCompleted()
	metrics.ObserveReportDurationMs(float64(elapsed.Milliseconds()))
	telemetry.Info("report.completed", map[string]any{
		"artifact":    id,
		"career_goal": goal.String(),
		"sections":    len(report.Sections),
		"size_bytes":  len(pdf),
		"duration_ms": elapsed.Milliseconds(),
	})

	return Result{
		Name:       id,
		CareerGoal: goal,
		Sections:   len(report.Sections),
		SizeBytes:  len(pdf),
	}, nil
}

// Download returns the stored document for name.
func (s *Service) Download(ctx context.Context, name string) ([]byte, error) {
	if s.Store == nil {
		return nil, errors.New("missing dependencies")
	}
	return s.Store.Load(ctx, name)
}

type renderResult struct {
	data []byte
	err  error
}

func (s *Service) render(ctx context.Context, report model.Report) ([]byte, error) {
	if s.RenderTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.RenderTimeout)
		defer cancel()
	}
	done := make(chan renderResult, 1)
	go func() {
		data, err := s.Renderer.Render(ctx, report)
		done <- renderResult{data: data, err: err}
	}()
	select {
	case res := <-done:
		if res.err != nil && !errors.Is(res.err, render.ErrRender) {
			return nil, fmt.Errorf("%w: %w", render.ErrRender, res.err)
		}
		return res.data, res.err
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", render.ErrRender, ctx.Err())
	}
}

func (s *Service) fail(stage string, err error) error {
	metrics.IncFailed(stage)
	telemetry.Error("report.stage.failed", map[string]any{
		"stage": stage,
		"error": err,
	})
	return &StageError{Stage: stage, Err: err}
}
