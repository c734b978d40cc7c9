package reports

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"career-backend/internal/career"
	"career-backend/internal/llm"
	"career-backend/report/model"
)

// SectionGenerator produces one narrative section per topic.
type SectionGenerator struct {
	LLM    llm.Client
	Topics []Topic
	// Timeout bounds each generation call. Zero disables it.
	Timeout time.Duration
	// Concurrency caps in-flight calls. Values below 1 mean one call at a time.
	Concurrency int
}

// NewSectionGenerator builds a generator over DefaultTopics.
func NewSectionGenerator(client llm.Client, timeout time.Duration, concurrency int) *SectionGenerator {
	return &SectionGenerator{
		LLM:         client,
		Topics:      DefaultTopics,
		Timeout:     timeout,
		Concurrency: concurrency,
	}
}

// Generate returns sections for every topic in topic order, or fails as a whole.
// The first failed or empty call cancels the calls still running.
func (g *SectionGenerator) Generate(ctx context.Context, contextText string, goal career.Goal, studentName string) ([]model.Section, error) {
	if g.LLM == nil {
		return nil, fmt.Errorf("%w: no generation client", ErrGeneration)
	}
	if len(g.Topics) == 0 {
		return nil, fmt.Errorf("%w: no topics configured", ErrGeneration)
	}

	limit := g.Concurrency
	if limit < 1 {
		limit = 1
	}
	sections := make([]model.Section, len(g.Topics))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)

	for i, topic := range g.Topics {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return fmt.Errorf("%w: topic %s: %v", ErrGeneration, topic.ID, err)
			}
			body, err := g.generateOne(egCtx, topic, contextText, goal, studentName)
			if err != nil {
				return fmt.Errorf("%w: topic %s: %v", ErrGeneration, topic.ID, err)
			}
			sections[i] = model.Section{TopicID: topic.ID, Title: topic.Title, Body: body}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return sections, nil
}

func (g *SectionGenerator) generateOne(ctx context.Context, topic Topic, contextText string, goal career.Goal, studentName string) (string, error) {
	prompt, err := llm.SectionPrompt(llm.SectionInput{
		StudentName:  studentName,
		Goal:         goal.String(),
		Context:      contextText,
		Title:        topic.Title,
		Instructions: topic.Instructions,
	})
	if err != nil {
		return "", err
	}
	if g.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.Timeout)
		defer cancel()
	}
	body, err := g.LLM.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return "", llm.ErrEmptyResponse
	}
	return body, nil
}
