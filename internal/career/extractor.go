package career

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"career-backend/internal/assessment"
	"career-backend/internal/llm"
)

// ErrNoGoal is returned when no usable career goal can be inferred.
var ErrNoGoal = errors.New("no career goal")

// Goal is a non-empty career label.
type Goal string

func (g Goal) String() string { return string(g) }

// Extractor infers a career goal from answer values.
type Extractor struct {
	Vocabulary Vocabulary
	// LLM is consulted only when the vocabulary finds nothing. Nil disables the fallback.
	LLM     llm.Client
	Timeout time.Duration
}

// NewExtractor builds an extractor over the embedded vocabulary.
func NewExtractor(client llm.Client, timeout time.Duration) *Extractor {
	return &Extractor{
		Vocabulary: DefaultVocabulary(),
		LLM:        client,
		Timeout:    timeout,
	}
}

// Extract returns the strongest career signal among values, which are read in order.
func (e *Extractor) Extract(ctx context.Context, values []any) (Goal, error) {
	texts := make([]string, 0, len(values))
	for _, v := range values {
		if s := strings.TrimSpace(assessment.Stringify(v)); s != "" {
			texts = append(texts, s)
		}
	}
	if len(texts) == 0 {
		return "", fmt.Errorf("%w: no answer values", ErrNoGoal)
	}

	if label, ok := e.Vocabulary.Match(texts); ok {
		return Goal(label), nil
	}
	if e.LLM == nil {
		return "", fmt.Errorf("%w: no vocabulary match", ErrNoGoal)
	}

	prompt, err := llm.GoalPrompt(texts)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoGoal, err)
	}
	callCtx := ctx
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}
	raw, err := e.LLM.Complete(callCtx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: generate: %v", ErrNoGoal, err)
	}
	goal := cleanGoal(raw)
	if goal == "" {
		return "", fmt.Errorf("%w: blank model output", ErrNoGoal)
	}
	return Goal(goal), nil
}

// cleanGoal keeps the first non-empty line without markdown, quotes or a "Career goal:" label.
func cleanGoal(raw string) string {
	for _, line := range strings.Split(raw, "\n") {
		line = trimMarkup(line)
		if idx := strings.Index(line, ":"); idx >= 0 && strings.EqualFold(trimMarkup(line[:idx]), "career goal") {
			line = trimMarkup(line[idx+1:])
		}
		if line != "" {
			return line
		}
	}
	return ""
}

func trimMarkup(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "#*->` ")
	s = strings.TrimRight(s, "*` .")
	s = strings.Trim(s, `"'`)
	return strings.TrimSpace(s)
}
