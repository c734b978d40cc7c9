package llm

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"
)

var (
	//go:embed prompts/goal.tmpl
	goalPromptText string
	//go:embed prompts/section.tmpl
	sectionPromptText string

	goalPrompt    = template.Must(template.New("goal").Parse(goalPromptText))
	sectionPrompt = template.Must(template.New("section").Parse(sectionPromptText))
)

// SectionInput seeds one section prompt.
type SectionInput struct {
	StudentName  string
	Goal         string
	Context      string
	Title        string
	Instructions string
}

// GoalPrompt builds the goal extraction prompt from answer texts.
func GoalPrompt(answers []string) (string, error) {
	var b strings.Builder
	if err := goalPrompt.Execute(&b, struct{ Answers []string }{answers}); err != nil {
		return "", fmt.Errorf("render goal prompt: %w", err)
	}
	return b.String(), nil
}

// SectionPrompt builds the prompt for one report section.
func SectionPrompt(in SectionInput) (string, error) {
	var b strings.Builder
	if err := sectionPrompt.Execute(&b, in); err != nil {
		return "", fmt.Errorf("render section prompt: %w", err)
	}
	return b.String(), nil
}
