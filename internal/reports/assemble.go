package reports

import (
	"encoding/json"
	"fmt"
	"strings"

	"career-backend/internal/assessment"
	"career-backend/internal/career"
	"career-backend/report/model"
)

// BuildContext serializes trait scores and profile into the shared prompt context.
func BuildContext(scores assessment.TraitScores, profile assessment.Profile) (string, error) {
	scoresJSON, err := json.Marshal(scores)
	if err != nil {
		return "", fmt.Errorf("encode trait scores: %w", err)
	}
	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return "", fmt.Errorf("encode student info: %w", err)
	}
	return "Trait Scores: " + string(scoresJSON) + "\nStudent Info: " + string(profileJSON), nil
}

// BuildReport combines identity, goal and sections into a report.
// Sections are copied, so later changes to the input slice do not reach the report.
func BuildReport(studentName string, goal career.Goal, sections []model.Section) (model.Report, error) {
	report := model.Report{
		StudentName: strings.TrimSpace(studentName),
		CareerGoal:  strings.TrimSpace(goal.String()),
		Sections:    append([]model.Section(nil), sections...),
	}
	if err := report.Validate(); err != nil {
		return model.Report{}, err
	}
	return report, nil
}
