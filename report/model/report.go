package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrAssembly marks a structurally invalid report.
var ErrAssembly = errors.New("invalid report")

// Section is one generated topic of a report.
type Section struct {
	TopicID string `json:"topic_id"`
	Title   string `json:"title"`
	Body    string `json:"body"`
}

// Report is the full ordered career guidance document.
type Report struct {
	StudentName string    `json:"student_name"`
	CareerGoal  string    `json:"career_goal"`
	Sections    []Section `json:"sections"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Validate enforces the fields every renderable report needs.
func (r Report) Validate() error {
	if strings.TrimSpace(r.StudentName) == "" {
		return fmt.Errorf("%w: student name is required", ErrAssembly)
	}
	if strings.TrimSpace(r.CareerGoal) == "" {
		return fmt.Errorf("%w: career goal is required", ErrAssembly)
	}
	if len(r.Sections) == 0 {
		return fmt.Errorf("%w: at least one section is required", ErrAssembly)
	}
	for i, s := range r.Sections {
		if strings.TrimSpace(s.TopicID) == "" {
			return fmt.Errorf("%w: sections[%d] has no topic", ErrAssembly, i)
		}
	}
	return nil
}

// Clone returns a copy that shares no section storage with r.
func (r Report) Clone() Report {
	out := r
	out.Sections = append([]Section(nil), r.Sections...)
	return out
}
