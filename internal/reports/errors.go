package reports

import (
	"errors"
	"fmt"
)

// ErrGeneration marks a section generation failure.
var ErrGeneration = errors.New("section generation failed")

// Pipeline stages, in execution order.
const (
	StageScoring    = "scoring"
	StageExtraction = "extraction"
	StageGeneration = "generation"
	StageAssembly   = "assembly"
	StageRender     = "render"
	StageStorage    = "storage"
)

// StageError records which pipeline stage failed.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// StageOf returns the failed stage recorded in err, if any.
func StageOf(err error) string {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}
