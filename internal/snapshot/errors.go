package snapshot

import (
	"errors"
	"fmt"
)

// Stage names the step of a snapshot run that failed
type Stage string

const (
	StageList     Stage = "list"
	StageRetrieve Stage = "retrieve"
	StageRender   Stage = "render"
	StageWrite    Stage = "write"
	StageLatest   Stage = "latest"
)

// Error carries the failing stage and its cause. Remote failures come from
// StageList and StageRetrieve; the rest are local.
type Error struct {
	Stage Stage
	// RunID is set once a run has been picked from the list
	RunID string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsRemote reports whether the failure came from the Trigger.dev API
func (e *Error) IsRemote() bool {
	return e.Stage == StageList || e.Stage == StageRetrieve
}

// StageOf returns the stage of err, or "" if it is not a snapshot error
func StageOf(err error) Stage {
	var se *Error
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}

// RunIDOf returns the run a snapshot error refers to, if any
func RunIDOf(err error) string {
	var se *Error
	if errors.As(err, &se) {
		return se.RunID
	}
	return ""
}

func stageErr(stage Stage, err error) error {
	return &Error{Stage: stage, Err: err}
}

func runErr(stage Stage, runID string, err error) error {
	return &Error{Stage: stage, RunID: runID, Err: err}
}
