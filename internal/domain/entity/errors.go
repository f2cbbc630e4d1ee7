package entity

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidURL     = errors.New("invalid url")
	ErrUnknownCaptcha = errors.New("unknown captcha")
	ErrBrowserClosed  = errors.New("browser closed")
	ErrTimeout        = errors.New("wait timed out")
)

// StepError reports the scenario step that aborted a run.
type StepError struct {
	Index int
	Step  Step
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index+1, e.Step.Name, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
