package service

import (
	"fmt"
	"path/filepath"
)

// quickstartURL explains how to create an OAuth client for Google Tasks.
const quickstartURL = "https://developers.google.com/workspace/tasks/quickstart/go"

// MissingCredentialsError is returned when the OAuth client secrets file does not exist.
type MissingCredentialsError struct {
	Path string
}

func (e *MissingCredentialsError) Error() string {
	return fmt.Sprintf("%s not found in %s; see %s", filepath.Base(e.Path), filepath.Dir(e.Path), quickstartURL)
}

// Stage names one step of the widget pipeline.
type Stage string

// Widget pipeline stages, in execution order.
const (
	StageCredentials Stage = "locate credentials"
	StageAuthorize   Stage = "authorize"
	StageFetch       Stage = "fetch tasks"
)

// StageError wraps the failure of a single pipeline stage.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
