package render

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidArgument reports an empty template name, a reserved key in
	// render data, or an invalid helper registration.
	ErrInvalidArgument = errors.New("render: invalid argument")
	// ErrNotFound reports a template file that does not exist.
	ErrNotFound = errors.New("render: template not found")
	// ErrUnreadable reports a template file that exists but cannot be read.
	ErrUnreadable = errors.New("render: template not readable")
	// ErrRenderFailure reports a hard failure of the template evaluator.
	ErrRenderFailure = errors.New("render: rendering failed")
	// ErrUnknownHelper reports a call to a helper that is not registered.
	ErrUnknownHelper = errors.New("render: unknown helper")
)

// RenderError describes an evaluator failure for a single template. Cause
// holds the nested render failure that aborted the evaluation, if any.
type RenderError struct {
	Template string
	Path     string
	Err      error
	Cause    error
}

func (e *RenderError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("render: rendering of %s failed", e.Path)
	}
	return fmt.Sprintf("render: rendering of %s failed: %v", e.Path, e.Err)
}

// Is reports ErrRenderFailure so callers can match the error class.
func (e *RenderError) Is(target error) bool {
	return target == ErrRenderFailure
}

func (e *RenderError) Unwrap() []error {
	var out []error
	if e.Cause != nil {
		out = append(out, e.Cause)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

// UnknownHelperError is returned when dispatching to an unregistered helper.
type UnknownHelperError struct {
	Name  string
	Known []string
}

func (e *UnknownHelperError) Error() string {
	return fmt.Sprintf("render: unknown helper %q - loaded helpers are: %s", e.Name, strings.Join(e.Known, ", "))
}

func (e *UnknownHelperError) Is(target error) bool {
	return target == ErrUnknownHelper
}

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
