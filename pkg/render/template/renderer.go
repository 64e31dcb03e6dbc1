package template

import (
	"io"
)

const (
	// ContentKey carries the decorated template output into a layout.
	ContentKey = "_content"
	// ReceiverKey exposes the active View inside a template. Callers may not
	// pass it as render data.
	ReceiverKey = "view"
)

// Evaluator executes the template stored at path with every scope entry
// available as a same-named variable. A hard execution failure must be
// reported as an error; empty output is a valid result.
type Evaluator interface {
	Evaluate(path string, scope map[string]any, out ...io.Writer) (string, error)
}

// EvaluatorFunc adapts a plain function to the Evaluator contract.
type EvaluatorFunc func(path string, scope map[string]any) (string, error)

// Evaluate calls f and copies the result into any supplied writers.
func (f EvaluatorFunc) Evaluate(path string, scope map[string]any, out ...io.Writer) (string, error) {
	rendered, err := f(path, scope)
	if err != nil {
		return "", err
	}
	if err := WriteAll(rendered, out...); err != nil {
		return "", err
	}
	return rendered, nil
}

// View is the receiver templates and helpers use to call back into the
// renderer while a render tree is in flight.
type View interface {
	Render(name string, data map[string]any) (string, error)
	SetGlobal(name string, value any)
	SetGlobals(globals map[string]any)
	AddGlobals(globals map[string]any)
	Globals() map[string]any
	Get(name string) any
	SetLayout(name string)
	Call(name string, args ...any) (any, error)
}

// Markup is rendered output that evaluators must emit verbatim instead of
// escaping it again.
type Markup string

// String returns the raw markup.
func (m Markup) String() string {
	return string(m)
}

// WriteAll writes rendered to every writer, stopping at the first error.
func WriteAll(rendered string, out ...io.Writer) error {
	for _, w := range out {
		if w == nil {
			continue
		}
		if _, err := io.WriteString(w, rendered); err != nil {
			return err
		}
	}
	return nil
}
