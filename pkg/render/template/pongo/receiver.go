package pongo

import (
	"fmt"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-view/pkg/render/template"
)

// receiver exposes a template.View to pongo2. pongo2 only calls functions
// that return one value or a value and an error, so the setters return an
// empty string that prints as nothing.
type receiver struct {
	view template.View
}

// Render includes another template. Its output is already rendered markup.
func (r *receiver) Render(name string) (*pongo2.Value, error) {
	return r.RenderWith(name, nil)
}

// RenderWith includes another template with explicit local data.
func (r *receiver) RenderWith(name string, data map[string]any) (*pongo2.Value, error) {
	out, err := r.view.Render(name, data)
	if err != nil {
		return nil, err
	}
	return pongo2.AsSafeValue(out), nil
}

func (r *receiver) SetLayout(name string) string {
	r.view.SetLayout(name)
	return ""
}

func (r *receiver) SetGlobal(name string, value any) string {
	r.view.SetGlobal(name, value)
	return ""
}

func (r *receiver) AddGlobals(globals map[string]any) string {
	r.view.AddGlobals(globals)
	return ""
}

func (r *receiver) Get(name string) any {
	return r.view.Get(name)
}

// Call dispatches to a registered helper. Helpers produce final markup, so
// string results are not escaped again.
func (r *receiver) Call(name string, args ...any) (*pongo2.Value, error) {
	result, err := r.view.Call(name, args...)
	if err != nil {
		return nil, err
	}
	switch v := result.(type) {
	case string:
		return pongo2.AsSafeValue(v), nil
	case template.Markup:
		return pongo2.AsSafeValue(string(v)), nil
	case fmt.Stringer:
		return pongo2.AsSafeValue(v.String()), nil
	default:
		return pongo2.AsValue(result), nil
	}
}
