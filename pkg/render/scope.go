package render

import (
	"context"
	"errors"
	"maps"
	"strings"

	"github.com/goliatone/go-view/pkg/render/template"
)

// Scope is the state of one render tree. Templates and helpers receive it as
// their template.View. While a render is in flight (depth > 0) its setters
// only affect this tree; at depth 0 they update the Renderer itself.
//
// A Scope is confined to the goroutine running its render tree.
type Scope struct {
	ctx      context.Context
	renderer *Renderer

	depth   int
	root    string
	layout  string
	overlay map[string]any

	// failure records the latest nested render error so the evaluator error
	// it caused can report it as its cause.
	failure error
	// rendered is the root of the last tree, kept for logging.
	rendered string
}

var _ template.View = (*Scope)(nil)

func newScope(ctx context.Context, r *Renderer) *Scope {
	return &Scope{ctx: ctx, renderer: r}
}

// Depth returns the number of nested renders currently in flight.
func (s *Scope) Depth() int {
	return s.depth
}

// Root returns the resolved path of the outermost template, or "" when no
// render is in flight.
func (s *Scope) Root() string {
	return s.root
}

// Layout returns the layout that will decorate the current tree.
func (s *Scope) Layout() string {
	if s.depth == 0 {
		return s.renderer.Layout()
	}
	return s.layout
}

// Render renders name with data. Only the outermost render of a tree is
// decorated with the layout; nested renders see globals but not the data of
// their caller.
func (s *Scope) Render(name string, data map[string]any) (string, error) {
	if name == "" {
		return "", invalidArgument("template name cannot be empty")
	}
	if _, reserved := data[template.ReceiverKey]; reserved {
		return "", invalidArgument("%q is a reserved keyword", template.ReceiverKey)
	}
	if err := s.ctx.Err(); err != nil {
		return "", err
	}

	path, err := s.renderer.resolver.Resolve(name)
	if err != nil {
		return "", s.fail(err)
	}

	if s.depth == 0 {
		s.begin(path)
	}
	s.depth++
	defer s.leave()

	scope := merge(s.Globals(), data)
	scope[template.ReceiverKey] = s

	s.failure = nil
	content, err := s.renderer.evaluator.Evaluate(path, scope)
	if err != nil {
		rerr := &RenderError{Template: name, Path: path, Err: err}
		if causedBy(err, s.failure) {
			rerr.Cause = s.failure
		}
		s.failure = nil
		return "", s.fail(rerr)
	}

	if s.depth == 1 && s.layout != "" {
		layoutData := merge(s.Globals(), data, map[string]any{
			template.ContentKey: template.Markup(content),
		})
		delete(layoutData, template.ReceiverKey)

		content, err = s.Render(s.layout, layoutData)
		if err != nil {
			return "", err
		}
	}

	return content, nil
}

// SetGlobals replaces the tree globals, or the persistent globals at depth 0.
func (s *Scope) SetGlobals(globals map[string]any) {
	if s.depth == 0 {
		s.renderer.SetGlobals(globals)
		return
	}
	s.overlay = maps.Clone(globals)
	if s.overlay == nil {
		s.overlay = map[string]any{}
	}
}

// AddGlobals merges into the tree globals, or the persistent globals at
// depth 0.
func (s *Scope) AddGlobals(globals map[string]any) {
	if s.depth == 0 {
		s.renderer.AddGlobals(globals)
		return
	}
	maps.Copy(s.overlay, globals)
}

// SetGlobal sets one tree global, or a persistent global at depth 0.
func (s *Scope) SetGlobal(name string, value any) {
	if s.depth == 0 {
		s.renderer.SetGlobal(name, value)
		return
	}
	s.overlay[name] = value
}

// Globals returns the persistent globals merged with the tree globals.
func (s *Scope) Globals() map[string]any {
	return merge(s.renderer.Globals(), s.overlay)
}

// Get returns a tree global, then a persistent global, else nil.
func (s *Scope) Get(name string) any {
	if value, ok := s.overlay[name]; ok {
		return value
	}
	return s.renderer.Get(name)
}

// SetLayout sets the layout for this tree, or the default layout at depth 0.
func (s *Scope) SetLayout(name string) {
	if s.depth == 0 {
		s.renderer.SetLayout(name)
		return
	}
	s.layout = name
}

// Call invokes a registered helper with this scope as its view.
func (s *Scope) Call(name string, args ...any) (any, error) {
	helper, err := s.renderer.helpers.Get(name)
	if err != nil {
		return nil, err
	}
	return helper(s, args...)
}

func (s *Scope) begin(path string) {
	s.root = path
	s.rendered = path
	s.layout = s.renderer.Layout()
	s.overlay = map[string]any{}
}

func (s *Scope) leave() {
	s.depth--
	if s.depth == 0 {
		s.root = ""
		s.layout = ""
		s.overlay = nil
	}
}

func (s *Scope) fail(err error) error {
	s.failure = err
	return err
}

// causedBy reports whether the evaluator error err stems from the nested
// failure. Engines that stringify callback errors still carry the message.
func causedBy(err, failure error) bool {
	if failure == nil {
		return false
	}
	return errors.Is(err, failure) || strings.Contains(err.Error(), failure.Error())
}

// merge copies maps left to right; later keys win.
func merge(layers ...map[string]any) map[string]any {
	size := 0
	for _, layer := range layers {
		size += len(layer)
	}
	out := make(map[string]any, size)
	for _, layer := range layers {
		maps.Copy(out, layer)
	}
	return out
}
