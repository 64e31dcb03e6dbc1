package pongo

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/flosch/pongo2/v6"
	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/goliatone/go-view/pkg/render/template"
)

// Option configures the pongo2 adapter before construction.
type Option func(*config)

type config struct {
	filesystem billy.Filesystem
	templateFn map[string]any
}

// WithFilesystem loads template sources through the provided billy
// filesystem instead of the host OS.
func WithFilesystem(fsys billy.Filesystem) Option {
	return func(cfg *config) {
		if fsys != nil {
			cfg.filesystem = fsys
		}
	}
}

// WithBaseDir confines template loading to dir on the host filesystem.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		dir = strings.TrimSpace(dir)
		if dir == "" {
			return
		}
		cfg.filesystem = osfs.New(dir)
	}
}

// WithTemplateFunc registers helper functions or filters when the engine loads.
func WithTemplateFunc(funcs map[string]any) Option {
	return func(cfg *config) {
		if len(funcs) == 0 {
			return
		}
		if cfg.templateFn == nil {
			cfg.templateFn = make(map[string]any, len(funcs))
		}
		for name, fn := range funcs {
			cfg.templateFn[strings.TrimSpace(name)] = fn
		}
	}
}

// Engine satisfies template.Evaluator using a pongo2 template set. Templates
// are parsed on every evaluation so edits on disk are picked up immediately.
type Engine struct {
	templateSet *pongo2.TemplateSet
}

// Ensure Engine implements the Evaluator interface.
var _ template.Evaluator = (*Engine)(nil)

// New constructs an Engine using the provided configuration options.
func New(options ...Option) (*Engine, error) {
	cfg := &config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}
	if cfg.filesystem == nil {
		cfg.filesystem = osfs.New("")
	}

	engine := &Engine{
		templateSet: pongo2.NewSet("view", newLoader(cfg.filesystem)),
	}

	for name, fn := range cfg.templateFn {
		if err := engine.registerTemplateFunc(name, fn); err != nil {
			return nil, fmt.Errorf("pongo: register template func %q: %w", name, err)
		}
	}

	return engine, nil
}

// Evaluate executes the template stored at path with scope as its context.
func (e *Engine) Evaluate(path string, scope map[string]any, out ...io.Writer) (string, error) {
	if e == nil || e.templateSet == nil {
		return "", errors.New("pongo: engine is nil")
	}

	tmpl, err := e.templateSet.FromFile(path)
	if err != nil {
		return "", fmt.Errorf("pongo: load template %q: %w", path, wrapPongoError(err))
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(convertToContext(scope), &buf); err != nil {
		return "", fmt.Errorf("pongo: execute template %q: %w", path, wrapPongoError(err))
	}

	rendered := buf.String()
	if err := template.WriteAll(rendered, out...); err != nil {
		return "", err
	}
	return rendered, nil
}

// RegisterFilter registers a template filter. pongo2 filters are process
// wide, so registering an existing name is an error.
func (e *Engine) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	if strings.TrimSpace(name) == "" || fn == nil {
		return errors.New("pongo: filter name and function required")
	}

	filter := func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var paramVal any
		if param != nil {
			paramVal = param.Interface()
		}
		result, err := fn(in.Interface(), paramVal)
		if err != nil {
			return nil, &pongo2.Error{Sender: "custom_filter", OrigError: err}
		}
		return pongo2.AsValue(result), nil
	}

	if pongo2.FilterExists(name) {
		return fmt.Errorf("pongo: filter %q already exists", name)
	}
	return pongo2.RegisterFilter(name, filter)
}

func (e *Engine) registerTemplateFunc(name string, fn any) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || fn == nil {
		return nil
	}

	if filter, ok := fn.(pongo2.FilterFunction); ok {
		if pongo2.FilterExists(trimmed) {
			return nil
		}
		return pongo2.RegisterFilter(trimmed, filter)
	}

	if !isCallable(fn) {
		return fmt.Errorf("value of type %T is not a function", fn)
	}

	if e.templateSet.Globals == nil {
		e.templateSet.Globals = make(pongo2.Context)
	}
	e.templateSet.Globals[trimmed] = fn
	return nil
}

// executeError keeps pongo2's positional message while exposing the
// underlying cause to errors.Is and errors.As.
type executeError struct {
	perr *pongo2.Error
}

func (e *executeError) Error() string {
	return e.perr.Error()
}

func (e *executeError) Unwrap() error {
	return e.perr.OrigError
}

func wrapPongoError(err error) error {
	var perr *pongo2.Error
	if errors.As(err, &perr) && perr.OrigError != nil {
		return &executeError{perr: perr}
	}
	return err
}

func isCallable(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	return rv.IsValid() && rv.Kind() == reflect.Func
}

func convertToContext(scope map[string]any) pongo2.Context {
	out := make(pongo2.Context, len(scope))
	for key, value := range scope {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		out[key] = convertValue(value)
	}
	return out
}

func convertValue(value any) any {
	switch v := value.(type) {
	case nil:
		return nil
	case *pongo2.Value:
		return v
	case template.View:
		return &receiver{view: v}
	case template.Markup:
		return pongo2.AsSafeValue(string(v))
	case pongo2.Context:
		return convertMap(map[string]any(v))
	case map[string]any:
		return convertMap(v)
	case []any:
		return convertSlice(v)
	default:
		return v
	}
}

func convertMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = convertValue(value)
	}
	return out
}

func convertSlice(in []any) []any {
	out := make([]any, 0, len(in))
	for _, value := range in {
		out = append(out, convertValue(value))
	}
	return out
}
