package render

import (
	"log/slog"
	"maps"

	billy "github.com/go-git/go-billy/v5"

	"github.com/goliatone/go-view/pkg/render/template"
)

// Option configures a Renderer before construction.
type Option func(*config)

type namedHelper struct {
	name   string
	helper Helper
}

type config struct {
	globals    map[string]any
	layout     string
	helpers    []namedHelper
	evaluator  template.Evaluator
	resolver   Resolver
	filesystem billy.Filesystem
	logger     *slog.Logger
}

// WithGlobals seeds the persistent globals visible to every render.
func WithGlobals(globals map[string]any) Option {
	return func(cfg *config) {
		if len(globals) == 0 {
			return
		}
		if cfg.globals == nil {
			cfg.globals = make(map[string]any, len(globals))
		}
		maps.Copy(cfg.globals, globals)
	}
}

// WithLayout sets the default layout used to decorate top-level renders.
func WithLayout(name string) Option {
	return func(cfg *config) {
		cfg.layout = name
	}
}

// WithHelper registers an additional helper, replacing a default of the
// same name.
func WithHelper(name string, helper Helper) Option {
	return func(cfg *config) {
		cfg.helpers = append(cfg.helpers, namedHelper{name: name, helper: helper})
	}
}

// WithEvaluator injects a custom template evaluator. The default is a pongo2
// engine reading from the renderer's filesystem.
func WithEvaluator(evaluator template.Evaluator) Option {
	return func(cfg *config) {
		if evaluator != nil {
			cfg.evaluator = evaluator
		}
	}
}

// WithResolver injects a custom template resolver. The base path passed to
// New is ignored when a resolver is supplied.
func WithResolver(resolver Resolver) Option {
	return func(cfg *config) {
		if resolver != nil {
			cfg.resolver = resolver
		}
	}
}

// WithFilesystem reads templates from fsys instead of the host filesystem.
func WithFilesystem(fsys billy.Filesystem) Option {
	return func(cfg *config) {
		if fsys != nil {
			cfg.filesystem = fsys
		}
	}
}

// WithLogger sets the structured logger. Rendering logs at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}
