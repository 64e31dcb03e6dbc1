package render

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"sync"
	"time"

	"github.com/goliatone/go-view/pkg/render/template"
	"github.com/goliatone/go-view/pkg/render/template/pongo"
)

// Renderer renders named templates with a set of persistent globals and an
// optional layout. It is safe for concurrent use: every top-level Render
// gets its own Scope, so state changed by templates never leaks between
// render trees.
type Renderer struct {
	mu       sync.RWMutex
	basePath string
	globals  map[string]any
	layout   string

	helpers   *HelperRegistry
	evaluator template.Evaluator
	resolver  Resolver
	logger    *slog.Logger
}

// New constructs a Renderer resolving template names against basePath.
// The escaping helpers "e" and "j" are always registered.
func New(basePath string, options ...Option) (*Renderer, error) {
	cfg := config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	r := &Renderer{
		basePath: basePath,
		globals:  make(map[string]any, len(cfg.globals)),
		layout:   cfg.layout,
		helpers:  NewHelperRegistry(),
		logger:   cfg.logger,
	}
	maps.Copy(r.globals, cfg.globals)
	if r.logger == nil {
		r.logger = slog.New(slog.DiscardHandler)
	}

	filesystem := cfg.filesystem
	r.resolver = cfg.resolver
	if r.resolver == nil {
		resolver, err := NewFileResolver(cfg.filesystem, basePath)
		if err != nil {
			return nil, err
		}
		r.resolver = resolver
		r.basePath = resolver.Base()
		filesystem = resolver.Filesystem()
	}

	r.evaluator = cfg.evaluator
	if r.evaluator == nil {
		engine, err := pongo.New(pongo.WithFilesystem(filesystem))
		if err != nil {
			return nil, fmt.Errorf("render: configure evaluator: %w", err)
		}
		r.evaluator = engine
	}

	r.helpers.MustRegister(HelperEscapeHTML, escapeHTMLHelper)
	r.helpers.MustRegister(HelperEscapeSlash, escapeSlashHelper)
	for _, h := range cfg.helpers {
		if err := r.helpers.Register(h.name, h.helper); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// BasePath returns the canonical directory template names resolve against.
// With a custom resolver it is the resolver's base when it reports one.
func (r *Renderer) BasePath() string {
	if based, ok := r.resolver.(interface{ Base() string }); ok {
		return based.Base()
	}
	return r.basePath
}

// Render renders the named template with data and decorates the result with
// the current layout. Keys in data shadow globals. The output is also copied
// into any supplied writers.
func (r *Renderer) Render(ctx context.Context, name string, data map[string]any, out ...io.Writer) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	start := time.Now()
	scope := newScope(ctx, r)
	rendered, err := scope.Render(name, data)
	if err != nil {
		r.logger.Debug("render failed",
			"template", name,
			"path", scope.rendered,
			"duration", time.Since(start),
			"error", err,
		)
		return "", err
	}
	r.logger.Debug("rendered template",
		"template", name,
		"path", scope.rendered,
		"bytes", len(rendered),
		"duration", time.Since(start),
	)

	if err := template.WriteAll(rendered, out...); err != nil {
		return "", fmt.Errorf("render: write output: %w", err)
	}
	return rendered, nil
}

// SetGlobals replaces the persistent globals.
func (r *Renderer) SetGlobals(globals map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.globals = make(map[string]any, len(globals))
	maps.Copy(r.globals, globals)
}

// AddGlobals merges globals into the persistent globals. New keys win.
func (r *Renderer) AddGlobals(globals map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	maps.Copy(r.globals, globals)
}

// SetGlobal sets a single persistent global.
func (r *Renderer) SetGlobal(name string, value any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.globals[name] = value
}

// Globals returns a copy of the persistent globals.
func (r *Renderer) Globals() map[string]any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return maps.Clone(r.globals)
}

// Get returns a persistent global, or nil when unset.
func (r *Renderer) Get(name string) any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.globals[name]
}

// SetLayout sets the default layout. An empty name disables decoration.
func (r *Renderer) SetLayout(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.layout = name
}

// Layout returns the default layout name.
func (r *Renderer) Layout() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.layout
}

// AddHelper registers helper under name, replacing any existing helper.
func (r *Renderer) AddHelper(name string, helper Helper) error {
	return r.helpers.Register(name, helper)
}

// Helpers returns the sorted names of the registered helpers.
func (r *Renderer) Helpers() []string {
	return r.helpers.List()
}

// Call invokes a registered helper outside of any render tree, so state the
// helper changes is persistent.
func (r *Renderer) Call(ctx context.Context, name string, args ...any) (any, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	return newScope(ctx, r).Call(name, args...)
}
