// Package view is the entry point of go-view, a small template renderer with
// persistent globals, per-render tree globals and single layout decoration.
//
// The implementation lives in pkg/render; this package re-exports what most
// callers need.
package view

import (
	"github.com/goliatone/go-view/pkg/render"
	"github.com/goliatone/go-view/pkg/render/template"
)

// Reserved scope names.
const (
	// ContentKey holds the decorated output inside a layout.
	ContentKey = template.ContentKey
	// ReceiverKey exposes the active view to templates and cannot be passed
	// as render data.
	ReceiverKey = template.ReceiverKey
)

// Renderer renders named templates. See render.Renderer.
type Renderer = render.Renderer

// Option configures a Renderer.
type Option = render.Option

// Helper is a named function callable from templates.
type Helper = render.Helper

// View is the receiver handed to templates and helpers.
type View = template.View

// Markup is rendered output that evaluators must not escape again.
type Markup = template.Markup

// Renderer options.
var (
	WithGlobals    = render.WithGlobals
	WithLayout     = render.WithLayout
	WithHelper     = render.WithHelper
	WithEvaluator  = render.WithEvaluator
	WithResolver   = render.WithResolver
	WithFilesystem = render.WithFilesystem
	WithLogger     = render.WithLogger
)

// New constructs a Renderer resolving template names against basePath.
func New(basePath string, options ...Option) (*Renderer, error) {
	return render.New(basePath, options...)
}
