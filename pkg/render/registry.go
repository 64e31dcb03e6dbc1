package render

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-view/pkg/render/template"
)

// Helper is a named callable invocable from templates. The active view is
// passed explicitly so helpers can render, read globals, or set a layout.
type Helper func(view template.View, args ...any) (any, error)

// HelperRegistry stores helpers by name.
type HelperRegistry struct {
	mu      sync.RWMutex
	helpers map[string]Helper
}

// NewHelperRegistry creates an empty registry instance.
func NewHelperRegistry() *HelperRegistry {
	return &HelperRegistry{
		helpers: make(map[string]Helper),
	}
}

// Register adds or replaces a helper under name.
func (r *HelperRegistry) Register(name string, helper Helper) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return invalidArgument("helper name is required")
	}
	if helper == nil {
		return invalidArgument("helper %q function is required", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.helpers[name] = helper
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *HelperRegistry) MustRegister(name string, helper Helper) {
	if err := r.Register(name, helper); err != nil {
		panic(err)
	}
}

// Get retrieves a helper by name. Unknown names yield an
// *UnknownHelperError listing the registered helpers.
func (r *HelperRegistry) Get(name string) (Helper, error) {
	r.mu.RLock()
	helper, ok := r.helpers[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &UnknownHelperError{Name: name, Known: r.List()}
	}
	return helper, nil
}

// List returns a sorted list of helper names.
func (r *HelperRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.helpers))
	for name := range r.helpers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a helper is registered.
func (r *HelperRegistry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.helpers[name]
	return ok
}
