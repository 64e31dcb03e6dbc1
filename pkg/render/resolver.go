package render

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// Resolver maps a template name to the path handed to the evaluator and
// verifies the file can be read.
type Resolver interface {
	Resolve(name string) (string, error)
}

// FileResolver resolves names by prefixing a canonical base path and
// checking the result on a billy filesystem.
type FileResolver struct {
	fs   billy.Filesystem
	base string
}

// NewFileResolver builds a resolver rooted at base. An empty base means
// names are already complete paths. When fsys is nil the host filesystem is
// used and symlinks in base are evaluated.
func NewFileResolver(fsys billy.Filesystem, base string) (*FileResolver, error) {
	hostFS := fsys == nil
	if hostFS {
		fsys = HostFilesystem()
	}
	canonical, err := canonicalBase(base, hostFS)
	if err != nil {
		return nil, err
	}
	return &FileResolver{fs: fsys, base: canonical}, nil
}

// HostFilesystem returns the operating system filesystem, unrooted so both
// absolute and working-directory relative names resolve.
func HostFilesystem() billy.Filesystem {
	return osfs.New("")
}

// Base returns the canonical base path, including its trailing separator.
func (r *FileResolver) Base() string {
	return r.base
}

// Filesystem returns the filesystem templates are read from.
func (r *FileResolver) Filesystem() billy.Filesystem {
	return r.fs
}

// Resolve joins base and name and checks the file exists and can be opened.
func (r *FileResolver) Resolve(name string) (string, error) {
	if name == "" {
		return "", invalidArgument("template name cannot be empty")
	}

	path := r.base + name
	info, err := r.fs.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return "", fmt.Errorf("%w: %s: %w", ErrUnreadable, path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrNotFound, path)
	}

	f, err := r.fs.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrUnreadable, path, err)
	}
	_ = f.Close()

	return path, nil
}

func canonicalBase(base string, hostFS bool) (string, error) {
	if strings.TrimSpace(base) == "" {
		return "", nil
	}

	abs, err := filepath.Abs(base)
	if err != nil {
		return "", fmt.Errorf("render: base path %q: %w", base, err)
	}
	if hostFS {
		if resolved, err := filepath.EvalSymlinks(abs); err == nil {
			abs = resolved
		}
	}

	sep := string(filepath.Separator)
	if !strings.HasSuffix(abs, sep) {
		abs += sep
	}
	return abs, nil
}
