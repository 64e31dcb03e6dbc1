package pongo

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"

	billy "github.com/go-git/go-billy/v5"
)

// loader feeds pongo2 template sources from a billy filesystem. Relative
// names used by include/extends resolve against the including template.
type loader struct {
	fs billy.Filesystem
}

func newLoader(fsys billy.Filesystem) *loader {
	return &loader{fs: fsys}
}

func (l *loader) Abs(base, name string) string {
	if filepath.IsAbs(name) || base == "" {
		return name
	}
	return filepath.Join(filepath.Dir(base), name)
}

func (l *loader) Get(path string) (io.Reader, error) {
	f, err := l.fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return bytes.NewReader(data), nil
}
