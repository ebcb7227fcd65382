// Package walk enumerates the regular files under a directory.
//
// The walk uses an explicit work list instead of recursion, visits directory
// entries in lexical order, and yields files depth-first in pre-order.
// Symbolic links are followed; a link that resolves to one of its own
// ancestor directories is reported and skipped.
package walk

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"

	"github.com/meigma/zov/internal/format"
	"github.com/meigma/zov/internal/zovtype"
)

// File is a regular file found during a walk.
type File struct {
	// Path is the operating system path of the file.
	Path string

	// Name is the slash-separated path relative to the walk root.
	Name string

	// Info describes the file, following symlinks.
	Info fs.FileInfo
}

// WarnFunc receives per-item problems. The walk continues after calling it.
type WarnFunc func(name string, err error)

// Option configures a walk.
type Option func(*walker)

// WithWarn sets the callback for skipped items.
func WithWarn(fn WarnFunc) Option {
	return func(w *walker) {
		w.warn = fn
	}
}

// WithMaxNameLen rejects files whose relative name is longer than n bytes.
// Zero uses format.MaxNameLen.
func WithMaxNameLen(n int) Option {
	return func(w *walker) {
		w.maxNameLen = n
	}
}

// WithExclude skips any item that is the same file as one of infos.
func WithExclude(infos ...fs.FileInfo) Option {
	return func(w *walker) {
		for _, info := range infos {
			if info != nil {
				w.exclude = append(w.exclude, info)
			}
		}
	}
}

type walker struct {
	warn       WarnFunc
	maxNameLen int
	exclude    []fs.FileInfo
}

// node is a pending work-list item.
type node struct {
	path      string
	name      string
	info      fs.FileInfo
	ancestors []fs.FileInfo
}

// Walk calls fn for every regular file under root. An error from fn stops
// the walk and is returned unchanged.
func Walk(ctx context.Context, root string, fn func(File) error, opts ...Option) error {
	w := &walker{maxNameLen: format.MaxNameLen}
	for _, opt := range opts {
		opt(w)
	}
	if w.maxNameLen <= 0 {
		w.maxNameLen = format.MaxNameLen
	}

	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", zovtype.ErrNotDirectory, root)
	}

	stack := []node{{path: root, info: info}}
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !n.info.IsDir() {
			if err := fn(File{Path: n.path, Name: n.name, Info: n.info}); err != nil {
				return err
			}
			continue
		}

		children := w.readDir(n)
		for _, child := range slices.Backward(children) {
			stack = append(stack, child)
		}
	}
	return nil
}

// readDir returns the walkable children of dir in lexical order.
func (w *walker) readDir(dir node) []node {
	entries, err := os.ReadDir(dir.path)
	if err != nil {
		w.report(dir.name, err)
		if len(entries) == 0 {
			return nil
		}
	}

	chain := append(slices.Clip(dir.ancestors), dir.info)
	children := make([]node, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if dir.name != "" {
			name = path.Join(dir.name, e.Name())
		}
		p := filepath.Join(dir.path, e.Name())

		info, err := os.Stat(p)
		if err != nil {
			w.report(name, err)
			continue
		}
		if w.excluded(info) {
			continue
		}

		switch {
		case info.IsDir():
			if loops(chain, info) {
				w.report(name, zovtype.ErrSymlinkLoop)
				continue
			}
			children = append(children, node{path: p, name: name, info: info, ancestors: chain})
		case info.Mode().IsRegular():
			if len(name) > w.maxNameLen {
				w.report(name, fmt.Errorf("%w: %d bytes", zovtype.ErrNameTooLong, len(name)))
				continue
			}
			children = append(children, node{path: p, name: name, info: info})
		default:
			w.report(name, fmt.Errorf("%w: %s", zovtype.ErrNotRegular, info.Mode().Type()))
		}
	}
	return children
}

func (w *walker) excluded(info fs.FileInfo) bool {
	for _, ex := range w.exclude {
		if os.SameFile(ex, info) {
			return true
		}
	}
	return false
}

func (w *walker) report(name string, err error) {
	if w.warn == nil {
		return
	}
	if name == "" {
		name = "."
	}
	w.warn(name, err)
}

// loops reports whether info is the same directory as any ancestor.
func loops(ancestors []fs.FileInfo, info fs.FileInfo) bool {
	for _, a := range ancestors {
		if os.SameFile(a, info) {
			return true
		}
	}
	return false
}
