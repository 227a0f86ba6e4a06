package template

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sync"
)

// mergeFS implements fs.FS
type mergeFS struct {
	// A cache for minimizing ascertaining which directory holds the template.
	cache map[string]fs.FS

	// Directories provided by the app, searched in order.
	userDirs []fs.FS

	// Package-level directory embedding tmpl/
	pkgDir fs.FS

	sync.Mutex
}

// Open opens the file matching the name using the following strategy:
// - check the cache
// - check each user directory in order
// - check the package-level virtual filesystem
//
// Whenever a file is found and is not present in the cache, it is added.
// Nothing removes references from the cache.
//
// If a file is removed from a user directory during runtime,
// then a reference to it from the cache returns the same error (fs.ErrNotExist)
// as if the cache did not have that reference.
func (mfs *mergeFS) Open(name string) (fs.File, error) {
	mfs.Lock()
	dir, ok := mfs.cache[name]
	mfs.Unlock()
	if ok {
		return dir.Open(name)
	}

	for _, d := range append(mfs.userDirs, mfs.pkgDir) {
		file, err := d.Open(name)
		if err == nil {
			mfs.Lock()
			mfs.cache[name] = d
			mfs.Unlock()

			return file, nil
		}

		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrInvalid) {
			continue
		}

		return nil, fmt.Errorf("unable to open template: %w", err)
	}

	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

//go:embed tmpl/*
var pkgFS embed.FS
