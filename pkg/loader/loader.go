// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package loader reads the raw benchmark results of each platform.
//
// Loaders never inspect or transform the bytes they return; malformed
// content is the table formatter's problem.
package loader

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"cloud.google.com/go/storage"

	"github.com/benchreport/benchreport/pkg/errors"
	"github.com/benchreport/benchreport/pkg/objstore"
	"github.com/benchreport/benchreport/pkg/platform"
)

// Loader returns the raw results for a platform.
type Loader interface {
	Load(ctx context.Context, p platform.Platform) ([]byte, error)
}

// Func adapts a function to the Loader interface.
type Func func(ctx context.Context, p platform.Platform) ([]byte, error)

// Load calls f.
func (f Func) Load(ctx context.Context, p platform.Platform) ([]byte, error) {
	return f(ctx, p)
}

// FileLoader reads sources from the local filesystem. Relative sources
// are resolved against Dir.
type FileLoader struct {
	Dir string
}

// NewFileLoader creates a loader rooted at dir ("" means the working
// directory).
func NewFileLoader(dir string) *FileLoader {
	return &FileLoader{Dir: dir}
}

// Path returns the filesystem path of p's source.
func (l *FileLoader) Path(p platform.Platform) string {
	if filepath.IsAbs(p.Source) || l.Dir == "" {
		return p.Source
	}
	return filepath.Join(l.Dir, p.Source)
}

// Load reads p's source file.
func (l *FileLoader) Load(ctx context.Context, p platform.Platform) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := l.Path(p)
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.MissingSourceError(p.Name, path, err)
	}
	if info.IsDir() {
		return nil, errors.MissingSourceError(p.Name, path, fmt.Errorf("is a directory"))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.MissingSourceError(p.Name, path, err)
	}
	return data, nil
}

// Exists reports whether p's source file is present and readable,
// returning a MissingSourceError if it is not.
func (l *FileLoader) Exists(p platform.Platform) error {
	path := l.Path(p)
	f, err := os.Open(path)
	if err != nil {
		return errors.MissingSourceError(p.Name, path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return errors.MissingSourceError(p.Name, path, err)
	}
	if info.IsDir() {
		return errors.MissingSourceError(p.Name, path, fs.ErrInvalid)
	}
	return nil
}

// GCSLoader reads gs://bucket/object sources from Cloud Storage.
type GCSLoader struct {
	client *storage.Client
}

// NewGCSLoader creates a loader using client.
func NewGCSLoader(client *storage.Client) *GCSLoader {
	return &GCSLoader{client: client}
}

// Load downloads p's source object.
func (l *GCSLoader) Load(ctx context.Context, p platform.Platform) ([]byte, error) {
	loc, err := objstore.ParseURL(p.Source)
	if err != nil {
		return nil, errors.MissingSourceError(p.Name, p.Source, err)
	}

	data, err := objstore.ReadAll(ctx, l.client, loc)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && stderrors.Is(err, ctxErr) {
			return nil, err
		}
		return nil, errors.MissingSourceError(p.Name, p.Source, err)
	}
	return data, nil
}

// Exists reports whether p's source object is present, returning a
// MissingSourceError if it is not.
func (l *GCSLoader) Exists(ctx context.Context, p platform.Platform) error {
	loc, err := objstore.ParseURL(p.Source)
	if err != nil {
		return errors.MissingSourceError(p.Name, p.Source, err)
	}
	if _, err := objstore.Stat(ctx, l.client, loc); err != nil {
		return errors.MissingSourceError(p.Name, p.Source, err)
	}
	return nil
}

// Router sends gs:// sources to a remote loader and everything else to
// a local one.
type Router struct {
	Local  Loader
	Remote Loader
}

// Load dispatches on the scheme of p's source.
func (r *Router) Load(ctx context.Context, p platform.Platform) ([]byte, error) {
	if objstore.IsURL(p.Source) {
		if r.Remote == nil {
			return nil, errors.MissingSourceError(p.Name, p.Source, fmt.Errorf("no object storage client configured"))
		}
		return r.Remote.Load(ctx, p)
	}
	if r.Local == nil {
		return nil, errors.MissingSourceError(p.Name, p.Source, fmt.Errorf("no local loader configured"))
	}
	return r.Local.Load(ctx, p)
}

// NeedsRemote reports whether any platform in l reads from object
// storage.
func NeedsRemote(l *platform.List) bool {
	for _, p := range l.All() {
		if objstore.IsURL(p.Source) {
			return true
		}
	}
	return false
}
