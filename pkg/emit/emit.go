// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package emit delivers a rendered document to its destination in one
// operation. A reader of the destination sees either the previous
// content or the complete new document, never a truncated one.
package emit

import (
	"context"
	"fmt"
	"io"
	"os"

	"cloud.google.com/go/storage"
	"github.com/google/renameio/v2"

	"github.com/benchreport/benchreport/pkg/document"
	"github.com/benchreport/benchreport/pkg/errors"
	"github.com/benchreport/benchreport/pkg/objstore"
)

// StdoutDest is the destination name for standard output.
const StdoutDest = "-"

// Emitter delivers a document.
type Emitter interface {
	Emit(ctx context.Context, doc document.Document) error
	// Destination describes where documents go.
	Destination() string
}

// New creates the emitter for dest: "" or "-" is standard output,
// gs://bucket/object is a Cloud Storage object (client must be non-nil),
// anything else is a file path.
func New(dest string, client *storage.Client) (Emitter, error) {
	switch {
	case dest == "" || dest == StdoutDest:
		return Stdout(), nil
	case objstore.IsURL(dest):
		if client == nil {
			return nil, errors.ConfigError("no object storage client for "+dest, nil)
		}
		loc, err := objstore.ParseURL(dest)
		if err != nil {
			return nil, errors.ConfigError("invalid output", err)
		}
		return NewGCS(client, loc), nil
	default:
		return NewFile(dest), nil
	}
}

// Writer emits to an io.Writer with a single Write call.
type Writer struct {
	w    io.Writer
	name string
}

// NewWriter creates an emitter writing to w. name is used in errors.
func NewWriter(w io.Writer, name string) *Writer {
	return &Writer{w: w, name: name}
}

// Stdout returns an emitter for standard output.
func Stdout() *Writer {
	return NewWriter(os.Stdout, "stdout")
}

// Destination returns the writer's name.
func (e *Writer) Destination() string {
	return e.name
}

// Emit writes the whole document at once.
func (e *Writer) Emit(ctx context.Context, doc document.Document) error {
	if err := ctx.Err(); err != nil {
		return errors.EmitError(e.name, err)
	}
	n, err := e.w.Write(doc.Bytes())
	if err == nil && n < doc.Len() {
		err = io.ErrShortWrite
	}
	if err != nil {
		return errors.EmitError(e.name, err)
	}
	return nil
}

// File emits to a file by writing a temporary sibling and renaming it
// over the target.
type File struct {
	Path string
	Perm os.FileMode
}

// NewFile creates a file emitter with mode 0644.
func NewFile(path string) *File {
	return &File{Path: path, Perm: 0644}
}

// Destination returns the file path.
func (e *File) Destination() string {
	return e.Path
}

// Emit replaces the file's content atomically.
func (e *File) Emit(ctx context.Context, doc document.Document) error {
	if err := ctx.Err(); err != nil {
		return errors.EmitError(e.Path, err)
	}
	if info, err := os.Stat(e.Path); err == nil && info.IsDir() {
		return errors.EmitError(e.Path, fmt.Errorf("is a directory"))
	}
	if err := renameio.WriteFile(e.Path, doc.Bytes(), e.Perm); err != nil {
		return errors.EmitError(e.Path, err)
	}
	return nil
}

// GCS emits to a Cloud Storage object. The object is only replaced
// once the upload is committed.
type GCS struct {
	client      *storage.Client
	loc         objstore.Location
	ContentType string
}

// NewGCS creates an emitter for the object at loc.
func NewGCS(client *storage.Client, loc objstore.Location) *GCS {
	return &GCS{
		client:      client,
		loc:         loc,
		ContentType: "text/markdown; charset=utf-8",
	}
}

// Destination returns the object URL.
func (e *GCS) Destination() string {
	return e.loc.String()
}

// Emit uploads the document.
func (e *GCS) Emit(ctx context.Context, doc document.Document) error {
	if err := objstore.WriteAll(ctx, e.client, e.loc, e.ContentType, doc.Bytes()); err != nil {
		return errors.EmitError(e.loc.String(), err)
	}
	return nil
}
