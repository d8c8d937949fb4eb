// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package objstore addresses raw results and reports kept in Google Cloud
// Storage through gs://bucket/object URLs.
package objstore

import (
	"context"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
)

// Scheme is the URL scheme for Cloud Storage objects.
const Scheme = "gs://"

// Location is a parsed gs:// URL.
type Location struct {
	Bucket string
	Object string
}

func (l Location) String() string {
	return Scheme + l.Bucket + "/" + l.Object
}

// IsURL reports whether s names a Cloud Storage object.
func IsURL(s string) bool {
	return strings.HasPrefix(s, Scheme)
}

// ParseURL parses a gs://bucket/object URL.
func ParseURL(s string) (Location, error) {
	if !IsURL(s) {
		return Location{}, fmt.Errorf("not a %s URL: %q", Scheme, s)
	}
	bucket, object, ok := strings.Cut(strings.TrimPrefix(s, Scheme), "/")
	if !ok || bucket == "" || object == "" || strings.HasSuffix(object, "/") {
		return Location{}, fmt.Errorf("malformed object URL %q: want %sbucket/object", s, Scheme)
	}
	return Location{Bucket: bucket, Object: object}, nil
}

// ReadAll reads the whole object at loc.
func ReadAll(ctx context.Context, client *storage.Client, loc Location) ([]byte, error) {
	r, err := client.Bucket(loc.Bucket).Object(loc.Object).NewReader(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return io.ReadAll(r)
}

// WriteAll uploads data as the object at loc. The object only becomes
// visible once the upload has been committed; if any step fails the
// upload is abandoned and the previous object, if any, is left intact.
func WriteAll(ctx context.Context, client *storage.Client, loc Location, contentType string, data []byte) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w := client.Bucket(loc.Bucket).Object(loc.Object).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := w.Write(data); err != nil {
		// Cancelling the writer's context aborts the upload.
		cancel()
		_ = w.Close()
		return fmt.Errorf("write error: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close error: %w", err)
	}
	return nil
}

// Stat returns the attributes of the object at loc.
func Stat(ctx context.Context, client *storage.Client, loc Location) (*storage.ObjectAttrs, error) {
	return client.Bucket(loc.Bucket).Object(loc.Object).Attrs(ctx)
}
