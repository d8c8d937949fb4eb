// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package objstoretest provides an in-memory Cloud Storage server for
// tests. It speaks enough of the JSON and XML APIs for object reads,
// metadata lookups, and uploads made by cloud.google.com/go/storage.
package objstoretest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// Object is a stored object.
type Object struct {
	Data        []byte
	ContentType string
	Generation  int64
}

// Server is a fake Cloud Storage endpoint.
type Server struct {
	srv *httptest.Server

	mu       sync.Mutex
	objects  map[string]Object // "bucket/object"
	sessions map[string]upload
	nextID   int
	gen      int64
	fail     bool
}

type upload struct {
	bucket, name, contentType string
}

type objectResource struct {
	Bucket      string `json:"bucket"`
	Name        string `json:"name"`
	ContentType string `json:"contentType,omitempty"`
	Size        string `json:"size"`
	Generation  string `json:"generation"`
	Metagen     string `json:"metageneration"`
}

// NewServer starts a server that is closed when t ends.
func NewServer(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		objects:  make(map[string]Object),
		sessions: make(map[string]upload),
	}
	s.srv = httptest.NewServer(http.HandlerFunc(s.serveHTTP))
	t.Cleanup(s.srv.Close)
	return s
}

// Client returns a storage client talking to s, closed when t ends.
func (s *Server) Client(t testing.TB) *storage.Client {
	t.Helper()
	client, err := storage.NewClient(context.Background(),
		option.WithEndpoint(s.srv.URL+"/storage/v1/"),
		option.WithoutAuthentication(),
	)
	if err != nil {
		t.Fatalf("storage.NewClient: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

// Put stores an object directly.
func (s *Server) Put(bucket, name string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commitLocked(bucket, name, "", data)
}

// Get returns a stored object.
func (s *Server) Get(bucket, name string) (Object, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.objects[bucket+"/"+name]
	return o, ok
}

// FailUploads makes every upload request fail with 403 Forbidden.
func (s *Server) FailUploads(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = fail
}

func (s *Server) commitLocked(bucket, name, contentType string, data []byte) Object {
	s.gen++
	o := Object{Data: append([]byte(nil), data...), ContentType: contentType, Generation: s.gen}
	s.objects[bucket+"/"+name] = o
	return o
}

func (s *Server) serveHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	switch {
	case strings.HasPrefix(path, "/upload/session/"):
		s.finishResumable(w, r, strings.TrimPrefix(path, "/upload/session/"))
	case r.Method == http.MethodPost && strings.HasSuffix(path, "/o"):
		s.startUpload(w, r, bucketFromUploadPath(path))
	case strings.Contains(path, "/storage/v1/b/") && strings.Contains(path, "/o/"):
		rest := path[strings.Index(path, "/storage/v1/b/")+len("/storage/v1/b/"):]
		bucket, name, _ := strings.Cut(rest, "/o/")
		if r.URL.Query().Get("alt") == "media" {
			s.serveMedia(w, bucket, name)
			return
		}
		s.serveAttrs(w, bucket, name)
	case r.Method == http.MethodGet:
		// XML API read: /bucket/object
		bucket, name, _ := strings.Cut(strings.TrimPrefix(path, "/"), "/")
		s.serveMedia(w, bucket, name)
	default:
		writeError(w, http.StatusNotImplemented, "unsupported request "+r.Method+" "+path)
	}
}

func bucketFromUploadPath(path string) string {
	rest := path[strings.Index(path, "/b/")+len("/b/"):]
	return strings.TrimSuffix(rest, "/o")
}

func (s *Server) lookup(bucket, name string) (Object, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.objects[bucket+"/"+name]
	return o, ok
}

func (s *Server) serveMedia(w http.ResponseWriter, bucket, name string) {
	o, ok := s.lookup(bucket, name)
	if !ok {
		writeError(w, http.StatusNotFound, "no such object")
		return
	}
	gen := strconv.FormatInt(o.Generation, 10)
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.Itoa(len(o.Data)))
	w.Header().Set("X-Goog-Generation", gen)
	w.Header().Set("X-Goog-Metageneration", "1")
	_, _ = w.Write(o.Data)
}

func (s *Server) serveAttrs(w http.ResponseWriter, bucket, name string) {
	o, ok := s.lookup(bucket, name)
	if !ok {
		writeError(w, http.StatusNotFound, "no such object")
		return
	}
	writeObject(w, bucket, name, o)
}

func (s *Server) startUpload(w http.ResponseWriter, r *http.Request, bucket string) {
	s.mu.Lock()
	fail := s.fail
	s.mu.Unlock()
	if fail {
		_, _ = io.Copy(io.Discard, r.Body)
		writeError(w, http.StatusForbidden, "uploads disabled")
		return
	}

	q := r.URL.Query()
	switch q.Get("uploadType") {
	case "multipart":
		meta, data, err := readMultipart(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.mu.Lock()
		o := s.commitLocked(bucket, meta.Name, meta.ContentType, data)
		s.mu.Unlock()
		writeObject(w, bucket, meta.Name, o)
	case "media":
		data, err := io.ReadAll(r.Body)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.mu.Lock()
		o := s.commitLocked(bucket, q.Get("name"), r.Header.Get("Content-Type"), data)
		s.mu.Unlock()
		writeObject(w, bucket, q.Get("name"), o)
	case "resumable":
		var meta objectResource
		if err := json.NewDecoder(r.Body).Decode(&meta); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if meta.Name == "" {
			meta.Name = q.Get("name")
		}
		s.mu.Lock()
		s.nextID++
		id := strconv.Itoa(s.nextID)
		s.sessions[id] = upload{bucket: bucket, name: meta.Name, contentType: meta.ContentType}
		s.mu.Unlock()
		w.Header().Set("Location", s.srv.URL+"/upload/session/"+id)
		w.WriteHeader(http.StatusOK)
	default:
		writeError(w, http.StatusBadRequest, "unknown uploadType "+q.Get("uploadType"))
	}
}

// finishResumable accepts the whole object in one request.
func (s *Server) finishResumable(w http.ResponseWriter, r *http.Request, id string) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.mu.Lock()
	up, ok := s.sessions[id]
	fail := s.fail
	if ok && !fail {
		delete(s.sessions, id)
	}
	s.mu.Unlock()
	switch {
	case !ok:
		writeError(w, http.StatusNotFound, "no such upload session")
		return
	case fail:
		writeError(w, http.StatusForbidden, "uploads disabled")
		return
	}

	s.mu.Lock()
	o := s.commitLocked(up.bucket, up.name, up.contentType, data)
	s.mu.Unlock()
	writeObject(w, up.bucket, up.name, o)
}

func readMultipart(r *http.Request) (objectResource, []byte, error) {
	var meta objectResource
	_, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return meta, nil, err
	}
	mr := multipart.NewReader(r.Body, params["boundary"])

	part, err := mr.NextPart()
	if err != nil {
		return meta, nil, fmt.Errorf("metadata part: %w", err)
	}
	if err := json.NewDecoder(part).Decode(&meta); err != nil {
		return meta, nil, fmt.Errorf("metadata part: %w", err)
	}

	part, err = mr.NextPart()
	if err != nil {
		return meta, nil, fmt.Errorf("media part: %w", err)
	}
	data, err := io.ReadAll(part)
	if err != nil {
		return meta, nil, fmt.Errorf("media part: %w", err)
	}
	if meta.ContentType == "" {
		meta.ContentType = part.Header.Get("Content-Type")
	}
	return meta, data, nil
}

func writeObject(w http.ResponseWriter, bucket, name string, o Object) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(objectResource{
		Bucket:      bucket,
		Name:        name,
		ContentType: o.ContentType,
		Size:        strconv.Itoa(len(o.Data)),
		Generation:  strconv.FormatInt(o.Generation, 10),
		Metagen:     "1",
	})
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{"code": code, "message": msg},
	})
}
