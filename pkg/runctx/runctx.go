// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package runctx provides run contexts bounded by OS signals and an
// optional deadline.
package runctx

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// DefaultSignals cancel a run.
var DefaultSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

// signalContext cancels on the first matching signal.
type signalContext struct {
	context.Context

	cancel   context.CancelFunc
	stopOnce sync.Once
	stopCh   chan struct{}
	ch       chan os.Signal
}

// stop releases the signal watcher. It can be called multiple times.
func (sc *signalContext) stop() {
	sc.stopOnce.Do(func() {
		signal.Stop(sc.ch)
		sc.cancel()
		close(sc.stopCh)
	})
}

// WithSignal returns a context cancelled when any of sigs arrives. The
// returned cancel function must be called to release the watcher.
//
//	ctx, cancel := runctx.WithSignal(context.Background(), os.Interrupt)
//	defer cancel()
func WithSignal(parent context.Context, sigs ...os.Signal) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	return watch(ctx, cancel, sigs)
}

// WithSignalTimeout is WithSignal with a deadline. A timeout <= 0 means
// no deadline.
func WithSignalTimeout(parent context.Context, timeout time.Duration, sigs ...os.Signal) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return WithSignal(parent, sigs...)
	}
	ctx, cancel := context.WithTimeout(parent, timeout)
	return watch(ctx, cancel, sigs)
}

func watch(ctx context.Context, cancel context.CancelFunc, sigs []os.Signal) (context.Context, context.CancelFunc) {
	if len(sigs) == 0 {
		sigs = DefaultSignals
	}
	sc := &signalContext{
		Context: ctx,
		cancel:  cancel,
		stopCh:  make(chan struct{}),
		ch:      make(chan os.Signal, len(sigs)),
	}
	signal.Notify(sc.ch, sigs...)

	go func() {
		select {
		case <-sc.ch:
			cancel()
		case <-sc.stopCh:
		case <-ctx.Done():
		}
	}()

	return sc, sc.stop
}
