// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package runctx

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWithSignalTimeoutExpires(t *testing.T) {
	ctx, cancel := WithSignalTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("context did not expire")
	}
	assert.ErrorIs(t, ctx.Err(), context.DeadlineExceeded)
}

func TestWithSignalTimeoutZeroHasNoDeadline(t *testing.T) {
	ctx, cancel := WithSignalTimeout(context.Background(), 0)
	defer cancel()

	_, ok := ctx.Deadline()
	assert.False(t, ok)
	assert.NoError(t, ctx.Err())
}

func TestCancelIsIdempotent(t *testing.T) {
	ctx, cancel := WithSignal(context.Background())
	cancel()
	cancel()

	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestParentCancellation(t *testing.T) {
	parent, cancelParent := context.WithCancel(context.Background())
	ctx, cancel := WithSignal(parent)
	defer cancel()

	cancelParent()
	<-ctx.Done()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}
