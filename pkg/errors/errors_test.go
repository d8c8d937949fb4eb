// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package errors_test

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benchreport/benchreport/pkg/errors"
)

func TestIsType(t *testing.T) {
	cause := stderrors.New("no such file")
	err := fmt.Errorf("compose: %w", errors.MissingSourceError("nano", "nano.txt", cause))

	assert.True(t, errors.IsType(err, errors.ErrMissingSource))
	assert.False(t, errors.IsType(err, errors.ErrFormatter))
	assert.False(t, errors.IsType(nil, errors.ErrMissingSource))
	assert.ErrorIs(t, err, cause)
}

func TestSlotMismatchErrorMessage(t *testing.T) {
	err := errors.SlotMismatchError([]string{"stm32", "esp32"}, []string{"teensy32"})

	assert.Equal(t,
		"[SLOT_MISMATCH] template and platforms disagree (unfilled slots: esp32, stm32; no slot for: teensy32)",
		err.Error())
	assert.Equal(t, []string{"esp32", "stm32"}, err.Context["missing"])
	assert.Equal(t, []string{"teensy32"}, err.Context["extra"])
}

func TestMissingSourceContext(t *testing.T) {
	err := errors.MissingSourceError("nano", "/tmp/nano.txt", nil)

	require.NotNil(t, err.Context)
	assert.Equal(t, "nano", err.Context["platform"])
	assert.Equal(t, "/tmp/nano.txt", err.Context["source"])
	assert.Contains(t, err.Error(), `platform "nano"`)
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, errors.ExitSuccess},
		{"config", errors.ConfigError("bad", nil), errors.ExitConfig},
		{"missing", errors.MissingSourceError("nano", "nano.txt", nil), errors.ExitMissingSource},
		{"formatter", errors.FormatterFailureError("nano", nil), errors.ExitFormatter},
		{"slots", errors.SlotMismatchError([]string{"a"}, nil), errors.ExitSlotMismatch},
		{"emit", errors.EmitError("out.md", nil), errors.ExitEmit},
		{"timeout", errors.TimeoutError("run", nil), errors.ExitTimeout},
		{"wrapped", fmt.Errorf("run: %w", errors.EmitError("-", nil)), errors.ExitEmit},
		{"bare deadline", context.DeadlineExceeded, errors.ExitTimeout},
		{"plain", stderrors.New("boom"), errors.ExitConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errors.ExitCode(tt.err))
		})
	}
}
