// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package report

import (
	"github.com/benchreport/benchreport/pkg/platform"
)

// PlatformResult is one platform's progress through composition. It is
// owned by a single task and discarded once its table is bound.
type PlatformResult struct {
	Platform platform.Platform
	Raw      []byte
	Table    string
}

// Binding is a formatted table bound to its slot.
type Binding struct {
	Slot     string
	Platform string
	Text     string
}

// Tables is the ordered slot to table mapping produced by a Composer.
// Its order is the declared platform order.
type Tables struct {
	bindings []Binding
	bySlot   map[string]int
}

func newTables(results []PlatformResult) *Tables {
	t := &Tables{
		bindings: make([]Binding, len(results)),
		bySlot:   make(map[string]int, len(results)),
	}
	for i, r := range results {
		slot := r.Platform.SlotName()
		t.bindings[i] = Binding{Slot: slot, Platform: r.Platform.Name, Text: r.Table}
		t.bySlot[slot] = i
	}
	return t
}

// Len returns the number of bound tables.
func (t *Tables) Len() int {
	return len(t.bindings)
}

// Bindings returns a copy of the bindings in platform order.
func (t *Tables) Bindings() []Binding {
	return append([]Binding(nil), t.bindings...)
}

// Slots returns the bound slot names in platform order.
func (t *Tables) Slots() []string {
	slots := make([]string, len(t.bindings))
	for i, b := range t.bindings {
		slots[i] = b.Slot
	}
	return slots
}

// Lookup returns the table bound to slot.
func (t *Tables) Lookup(slot string) (string, bool) {
	i, ok := t.bySlot[slot]
	if !ok {
		return "", false
	}
	return t.bindings[i].Text, true
}
