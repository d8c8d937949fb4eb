// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package platform describes the hardware platforms a benchmark report
// covers and the fixed order in which they appear.
package platform

import (
	"fmt"
	"strings"
)

// Platform is a target board with its own raw benchmark results.
type Platform struct {
	// Name identifies the platform, e.g. "nano" or "esp32".
	Name string
	// Source locates the raw results: a file path or a gs:// URL.
	Source string
	// Slot is the template slot the formatted table fills.
	// Empty means the slot is named after the platform.
	Slot string
}

// SlotName returns the template slot bound to p.
func (p Platform) SlotName() string {
	if p.Slot != "" {
		return p.Slot
	}
	return p.Name
}

func (p Platform) String() string {
	return p.Name
}

// List is an immutable, ordered set of platforms.
// Names and slot names are unique within a List.
type List struct {
	platforms []Platform
	byName    map[string]int
}

// NewList creates a List in the given order.
func NewList(platforms ...Platform) (*List, error) {
	l := &List{
		platforms: make([]Platform, 0, len(platforms)),
		byName:    make(map[string]int, len(platforms)),
	}
	slots := make(map[string]string, len(platforms))

	for i, p := range platforms {
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" {
			return nil, fmt.Errorf("platforms[%d]: name is required", i)
		}
		if p.Source == "" {
			return nil, fmt.Errorf("platform %q: source is required", p.Name)
		}
		if _, dup := l.byName[p.Name]; dup {
			return nil, fmt.Errorf("platform %q: duplicate name", p.Name)
		}
		if other, dup := slots[p.SlotName()]; dup {
			return nil, fmt.Errorf("platform %q: slot %q already bound to %q", p.Name, p.SlotName(), other)
		}
		slots[p.SlotName()] = p.Name
		l.byName[p.Name] = len(l.platforms)
		l.platforms = append(l.platforms, p)
	}

	return l, nil
}

// MustList is like NewList but panics on error.
func MustList(platforms ...Platform) *List {
	l, err := NewList(platforms...)
	if err != nil {
		panic(err)
	}
	return l
}

// Len returns the number of platforms.
func (l *List) Len() int {
	return len(l.platforms)
}

// At returns the i'th platform in declared order.
func (l *List) At(i int) Platform {
	return l.platforms[i]
}

// All returns a copy of the platforms in declared order.
func (l *List) All() []Platform {
	return append([]Platform(nil), l.platforms...)
}

// Get retrieves a platform by name.
func (l *List) Get(name string) (Platform, bool) {
	i, ok := l.byName[name]
	if !ok {
		return Platform{}, false
	}
	return l.platforms[i], true
}

// Names returns platform names in declared order.
func (l *List) Names() []string {
	names := make([]string, len(l.platforms))
	for i, p := range l.platforms {
		names[i] = p.Name
	}
	return names
}

// Slots returns slot names in declared order.
func (l *List) Slots() []string {
	slots := make([]string, len(l.platforms))
	for i, p := range l.platforms {
		slots[i] = p.SlotName()
	}
	return slots
}
