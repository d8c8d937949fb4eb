// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package document

import (
	"strings"
)

// Bindings supplies the text bound to each slot.
type Bindings interface {
	// Slots returns every bound slot name.
	Slots() []string
	// Lookup returns the text bound to slot.
	Lookup(slot string) (string, bool)
}

// Map is a Bindings backed by a plain map.
type Map map[string]string

// Slots returns the keys of m.
func (m Map) Slots() []string {
	slots := make([]string, 0, len(m))
	for k := range m {
		slots = append(slots, k)
	}
	return slots
}

// Lookup returns m[slot].
func (m Map) Lookup(slot string) (string, bool) {
	s, ok := m[slot]
	return s, ok
}

// Document is a fully rendered report.
type Document struct {
	// Template is the name of the template it was rendered from.
	Template string
	Text     string
}

// Bytes returns the document text.
func (d Document) Bytes() []byte {
	return []byte(d.Text)
}

// Len returns the document size in bytes.
func (d Document) Len() int {
	return len(d.Text)
}

// Render substitutes every slot with its bound text. The bindings must
// cover exactly the template's slots; anything else is a
// SlotMismatchError and nothing is rendered.
func (t *Template) Render(b Bindings) (Document, error) {
	if err := t.Check(b.Slots()); err != nil {
		return Document{}, err
	}

	var sb strings.Builder
	for _, seg := range t.segments {
		if !seg.slot {
			sb.WriteString(seg.text)
			continue
		}
		text, _ := b.Lookup(seg.text)
		sb.WriteString(text)
	}

	return Document{Template: t.name, Text: sb.String()}, nil
}
