// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package document renders the final report from a static template.
//
// A template is literal text containing named slots written as {name}.
// A slot name starts with a letter or underscore followed by letters,
// digits, or underscores. "{{" and "}}" produce literal braces; any
// other brace is an error. There are no conditionals, loops, or
// escaping rules beyond that: rendering is literal substitution.
package document

import (
	"fmt"
	"os"
	"strings"

	"github.com/benchreport/benchreport/pkg/errors"
)

// Template is a parsed, immutable document skeleton.
type Template struct {
	name     string
	segments []segment
	slots    []string
	slotSet  map[string]bool
}

// segment is either literal text or a slot reference.
type segment struct {
	text string
	slot bool
}

// ParseError reports malformed template syntax.
type ParseError struct {
	Name string
	Line int
	Col  int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Name, e.Line, e.Col, e.Msg)
}

// Parse parses template text. name is used in error messages.
func Parse(name, text string) (*Template, error) {
	p := &parser{name: name, src: text, line: 1, col: 1}
	t := &Template{name: name, slotSet: make(map[string]bool)}

	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			t.segments = append(t.segments, segment{text: lit.String()})
			lit.Reset()
		}
	}

	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == '{' && p.peek(1) == '{':
			lit.WriteByte('{')
			p.advance(2)
		case c == '}' && p.peek(1) == '}':
			lit.WriteByte('}')
			p.advance(2)
		case c == '}':
			return nil, p.errorf("single '}' is not allowed; use '}}' for a literal brace")
		case c == '{':
			line, col := p.line, p.col
			end := strings.IndexByte(p.src[p.pos:], '}')
			if end < 0 {
				return nil, p.errorf("unclosed slot")
			}
			name := p.src[p.pos+1 : p.pos+end]
			if !ValidSlotName(name) {
				return nil, &ParseError{Name: p.name, Line: line, Col: col, Msg: fmt.Sprintf("invalid slot name %q", name)}
			}
			flush()
			t.segments = append(t.segments, segment{text: name, slot: true})
			if !t.slotSet[name] {
				t.slotSet[name] = true
				t.slots = append(t.slots, name)
			}
			p.advance(end + 1)
		default:
			lit.WriteByte(c)
			p.advance(1)
		}
	}
	flush()

	return t, nil
}

// MustParse is like Parse but panics on error.
func MustParse(name, text string) *Template {
	t, err := Parse(name, text)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseFile reads and parses the template at path.
func ParseFile(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ConfigError("cannot read template "+path, err)
	}
	t, err := Parse(path, string(data))
	if err != nil {
		return nil, errors.ConfigError("cannot parse template", err)
	}
	return t, nil
}

// Name returns the template's name.
func (t *Template) Name() string {
	return t.name
}

// Slots returns the slot names in order of first appearance.
func (t *Template) Slots() []string {
	return append([]string(nil), t.slots...)
}

// HasSlot reports whether name is a slot of t.
func (t *Template) HasSlot(name string) bool {
	return t.slotSet[name]
}

// Check verifies that slots name exactly the template's slots: none
// missing and none extra. Order does not matter.
func (t *Template) Check(slots []string) error {
	given := make(map[string]bool, len(slots))
	var extra []string
	for _, s := range slots {
		if given[s] {
			continue
		}
		given[s] = true
		if !t.slotSet[s] {
			extra = append(extra, s)
		}
	}

	var missing []string
	for _, s := range t.slots {
		if !given[s] {
			missing = append(missing, s)
		}
	}

	if len(missing) > 0 || len(extra) > 0 {
		return errors.SlotMismatchError(missing, extra)
	}
	return nil
}

// ValidSlotName reports whether s can be used as a slot: letters,
// digits, and underscores, not starting with a digit.
func ValidSlotName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

type parser struct {
	name      string
	src       string
	pos       int
	line, col int
}

func (p *parser) peek(n int) byte {
	if p.pos+n < len(p.src) {
		return p.src[p.pos+n]
	}
	return 0
}

func (p *parser) advance(n int) {
	for i := 0; i < n; i++ {
		if p.src[p.pos] == '\n' {
			p.line++
			p.col = 1
		} else {
			p.col++
		}
		p.pos++
	}
}

func (p *parser) errorf(format string, args ...any) error {
	return &ParseError{Name: p.name, Line: p.line, Col: p.col, Msg: fmt.Sprintf(format, args...)}
}
