// SPDX-License-Identifier: MPL-2.0

package script

import (
	"strings"

	"golang.org/x/exp/slices"
)

// Banner is the first line of every generated script.
const Banner = "# GENERATED FILE, DO NOT EDIT"

type (
	// Builder accumulates statements in declaration order.
	Builder struct {
		statements []Statement
	}

	// Script is an immutable, phase-ordered statement sequence.
	Script struct {
		statements []Statement
	}
)

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add appends statements.
func (b *Builder) Add(stmts ...Statement) *Builder {
	b.statements = append(b.statements, stmts...)
	return b
}

// Build orders the statements by phase. Statements in the same phase keep
// their declaration order.
func (b *Builder) Build() *Script {
	ordered := slices.Clone(b.statements)
	slices.SortStableFunc(ordered, func(x, y Statement) int {
		return int(x.Phase()) - int(y.Phase())
	})
	return &Script{statements: ordered}
}

// Statements returns a copy of the ordered statements.
func (s *Script) Statements() []Statement {
	return slices.Clone(s.statements)
}

// Index returns the position of the first statement of the given kind and
// subject, or -1.
func (s *Script) Index(kind Kind, subject string) int {
	return slices.IndexFunc(s.statements, func(st Statement) bool {
		return st.Kind() == kind && st.Subject() == subject
	})
}

// Lines renders every statement, in order, without the banner.
func (s *Script) Lines() []string {
	var lines []string
	for _, st := range s.statements {
		lines = append(lines, st.Lines()...)
	}
	return lines
}

// Render returns the script text: banner, newline-joined statement lines
// and a trailing newline.
func (s *Script) Render() string {
	var b strings.Builder
	b.WriteString(Banner)
	b.WriteByte('\n')
	for _, l := range s.Lines() {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return b.String()
}
