// SPDX-License-Identifier: MPL-2.0

package script

import (
	"strings"
)

// bareWordChars are the characters a TCL word may contain without quoting.
const bareWordChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_.-/:+=,@%"

// Quote renders s as a single TCL word.
//
// Plain identifiers, paths and VLNVs are emitted as-is. Anything else is
// braced, which suppresses substitution; strings that cannot be braced
// safely (unbalanced braces, backslashes) fall back to a double-quoted
// word with every special character escaped.
func Quote(s string) string {
	if s == "" {
		return "{}"
	}
	if isBare(s) {
		return s
	}
	if canBrace(s) {
		return "{" + s + "}"
	}

	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\', '"', '$', '[', ']', '{', '}':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// List renders the elements as one TCL list word: {a b c}.
func List(elems ...string) string {
	quoted := make([]string, len(elems))
	for i, e := range elems {
		quoted[i] = Quote(e)
	}
	return "{" + strings.Join(quoted, " ") + "}"
}

// Subst renders a command substitution: [cmd args...]. Words are used verbatim.
func Subst(words ...string) string {
	return "[" + strings.Join(words, " ") + "]"
}

// CurrentCore is the command substitution for the core being edited.
var CurrentCore = Subst("ipx::current_core")

func isBare(s string) bool {
	if s[0] == '#' || s[0] == '{' {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !strings.ContainsRune(bareWordChars, rune(s[i])) {
			return false
		}
	}
	return true
}

func canBrace(s string) bool {
	if strings.ContainsRune(s, '\\') {
		return false
	}
	depth := 0
	for _, r := range s {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}
