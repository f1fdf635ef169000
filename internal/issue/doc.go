// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// An ActionableError says what was being attempted, on which resource, and
// how to fix it. Errors may point at an issue guide: a Markdown page rendered
// in the terminal with glamour.
package issue
