// SPDX-License-Identifier: MPL-2.0

// Package runtime invokes external tools against generated scripts.
//
// A Runtime runs one blocking invocation and reports the exit status
// verbatim. There are no retries and no timeouts; cancellation only
// happens through the context, which the CLI ties to SIGINT.
package runtime
