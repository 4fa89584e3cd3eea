// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package render assembles the bounded text artifacts sent to the LLM:
// truncated per-file content blocks and a capped directory tree.
package render

import (
	"fmt"
	"strings"
)

// noteReserve is headroom kept for the truncation note so a truncated
// result stays within the cap and passes through Truncate unchanged.
const noteReserve = 64

// Truncate bounds content to roughly limit characters, keeping the head
// of the file: for source files the prefix (imports, top-level
// declarations, signatures) carries most of the signal. When a line
// boundary exists at or after 80% of the cut, the cut moves back to it
// rather than splitting mid-line. A note recording kept/total lines is
// appended to truncated output.
func Truncate(content string, limit int) string {
	if len(content) <= limit {
		return content
	}

	cut := limit - noteReserve
	if cut < 0 {
		cut = 0
	}
	truncated := content[:cut]

	// Prefer a clean line boundary when the loss is small.
	if i := strings.LastIndexByte(truncated, '\n'); float64(i) > float64(cut)*0.8 {
		truncated = truncated[:i]
	}

	kept := strings.Count(truncated, "\n") + 1
	total := strings.Count(content, "\n") + 1
	return truncated + fmt.Sprintf("\n\n... [truncated: showing %d/%d lines]", kept, total)
}
