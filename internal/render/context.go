// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"strings"

	"github.com/petar-djukic/repobrief/internal/triage"
)

// omittedMarker closes the context when the global budget is hit before
// every fetched file has been rendered.
const omittedMarker = "... [additional files omitted due to context budget]"

// FileContext renders fetched file contents into a single delimited
// string for the LLM prompt, in the order given by paths (the selection
// order). Each file is truncated to the per-file cap; once the running
// total reaches the global character budget, remaining files are
// dropped and the omission marker is appended. Paths missing from
// files (fetch failures, binary content) are silently skipped.
func FileContext(paths []string, files map[string]string) string {
	var parts []string
	total := 0

	for _, p := range paths {
		content, ok := files[p]
		if !ok {
			continue
		}

		block := fmt.Sprintf("### %s\n```\n%s\n```", p, Truncate(content, triage.MaxFileChars))
		parts = append(parts, block)
		total += len(block)
		if total >= triage.CharBudget {
			parts = append(parts, omittedMarker)
			break
		}
	}

	return strings.Join(parts, "\n\n")
}
