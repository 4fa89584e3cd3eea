// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate_ShortContentUnchanged(t *testing.T) {
	content := "package main\n\nfunc main() {}\n"
	assert.Equal(t, content, Truncate(content, 1000))
}

func TestTruncate_ExactLimitUnchanged(t *testing.T) {
	content := strings.Repeat("x", 500)
	assert.Equal(t, content, Truncate(content, 500))
}

func TestTruncate_BoundsOutput(t *testing.T) {
	content := strings.Repeat("some line of code\n", 200)
	out := Truncate(content, 500)

	assert.LessOrEqual(t, len(out), 500)
	assert.Contains(t, out, "... [truncated: showing ")
}

func TestTruncate_CutsAtLineBoundary(t *testing.T) {
	// Lines long enough that the last newline within the cut falls
	// after the 80% threshold.
	content := strings.Repeat(strings.Repeat("a", 99)+"\n", 50)
	out := Truncate(content, 1000)

	body := out[:strings.Index(out, "\n\n... [truncated")]
	assert.True(t, strings.HasSuffix(body, strings.Repeat("a", 99)), "cut should land on a line boundary")
}

func TestTruncate_HardCutWithoutNearbyNewline(t *testing.T) {
	// A single enormous line: no boundary to back up to, keep the hard
	// character cut.
	content := strings.Repeat("z", 5000)
	out := Truncate(content, 1000)

	assert.LessOrEqual(t, len(out), 1000)
	assert.Contains(t, out, "showing 1/1 lines")
}

func TestTruncate_Idempotent(t *testing.T) {
	content := strings.Repeat("line one\nline two\n", 300)
	once := Truncate(content, 800)
	twice := Truncate(once, 800)

	assert.Equal(t, once, twice)
}

func TestTruncate_ReportsLineCounts(t *testing.T) {
	content := strings.Repeat("0123456789\n", 100) // 101 lines counting the trailing one
	out := Truncate(content, 500)

	assert.Contains(t, out, "/101 lines]")
}
