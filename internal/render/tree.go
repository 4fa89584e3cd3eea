// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/petar-djukic/repobrief/internal/triage"
	"github.com/petar-djukic/repobrief/pkg/types"
)

// TreeMaxEntries caps the directory-tree rendering for huge
// repositories.
const TreeMaxEntries = 500

// emptyTree is the sentinel when no non-skipped blobs exist.
const emptyTree = "(empty)"

// DirectoryTree renders a filtered ASCII listing of the repository.
// Noise files are excluded so the tree reflects meaningful structure.
//
// Indentation is purely by path depth: siblings are implied by equal
// depth with no parent-chain validation. A known cosmetic
// approximation, kept as-is for output parity with downstream
// consumers.
func DirectoryTree(entries []types.TreeEntry) string {
	var paths []string
	for _, e := range entries {
		if e.Kind == types.Blob && !triage.ShouldSkip(e.Path) {
			paths = append(paths, e.Path)
		}
	}
	if len(paths) == 0 {
		return emptyTree
	}
	sort.Strings(paths)

	truncated := false
	if len(paths) > TreeMaxEntries {
		paths = paths[:TreeMaxEntries]
		truncated = true
	}

	lines := make([]string, 0, len(paths)+1)
	for _, p := range paths {
		depth := strings.Count(p, "/")
		name := p
		if i := strings.LastIndexByte(p, '/'); i >= 0 {
			name = p[i+1:]
		}
		glyph := ""
		if depth > 0 {
			glyph = "└── "
		}
		lines = append(lines, strings.Repeat("  ", depth)+glyph+name)
	}

	if truncated {
		lines = append(lines, fmt.Sprintf("  ... [tree truncated at %d entries]", TreeMaxEntries))
	}

	return strings.Join(lines, "\n")
}
