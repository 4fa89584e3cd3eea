// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package triage

import (
	"sort"

	"github.com/petar-djukic/repobrief/pkg/types"
)

// The tunable knobs of the whole pipeline. Byte size stands in for
// post-decode character count; an approximation, since exact counts
// are unavailable before retrieval.
const (
	// CharBudget is the maximum total length of the rendered
	// file-content excerpt sent to the LLM (~18-20k tokens).
	CharBudget = 70_000

	// MaxFileChars is the hard cap per individual file before
	// truncation.
	MaxFileChars = 6_000
)

// Select returns the ordered list of paths to fetch, respecting the
// character budget. Candidates are walked tier by tier, smaller files
// first within a tier: many small files give broader coverage of the
// project than one large file for the same spend.
//
// Tier 1 and 2 files are always included, even when this drives the
// running budget negative. Essential context is non-negotiable.
func Select(entries []types.TreeEntry) []string {
	var candidates []types.Candidate
	for _, e := range entries {
		if e.Kind != types.Blob {
			continue
		}
		if ShouldSkip(e.Path) {
			continue
		}
		candidates = append(candidates, types.Candidate{
			Path: e.Path,
			Size: e.Size,
			Tier: TierOf(e.Path),
		})
	}

	// Stable: exact (tier, size) ties keep original tree order.
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Tier != candidates[j].Tier {
			return candidates[i].Tier < candidates[j].Tier
		}
		return candidates[i].Size < candidates[j].Size
	})

	var selected []string
	remaining := int64(CharBudget)

	for _, c := range candidates {
		if remaining <= 0 && c.Tier > TierManifest {
			// Sorted order: every later candidate is lower priority.
			break
		}
		allotment := c.Size
		if allotment > MaxFileChars {
			allotment = MaxFileChars
		}
		if allotment <= remaining || c.Tier <= TierManifest {
			selected = append(selected, c.Path)
			remaining -= allotment
		}
	}

	return selected
}
