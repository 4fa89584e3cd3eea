// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

// RepoSummary is the structured analysis returned by the LLM.
type RepoSummary struct {
	Summary      string   `json:"summary"`      // What the project does and who uses it
	Technologies []string `json:"technologies"` // Languages, frameworks, infrastructure
	Structure    string   `json:"structure"`    // How the project is organized
}
