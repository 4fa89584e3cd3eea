// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package github

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrBadURL indicates a string is not a usable GitHub repository URL.
var ErrBadURL = errors.New("invalid GitHub repository URL")

// Accepts https://github.com/owner/repo with an optional .git suffix or
// trailing path segments.
var repoURLPattern = regexp.MustCompile(`^https?://github\.com/([a-zA-Z0-9_.-]+)/([a-zA-Z0-9_.-]+?)(?:\.git)?(?:/.*)?$`)

// ParseRepoURL extracts the owner and repository name from a GitHub URL.
func ParseRepoURL(raw string) (owner, repo string, err error) {
	m := repoURLPattern.FindStringSubmatch(raw)
	if m == nil {
		return "", "", fmt.Errorf("%w: %q", ErrBadURL, raw)
	}
	return m[1], m[2], nil
}
