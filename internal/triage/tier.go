// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package triage

import (
	"regexp"
	"strings"
)

// Priority tiers. Lower is higher priority; tier 1 and 2 files are
// considered essential and bypass the selection budget.
const (
	TierDocs     = 1 // canonical project documentation
	TierManifest = 2 // build/dependency manifests, container config
	TierEntry    = 3 // language entry points
	TierInfra    = 4 // CI and infra configuration
	TierDefault  = 5 // everything else
)

// tier1Names matches canonical documentation filenames, with or
// without a text extension.
var tier1Names = regexp.MustCompile(
	`(?i)^(README|ARCHITECTURE|OVERVIEW|CONTRIBUTING|CHANGELOG|DESIGN)(\.md|\.rst|\.txt)?$`,
)

// tier2Names are package manifests for the major ecosystems plus
// container/orchestration config and environment examples.
var tier2Names = map[string]struct{}{
	"package.json": {}, "pyproject.toml": {}, "setup.py": {}, "setup.cfg": {},
	"Cargo.toml": {}, "go.mod": {}, "pom.xml": {}, "build.gradle": {},
	"build.gradle.kts": {}, "Gemfile": {}, "composer.json": {}, "mix.exs": {},
	"pubspec.yaml": {}, "requirements.txt": {}, "Pipfile": {},
	"Dockerfile": {}, "docker-compose.yml": {}, "docker-compose.yaml": {},
	".env.example": {}, ".env.sample": {},
}

// tier3Entry matches entry-point files for common source languages.
var tier3Entry = regexp.MustCompile(
	`(?i)(^|/)(main|app|server|index|cli|__main__|__init__)\.(py|go|js|ts|rb|rs|java|cs|cpp|c)$`,
)

// tier4Infra matches CI workflows and infra configuration.
var tier4Infra = regexp.MustCompile(
	`(?i)(\.github/workflows/|\.gitlab-ci|Makefile|Taskfile|nginx\.conf|supervisord|gunicorn|uwsgi)`,
)

// TierOf assigns a priority tier to a non-skipped path. It is a pure
// function of the path string; rules are checked tier 1 through 4 in
// order and the first match wins.
func TierOf(p string) int {
	name := p
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		name = p[i+1:]
	}

	if tier1Names.MatchString(name) {
		return TierDocs
	}
	if _, ok := tier2Names[name]; ok {
		return TierManifest
	}
	if tier3Entry.MatchString(p) {
		return TierEntry
	}
	if tier4Infra.MatchString(p) {
		return TierInfra
	}
	return TierDefault
}
