// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package triage decides which repository files are worth fetching:
// it filters out noise, ranks survivors into priority tiers, and fills
// a character budget preferring many small files over few large ones.
package triage

import (
	"path"
	"regexp"
	"strings"
)

// skipDirs are directory names whose contents are never considered:
// dependency trees, build output, caches, virtualenvs, VCS internals.
var skipDirs = map[string]struct{}{
	"node_modules": {}, "vendor": {}, "dist": {}, "build": {}, ".git": {},
	"__pycache__": {}, ".next": {}, ".nuxt": {}, "venv": {}, ".venv": {},
	"env": {}, ".env": {}, "target": {}, "coverage": {}, ".nyc_output": {},
	"eggs": {}, ".eggs": {}, "htmlcov": {}, ".tox": {}, ".pytest_cache": {},
	".mypy_cache": {}, ".ruff_cache": {}, "site-packages": {},
	"bower_components": {}, "jspm_packages": {},
}

// skipExtensions are binary, media, archive, and compiled-artifact
// extensions (lowercased, with leading dot), plus the generic lock
// extension.
var skipExtensions = map[string]struct{}{
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".svg": {}, ".ico": {},
	".webp": {}, ".bmp": {}, ".tiff": {},
	".mp4": {}, ".mp3": {}, ".wav": {}, ".ogg": {}, ".mov": {}, ".avi": {},
	".woff": {}, ".woff2": {}, ".ttf": {}, ".eot": {}, ".otf": {},
	".pdf": {}, ".doc": {}, ".docx": {}, ".xls": {}, ".xlsx": {}, ".ppt": {}, ".pptx": {},
	".zip": {}, ".tar": {}, ".gz": {}, ".bz2": {}, ".7z": {}, ".rar": {}, ".xz": {},
	".exe": {}, ".dll": {}, ".so": {}, ".dylib": {}, ".a": {}, ".lib": {},
	".pyc": {}, ".pyo": {}, ".class": {}, ".jar": {}, ".war": {},
	".bin": {}, ".dat": {}, ".db": {}, ".sqlite": {}, ".sqlite3": {},
	".lock": {},
}

// skipFilenames are generated lock files and OS artifacts matched by
// exact final path segment.
var skipFilenames = map[string]struct{}{
	"package-lock.json": {}, "yarn.lock": {}, "poetry.lock": {},
	"Pipfile.lock": {}, "composer.lock": {}, "Gemfile.lock": {},
	"cargo.lock": {}, "pnpm-lock.yaml": {}, "shrinkwrap.json": {},
	"npm-shrinkwrap.json": {}, ".DS_Store": {}, "Thumbs.db": {},
	".gitkeep": {},
}

// skipPatterns match generated and fixture paths that the name and
// extension denylists miss.
var skipPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\.min\.(js|css)$`),      // minified
	regexp.MustCompile(`\.bundle\.js$`),         // bundled
	regexp.MustCompile(`\.(pb|pb2)\.go$`),       // protobuf generated (Go)
	regexp.MustCompile(`\.generated\.\w+$`),     // explicitly generated
	regexp.MustCompile(`_pb2\.py$`),             // protobuf generated (Python)
	regexp.MustCompile(`migrations?/\d+.*\.py$`), // numbered migration scripts
	regexp.MustCompile(`\.snap$`),               // snapshot tests
	regexp.MustCompile(`\.map$`),                // source maps
	regexp.MustCompile(`test[_-]?fixtures?/`),
	regexp.MustCompile(`fixtures?/.*\.(json|yaml|yml)$`),
}

// ShouldSkip reports whether a path is noise and must never reach the
// candidate set, the selection, or the tree rendering. It is pure and
// never fails; a malformed path simply falls through the rules.
func ShouldSkip(p string) bool {
	segments := strings.Split(p, "/")
	name := segments[len(segments)-1]

	for _, seg := range segments[:len(segments)-1] {
		if _, ok := skipDirs[strings.ToLower(seg)]; ok {
			return true
		}
		if strings.HasSuffix(seg, ".egg-info") {
			return true
		}
	}

	if _, ok := skipFilenames[name]; ok {
		return true
	}

	if ext := strings.ToLower(path.Ext(name)); ext != "" {
		if _, ok := skipExtensions[ext]; ok {
			return true
		}
	}

	for _, re := range skipPatterns {
		if re.MatchString(p) {
			return true
		}
	}

	return false
}
