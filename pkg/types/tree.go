// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package types holds the shared data model for repository summarization.
package types

// EntryKind distinguishes file records from directory records in a
// repository tree listing.
type EntryKind string

const (
	Blob EntryKind = "blob"
	Tree EntryKind = "tree"
)

// TreeEntry is one record from a repository's file listing. Paths are
// POSIX-style, slash-separated, relative to the repository root.
type TreeEntry struct {
	Path string    // Repo-relative path
	Size int64     // Size in bytes (blobs only)
	Kind EntryKind // blob or tree
}

// Candidate is a tree entry that survived skip filtering, carrying its
// assigned priority tier (1 = highest).
type Candidate struct {
	Path string
	Size int64
	Tier int
}

// FileContent pairs a path with its fetched text content. Only files
// that were retrieved and decoded as UTF-8 are represented; binary or
// unreadable files are simply absent.
type FileContent struct {
	Path    string
	Content string
}
