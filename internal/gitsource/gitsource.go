// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package gitsource lists and reads files from a local git clone,
// serving as an offline alternative to the GitHub API source.
package gitsource

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"unicode/utf8"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/petar-djukic/repobrief/pkg/types"
)

// ErrNoGit is returned when the directory is not a git repository.
var ErrNoGit = errors.New("not a git repository")

// Source reads the HEAD tree of a local repository.
type Source struct {
	repo *gogit.Repository
	dir  string
}

// Open opens an existing git repository at dir. Returns ErrNoGit if
// the directory is not a repository.
func Open(dir string) (*Source, error) {
	r, err := gogit.PlainOpen(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoGit, err)
	}
	return &Source{repo: r, dir: dir}, nil
}

// Label identifies the repository in prompts and logs.
func (s *Source) Label() string {
	return filepath.Base(s.dir)
}

// Tree lists every file in the HEAD commit as a blob entry with its
// size, matching the shape of the remote tree listing.
func (s *Source) Tree(ctx context.Context) ([]types.TreeEntry, error) {
	tree, err := s.headTree()
	if err != nil {
		return nil, err
	}

	var entries []types.TreeEntry
	err = tree.Files().ForEach(func(f *object.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		entries = append(entries, types.TreeEntry{
			Path: f.Name,
			Size: f.Blob.Size,
			Kind: types.Blob,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking HEAD tree: %w", err)
	}
	return entries, nil
}

// Fetch reads the requested blobs from the HEAD commit. Unreadable and
// binary (non-UTF-8) files are dropped silently, mirroring the
// best-effort remote fetch.
func (s *Source) Fetch(ctx context.Context, paths []string) (map[string]string, error) {
	tree, err := s.headTree()
	if err != nil {
		return nil, err
	}

	files := make(map[string]string, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f, err := tree.File(p)
		if err != nil {
			continue
		}
		content, err := f.Contents()
		if err != nil || !utf8.ValidString(content) {
			continue
		}
		files[p] = content
	}
	return files, nil
}

// headTree resolves the tree of the HEAD commit.
func (s *Source) headTree() (*object.Tree, error) {
	head, err := s.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("getting HEAD: %w", err)
	}
	commit, err := s.repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("getting commit: %w", err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("getting tree: %w", err)
	}
	return tree, nil
}
