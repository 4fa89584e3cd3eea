// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package github

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"unicode/utf8"

	"github.com/petar-djukic/repobrief/pkg/types"
)

// maxConcurrentFetches bounds the fan-out of per-file retrievals so a
// large selection does not hammer GitHub.
const maxConcurrentFetches = 10

// FetchFiles retrieves raw contents for the requested paths
// concurrently, bounded by a fixed permit pool. The result maps path
// to decoded text for whichever subset succeeded; failed fetches and
// binary (non-UTF-8) files are absent, never errors. One failing fetch
// does not cancel its siblings.
func (c *Client) FetchFiles(ctx context.Context, owner, repo string, paths []string) map[string]string {
	sem := make(chan struct{}, maxConcurrentFetches)
	files := make(map[string]string, len(paths))

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, p := range paths {
		wg.Add(1)
		go func(path string) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return
			}
			defer func() { <-sem }()

			text, ok := c.fetchFile(ctx, owner, repo, path)
			if !ok {
				return
			}
			mu.Lock()
			files[path] = text
			mu.Unlock()
		}(p)
	}
	wg.Wait()

	return files
}

// fetchFile retrieves one raw file at HEAD. The second return value is
// false on any failure, including binary content.
func (c *Client) fetchFile(ctx context.Context, owner, repo, path string) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	url := fmt.Sprintf("%s/%s/%s/HEAD/%s", c.rawURL, owner, repo, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", false
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("file fetch failed", "path", path, "error", err)
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", false
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Debug("file read failed", "path", path, "error", err)
		return "", false
	}
	if !utf8.Valid(data) {
		c.log.Debug("skipping binary file", "path", path)
		return "", false
	}

	return string(data), true
}

// Source binds the client to one repository, satisfying the pipeline's
// source interface.
type Source struct {
	client *Client
	owner  string
	repo   string
}

// NewSource creates a source for one repository.
func (c *Client) NewSource(owner, repo string) *Source {
	return &Source{client: c, owner: owner, repo: repo}
}

// Label identifies the repository in prompts and logs.
func (s *Source) Label() string {
	return s.owner + "/" + s.repo
}

// Tree resolves the default branch and lists all blobs.
func (s *Source) Tree(ctx context.Context) ([]types.TreeEntry, error) {
	branch, err := s.client.DefaultBranch(ctx, s.owner, s.repo)
	if err != nil {
		return nil, err
	}
	return s.client.Tree(ctx, s.owner, s.repo, branch)
}

// Fetch retrieves the requested paths, best-effort.
func (s *Source) Fetch(ctx context.Context, paths []string) (map[string]string, error) {
	return s.client.FetchFiles(ctx, s.owner, s.repo, paths), nil
}
