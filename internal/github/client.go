// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package github retrieves repository trees and raw file contents from
// the GitHub API. Individual file failures are swallowed: the
// summarization task tolerates partial input, so a bad file must never
// abort the pipeline.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/petar-djukic/repobrief/pkg/types"
)

const (
	defaultAPIBaseURL = "https://api.github.com"
	defaultRawBaseURL = "https://raw.githubusercontent.com"
	apiVersion        = "2022-11-28"
	requestTimeout    = 20 * time.Second
)

// Caller-visible failure classes for the GitHub API.
var (
	ErrNotFound    = errors.New("repository not found or is private")
	ErrForbidden   = errors.New("access denied, the repository may be private")
	ErrRateLimited = errors.New("GitHub API rate limit exceeded, try again later or set a token")
	ErrLegal       = errors.New("repository unavailable for legal reasons")
	ErrTimeout     = errors.New("GitHub API request timed out")
	ErrUpstream    = errors.New("GitHub API error")
)

// ClientConfig configures the GitHub client.
type ClientConfig struct {
	Token      string       // Optional bearer token (raises rate limits, allows private repos)
	APIBaseURL string       // Override for testing (default api.github.com)
	RawBaseURL string       // Override for testing (default raw.githubusercontent.com)
	HTTPClient *http.Client // Optional; a default client is used when nil
	Logger     *slog.Logger // Optional; slog.Default() when nil
}

// Client talks to the GitHub REST API for one or more repositories.
type Client struct {
	http   *http.Client
	token  string
	apiURL string
	rawURL string
	log    *slog.Logger
}

// NewClient creates a GitHub client from the given configuration.
func NewClient(cfg ClientConfig) *Client {
	c := &Client{
		http:   cfg.HTTPClient,
		token:  cfg.Token,
		apiURL: cfg.APIBaseURL,
		rawURL: cfg.RawBaseURL,
		log:    cfg.Logger,
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	if c.apiURL == "" {
		c.apiURL = defaultAPIBaseURL
	}
	if c.rawURL == "" {
		c.rawURL = defaultRawBaseURL
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	return c
}

// DefaultBranch resolves the repository's default branch name.
func (c *Client) DefaultBranch(ctx context.Context, owner, repo string) (string, error) {
	var info struct {
		DefaultBranch string `json:"default_branch"`
	}
	url := fmt.Sprintf("%s/repos/%s/%s", c.apiURL, owner, repo)
	if err := c.getJSON(ctx, url, &info); err != nil {
		return "", err
	}
	if info.DefaultBranch == "" {
		return "", fmt.Errorf("%w: no default branch for %s/%s", ErrUpstream, owner, repo)
	}
	return info.DefaultBranch, nil
}

// Tree lists all blob entries of the repository at the given branch,
// recursively. A truncated listing (very large repository) is used
// as-is with a warning.
func (c *Client) Tree(ctx context.Context, owner, repo, branch string) ([]types.TreeEntry, error) {
	var resp struct {
		Truncated bool `json:"truncated"`
		Tree      []struct {
			Path string `json:"path"`
			Size int64  `json:"size"`
			Type string `json:"type"`
		} `json:"tree"`
	}
	url := fmt.Sprintf("%s/repos/%s/%s/git/trees/%s?recursive=1", c.apiURL, owner, repo, branch)
	if err := c.getJSON(ctx, url, &resp); err != nil {
		return nil, err
	}

	if resp.Truncated {
		c.log.Warn("GitHub tree response was truncated, results may be incomplete",
			"owner", owner, "repo", repo)
	}

	var entries []types.TreeEntry
	for _, item := range resp.Tree {
		if item.Type != "blob" {
			continue
		}
		entries = append(entries, types.TreeEntry{
			Path: item.Path,
			Size: item.Size,
			Kind: types.Blob,
		})
	}
	return entries, nil
}

// getJSON performs an authenticated GET and decodes the JSON body,
// mapping GitHub status codes onto the package's sentinel errors.
func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return fmt.Errorf("%w: network error: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if err := classifyStatus(resp); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", ErrUpstream, err)
	}
	return nil
}

// classifyStatus translates the HTTP status into a sentinel error, or
// nil for success.
func classifyStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusForbidden:
		var body struct {
			Message string `json:"message"`
		}
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		_ = json.Unmarshal(data, &body)
		if strings.Contains(strings.ToLower(body.Message), "rate limit") {
			return ErrRateLimited
		}
		return ErrForbidden
	case resp.StatusCode == http.StatusUnavailableForLegalReasons:
		return ErrLegal
	default:
		return fmt.Errorf("%w: unexpected status %d", ErrUpstream, resp.StatusCode)
	}
}

// setHeaders applies the standard GitHub API headers plus the optional
// bearer token.
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}
