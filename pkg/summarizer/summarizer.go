// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package summarizer defines the public interface for repobrief, a
// library that produces structured LLM summaries of code repositories.
package summarizer

import (
	"context"
	"errors"

	"github.com/petar-djukic/repobrief/pkg/types"
)

// Error types for the Summarizer API.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLLMFailure    = errors.New("LLM call failed")
)

// Config configures a Summarizer instance.
type Config struct {
	Model       string // Bedrock model ID (required)
	Region      string // AWS region (required)
	Profile     string // AWS credential profile (optional)
	GitHubToken string // Optional token for private repos and higher rate limits
	MaxTokens   int    // Maximum tokens for the LLM response (default 1024)
}

// Result holds the outcome of a Summarizer invocation.
type Result struct {
	Summary       *types.RepoSummary // The structured summary
	FilesSelected int                // Files chosen for the context window
	FilesFetched  int                // Files actually retrieved and decoded
	TokensUsed    types.TokenUsage   // Total tokens consumed
}

// Summarizer produces a structured summary of a repository.
type Summarizer interface {
	// SummarizeRepo summarizes a public or token-accessible GitHub
	// repository identified by its HTTPS URL.
	SummarizeRepo(ctx context.Context, githubURL string) (*Result, error)

	// SummarizeDir summarizes a local git clone. Only committed content
	// on HEAD is considered.
	SummarizeDir(ctx context.Context, dir string) (*Result, error)
}
