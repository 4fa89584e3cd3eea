// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package summarizer

import (
	"context"
	"fmt"

	"github.com/petar-djukic/repobrief/internal/github"
	"github.com/petar-djukic/repobrief/internal/gitsource"
	"github.com/petar-djukic/repobrief/internal/llm"
	"github.com/petar-djukic/repobrief/internal/pipeline"
)

const defaultMaxTokens = 1024

// New validates the config, initializes the LLM and GitHub clients, and
// returns a ready-to-use Summarizer. No network calls happen until a
// Summarize method is invoked, except AWS credential resolution.
func New(ctx context.Context, cfg Config) (Summarizer, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	applyDefaults(&cfg)

	client, err := llm.NewClient(ctx, llm.ClientConfig{
		ModelID:   cfg.Model,
		Region:    cfg.Region,
		Profile:   cfg.Profile,
		MaxTokens: cfg.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLLMFailure, err)
	}

	return &summarizerAdapter{
		github:   github.NewClient(github.ClientConfig{Token: cfg.GitHubToken}),
		prompter: client,
	}, nil
}

// summarizerAdapter wires internal components behind the public interface.
type summarizerAdapter struct {
	github   *github.Client
	prompter pipeline.Prompter
}

func (a *summarizerAdapter) SummarizeRepo(ctx context.Context, githubURL string) (*Result, error) {
	owner, repo, err := github.ParseRepoURL(githubURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return a.run(ctx, a.github.NewSource(owner, repo))
}

func (a *summarizerAdapter) SummarizeDir(ctx context.Context, dir string) (*Result, error) {
	source, err := gitsource.Open(dir)
	if err != nil {
		return nil, err
	}
	return a.run(ctx, source)
}

func (a *summarizerAdapter) run(ctx context.Context, source pipeline.Source) (*Result, error) {
	runner := pipeline.NewRunner(pipeline.Deps{
		Source:   source,
		Prompter: a.prompter,
	})

	ir, err := runner.Run(ctx)
	if err != nil {
		return nil, err
	}
	return &Result{
		Summary:       ir.Summary,
		FilesSelected: ir.FilesSelected,
		FilesFetched:  ir.FilesFetched,
		TokensUsed:    ir.TokensUsed,
	}, nil
}

// validateConfig checks that required fields are present.
func validateConfig(cfg Config) error {
	if cfg.Model == "" {
		return fmt.Errorf("Model is required")
	}
	if cfg.Region == "" {
		return fmt.Errorf("Region is required")
	}
	return nil
}

// applyDefaults fills in zero-value fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
}
