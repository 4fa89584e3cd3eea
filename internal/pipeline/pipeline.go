// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package pipeline implements the summarization orchestrator, wiring the
// content source, triage, rendering, and LLM components into a single run.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/petar-djukic/repobrief/internal/llm"
	"github.com/petar-djukic/repobrief/internal/render"
	"github.com/petar-djukic/repobrief/internal/triage"
	"github.com/petar-djukic/repobrief/pkg/types"

	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
)

var (
	// ErrEmptyRepo indicates the repository tree contains no blobs at all.
	ErrEmptyRepo = errors.New("repository appears to be empty")

	// ErrNoReadableFiles indicates the tree had blobs but none survived
	// triage and fetching.
	ErrNoReadableFiles = errors.New("no readable files found in repository")
)

// Source abstracts where repository content comes from: the GitHub API or a
// local clone.
type Source interface {
	// Label identifies the repository in prompts and logs, e.g. "octo/hello".
	Label() string

	// Tree lists every blob reachable from the default branch head.
	Tree(ctx context.Context) ([]types.TreeEntry, error)

	// Fetch retrieves file contents by path. Unreadable files are dropped
	// from the result rather than reported as errors.
	Fetch(ctx context.Context, paths []string) (map[string]string, error)
}

// Prompter abstracts LLM interactions so the orchestrator is testable.
// Generate reports the usage of that call alone; one Prompter may serve
// many concurrent runs.
type Prompter interface {
	Generate(ctx context.Context, system []brtypes.SystemContentBlock, messages []brtypes.Message) (string, types.TokenUsage, error)
}

// Result holds the outcome of a Runner.Run invocation along with run stats.
type Result struct {
	Summary       *types.RepoSummary
	FilesSelected int
	FilesFetched  int
	ContextChars  int
	TokensUsed    types.TokenUsage
}

// Deps holds injected dependencies for the runner.
type Deps struct {
	Source   Source
	Prompter Prompter
	Logger   *slog.Logger
}

// Runner orchestrates the summarization lifecycle.
type Runner struct {
	deps Deps
}

// NewRunner creates a Runner with the given dependencies.
func NewRunner(deps Deps) *Runner {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Runner{deps: deps}
}

// Run executes the full summarization lifecycle: list the tree, select files,
// fetch contents, render the prompt, call the LLM, and parse the summary.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	result := &Result{}
	label := r.deps.Source.Label()

	// Step 1: List the repository tree.
	entries, err := r.deps.Source.Tree(ctx)
	if err != nil {
		return result, fmt.Errorf("listing repository tree: %w", err)
	}

	blobs := 0
	for _, e := range entries {
		if e.Kind == types.Blob {
			blobs++
		}
	}
	if blobs == 0 {
		return result, ErrEmptyRepo
	}
	r.deps.Logger.Info("tree listed", "repo", label, "blobs", blobs)

	// Step 2: Render the directory tree before selection so it reflects the
	// full repository, not just the files that fit the budget.
	tree := render.DirectoryTree(entries)

	// Step 3: Select files worth including.
	selected := triage.Select(entries)
	if len(selected) == 0 {
		return result, ErrNoReadableFiles
	}
	result.FilesSelected = len(selected)

	// Step 4: Fetch contents. Individual failures drop files silently.
	files, err := r.deps.Source.Fetch(ctx, selected)
	if err != nil {
		return result, fmt.Errorf("fetching file contents: %w", err)
	}
	if len(files) == 0 {
		return result, ErrNoReadableFiles
	}
	result.FilesFetched = len(files)
	r.deps.Logger.Info("files fetched", "repo", label,
		"selected", len(selected), "fetched", len(files))

	// Step 5: Render the file context in selection order.
	fileContext := render.FileContext(selected, files)
	result.ContextChars = len(fileContext)

	// Step 6: Build the prompt and call the LLM.
	systemPrompt, err := llm.RenderSystemPrompt()
	if err != nil {
		return result, fmt.Errorf("rendering system prompt: %w", err)
	}

	system, messages := llm.BuildMessages(systemPrompt, label, tree, fileContext)

	responseText, usage, err := r.deps.Prompter.Generate(ctx, system, messages)
	if err != nil {
		return result, fmt.Errorf("LLM call failed: %w", err)
	}
	result.TokensUsed = usage

	// Step 7: Parse the structured summary.
	summary, err := llm.ParseSummary(responseText)
	if err != nil {
		return result, err
	}
	result.Summary = summary

	r.deps.Logger.Info("summary produced", "repo", label,
		"input_tokens", result.TokensUsed.InputTokens,
		"output_tokens", result.TokensUsed.OutputTokens)
	return result, nil
}
