// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/repobrief/pkg/types"

	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
)

type fakeSource struct {
	label    string
	entries  []types.TreeEntry
	files    map[string]string
	treeErr  error
	fetchErr error

	fetchedPaths []string
}

func (s *fakeSource) Label() string { return s.label }

func (s *fakeSource) Tree(ctx context.Context) ([]types.TreeEntry, error) {
	return s.entries, s.treeErr
}

func (s *fakeSource) Fetch(ctx context.Context, paths []string) (map[string]string, error) {
	s.fetchedPaths = paths
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	out := make(map[string]string)
	for _, p := range paths {
		if content, ok := s.files[p]; ok {
			out[p] = content
		}
	}
	return out, nil
}

type fakePrompter struct {
	response string
	err      error
	usage    types.TokenUsage

	lastUserText string
}

func (p *fakePrompter) Generate(ctx context.Context, system []brtypes.SystemContentBlock, messages []brtypes.Message) (string, types.TokenUsage, error) {
	if len(messages) > 0 && len(messages[0].Content) > 0 {
		if text, ok := messages[0].Content[0].(*brtypes.ContentBlockMemberText); ok {
			p.lastUserText = text.Value
		}
	}
	if p.err != nil {
		return "", types.TokenUsage{}, p.err
	}
	return p.response, p.usage, nil
}

const validResponse = `{"summary":"A small Go tool.","technologies":["Go"],"structure":"Flat layout."}`

func blob(path string, size int64) types.TreeEntry {
	return types.TreeEntry{Path: path, Size: size, Kind: types.Blob}
}

func TestRun_Success(t *testing.T) {
	source := &fakeSource{
		label: "octo/hello",
		entries: []types.TreeEntry{
			blob("README.md", 100),
			blob("main.go", 200),
			{Path: "docs", Kind: types.Tree},
		},
		files: map[string]string{
			"README.md": "# Hello",
			"main.go":   "package main",
		},
	}
	prompter := &fakePrompter{
		response: validResponse,
		usage:    types.TokenUsage{InputTokens: 120, OutputTokens: 40},
	}

	runner := NewRunner(Deps{Source: source, Prompter: prompter})
	result, err := runner.Run(context.Background())
	require.NoError(t, err)

	require.NotNil(t, result.Summary)
	assert.Equal(t, "A small Go tool.", result.Summary.Summary)
	assert.Equal(t, []string{"Go"}, result.Summary.Technologies)
	assert.Equal(t, 2, result.FilesSelected)
	assert.Equal(t, 2, result.FilesFetched)
	assert.Equal(t, 160, result.TokensUsed.Total())

	// The prompt carries the repo label, the full tree, and file contents.
	assert.Contains(t, prompter.lastUserText, "Repository: octo/hello")
	assert.Contains(t, prompter.lastUserText, "README.md")
	assert.Contains(t, prompter.lastUserText, "package main")
}

func TestRun_EmptyRepo(t *testing.T) {
	source := &fakeSource{
		label:   "octo/empty",
		entries: []types.TreeEntry{{Path: "docs", Kind: types.Tree}},
	}

	runner := NewRunner(Deps{Source: source, Prompter: &fakePrompter{}})
	_, err := runner.Run(context.Background())
	assert.ErrorIs(t, err, ErrEmptyRepo)
}

func TestRun_NothingSelected(t *testing.T) {
	// Blobs exist but every one is skip-listed.
	source := &fakeSource{
		label: "octo/binary",
		entries: []types.TreeEntry{
			blob("logo.png", 100),
			blob("app.min.js", 200),
		},
	}

	runner := NewRunner(Deps{Source: source, Prompter: &fakePrompter{}})
	_, err := runner.Run(context.Background())
	assert.ErrorIs(t, err, ErrNoReadableFiles)
}

func TestRun_AllFetchesFail(t *testing.T) {
	source := &fakeSource{
		label:   "octo/hello",
		entries: []types.TreeEntry{blob("main.go", 200)},
		files:   map[string]string{}, // every fetch drops
	}

	runner := NewRunner(Deps{Source: source, Prompter: &fakePrompter{}})
	_, err := runner.Run(context.Background())
	assert.ErrorIs(t, err, ErrNoReadableFiles)
}

func TestRun_TreeErrorPropagates(t *testing.T) {
	sentinel := errors.New("upstream down")
	source := &fakeSource{label: "octo/hello", treeErr: sentinel}

	runner := NewRunner(Deps{Source: source, Prompter: &fakePrompter{}})
	_, err := runner.Run(context.Background())
	assert.ErrorIs(t, err, sentinel)
}

func TestRun_GenerateErrorPropagates(t *testing.T) {
	sentinel := errors.New("throttled")
	source := &fakeSource{
		label:   "octo/hello",
		entries: []types.TreeEntry{blob("main.go", 200)},
		files:   map[string]string{"main.go": "package main"},
	}

	runner := NewRunner(Deps{Source: source, Prompter: &fakePrompter{err: sentinel}})
	_, err := runner.Run(context.Background())
	assert.ErrorIs(t, err, sentinel)
}

func TestRun_MalformedResponse(t *testing.T) {
	source := &fakeSource{
		label:   "octo/hello",
		entries: []types.TreeEntry{blob("main.go", 200)},
		files:   map[string]string{"main.go": "package main"},
	}
	prompter := &fakePrompter{response: "not json at all"}

	runner := NewRunner(Deps{Source: source, Prompter: prompter})
	result, err := runner.Run(context.Background())
	require.Error(t, err)
	assert.Nil(t, result.Summary)
}

func TestRun_TokenUsageIsPerRun(t *testing.T) {
	source := &fakeSource{
		label:   "octo/hello",
		entries: []types.TreeEntry{blob("main.go", 200)},
		files:   map[string]string{"main.go": "package main"},
	}
	prompter := &fakePrompter{
		response: validResponse,
		usage:    types.TokenUsage{InputTokens: 10, OutputTokens: 5},
	}
	runner := NewRunner(Deps{Source: source, Prompter: prompter})

	// Back-to-back runs against the same prompter must not leak one
	// run's token counts into the next result.
	for i := 0; i < 2; i++ {
		result, err := runner.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 10, result.TokensUsed.InputTokens)
		assert.Equal(t, 5, result.TokensUsed.OutputTokens)
	}
}

func TestRun_FetchOrderFollowsSelection(t *testing.T) {
	// README (tier 1) precedes go.mod (tier 2) precedes main.go (tier 3).
	source := &fakeSource{
		label: "octo/hello",
		entries: []types.TreeEntry{
			blob("main.go", 50),
			blob("go.mod", 30),
			blob("README.md", 40),
		},
		files: map[string]string{
			"main.go":   "package main",
			"go.mod":    "module hello",
			"README.md": "# Hello",
		},
	}

	runner := NewRunner(Deps{Source: source, Prompter: &fakePrompter{response: validResponse}})
	_, err := runner.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"README.md", "go.mod", "main.go"}, source.fetchedPaths)
}
