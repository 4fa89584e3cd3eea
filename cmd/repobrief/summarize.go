// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/petar-djukic/repobrief/pkg/summarizer"
)

// newSummarizeCmd creates the "summarize" command.
func newSummarizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summarize [github-url]",
		Short: "Summarize a repository",
		Long:  "Summarize fetches a repository's files, selects the most informative subset, and prints the LLM's structured summary as JSON.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSummarize,
	}

	cmd.Flags().String("local", "", "Summarize a local git clone instead of a GitHub URL")

	return cmd
}

// runSummarize executes the summarization and prints the result.
func runSummarize(cmd *cobra.Command, args []string) error {
	localDir, _ := cmd.Flags().GetString("local")
	if localDir == "" && len(args) == 0 {
		return fmt.Errorf("a GitHub URL argument or --local directory is required")
	}

	cfg := summarizer.Config{
		Model:       viper.GetString("model"),
		Region:      viper.GetString("region"),
		Profile:     viper.GetString("profile"),
		GitHubToken: viper.GetString("github-token"),
		MaxTokens:   viper.GetInt("max-tokens"),
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	s, err := summarizer.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	var result *summarizer.Result
	if localDir != "" {
		result, err = s.SummarizeDir(ctx, localDir)
	} else {
		result, err = s.SummarizeRepo(ctx, args[0])
	}
	if err != nil {
		return err
	}

	printResult(result)
	return nil
}

// printResult outputs the summary as JSON to stdout.
func printResult(result *summarizer.Result) {
	out, err := json.MarshalIndent(result.Summary, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling result: %v\n", err)
		return
	}
	fmt.Println(string(out))
	fmt.Fprintf(os.Stderr, "files: %d selected, %d fetched; tokens: %d in, %d out\n",
		result.FilesSelected, result.FilesFetched,
		result.TokensUsed.InputTokens, result.TokensUsed.OutputTokens)
}
