// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Command repobrief summarizes code repositories with an LLM, either as a
// one-shot CLI or as an HTTP service.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const version = "0.1.0"

func main() {
	// Local .env files hold tokens during development; absence is fine.
	_ = godotenv.Load()

	rootCmd := newRootCmd()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the root command with its flags bound to viper.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "repobrief",
		Short: "LLM-powered repository summarizer",
		Long:  "repobrief selects the most informative files from a repository, fits them into a bounded context, and asks an LLM for a structured summary.",
	}

	// Global flags.
	rootCmd.PersistentFlags().String("model", "", "Bedrock model ID")
	rootCmd.PersistentFlags().String("region", "", "AWS region for Bedrock")
	rootCmd.PersistentFlags().String("profile", "", "AWS credential profile")
	rootCmd.PersistentFlags().String("github-token", "", "GitHub API token (optional)")
	rootCmd.PersistentFlags().Int("max-tokens", 1024, "Maximum tokens for LLM response")

	// Bind flags to viper.
	viper.BindPFlag("model", rootCmd.PersistentFlags().Lookup("model"))
	viper.BindPFlag("region", rootCmd.PersistentFlags().Lookup("region"))
	viper.BindPFlag("profile", rootCmd.PersistentFlags().Lookup("profile"))
	viper.BindPFlag("github-token", rootCmd.PersistentFlags().Lookup("github-token"))
	viper.BindPFlag("max-tokens", rootCmd.PersistentFlags().Lookup("max-tokens"))

	// Env vars: REPOBRIEF_MODEL, REPOBRIEF_GITHUB_TOKEN, etc. The
	// replacer maps hyphenated keys onto underscored variable names.
	viper.SetEnvPrefix("REPOBRIEF")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Config file.
	viper.SetConfigName(".repobrief")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.ReadInConfig() // Ignore error; config file is optional.

	// Add commands.
	rootCmd.AddCommand(newSummarizeCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// newVersionCmd creates the "version" command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print repobrief version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("repobrief %s\n", version)
		},
	}
}
