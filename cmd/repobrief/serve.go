// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/petar-djukic/repobrief/internal/github"
	"github.com/petar-djukic/repobrief/internal/llm"
	"github.com/petar-djukic/repobrief/internal/server"
)

const shutdownGrace = 10 * time.Second

// newServeCmd creates the "serve" command.
func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the summarization HTTP service",
		Long:  "Serve exposes POST /summarize and GET /healthz until interrupted.",
		RunE:  runServe,
	}

	cmd.Flags().String("addr", ":8000", "Listen address")
	viper.BindPFlag("addr", cmd.Flags().Lookup("addr"))

	return cmd
}

// runServe starts the HTTP server and blocks until interrupted.
func runServe(cmd *cobra.Command, args []string) error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	client, err := llm.NewClient(ctx, llm.ClientConfig{
		ModelID:   viper.GetString("model"),
		Region:    viper.GetString("region"),
		Profile:   viper.GetString("profile"),
		MaxTokens: viper.GetInt("max-tokens"),
	})
	if err != nil {
		return fmt.Errorf("initializing LLM client: %w", err)
	}

	service := &server.Service{
		Client: github.NewClient(github.ClientConfig{
			Token:  viper.GetString("github-token"),
			Logger: logger,
		}),
		Prompter: client,
		Logger:   logger,
	}

	addr := viper.GetString("addr")
	httpServer := &http.Server{
		Addr:    addr,
		Handler: server.NewServer(service, logger).Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
