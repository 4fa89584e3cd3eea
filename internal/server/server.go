// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package server exposes the summarization pipeline over HTTP. It owns
// request parsing, the mapping from pipeline failures to status codes,
// and the JSON error envelope.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/petar-djukic/repobrief/internal/github"
	"github.com/petar-djukic/repobrief/internal/llm"
	"github.com/petar-djukic/repobrief/internal/pipeline"
)

// Summarizer produces a repository summary for an owner/repo pair.
type Summarizer interface {
	Summarize(ctx context.Context, owner, repo string) (*pipeline.Result, error)
}

// Service is the production Summarizer, wiring a GitHub source and an LLM
// prompter into a pipeline run per request.
type Service struct {
	Client   *github.Client
	Prompter pipeline.Prompter
	Logger   *slog.Logger
}

// Summarize runs the pipeline against the named GitHub repository.
func (s *Service) Summarize(ctx context.Context, owner, repo string) (*pipeline.Result, error) {
	runner := pipeline.NewRunner(pipeline.Deps{
		Source:   s.Client.NewSource(owner, repo),
		Prompter: s.Prompter,
		Logger:   s.Logger,
	})
	return runner.Run(ctx)
}

// Server handles HTTP requests for repository summarization.
type Server struct {
	summarizer Summarizer
	log        *slog.Logger
}

// NewServer creates a Server around the given Summarizer.
func NewServer(summarizer Summarizer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{summarizer: summarizer, log: logger}
}

// Handler returns the HTTP handler with all routes registered.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /summarize", s.handleSummarize)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

type summarizeRequest struct {
	GitHubURL string `json:"github_url"`
}

type summarizeResponse struct {
	Summary      string   `json:"summary"`
	Technologies []string `json:"technologies"`
	Structure    string   `json:"structure"`
}

type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	w.Header().Set("X-Request-ID", requestID)
	log := s.log.With("request_id", requestID)

	var req summarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, log, http.StatusBadRequest, "request body must be JSON with a github_url field")
		return
	}

	owner, repo, err := github.ParseRepoURL(strings.TrimSpace(req.GitHubURL))
	if err != nil {
		s.writeError(w, log, http.StatusBadRequest, err.Error())
		return
	}
	log = log.With("repo", owner+"/"+repo)
	log.Info("summarize request received")

	result, err := s.summarizer.Summarize(r.Context(), owner, repo)
	if err != nil {
		s.writeError(w, log, statusFor(err), err.Error())
		return
	}

	log.Info("summarize request completed",
		"files_selected", result.FilesSelected,
		"files_fetched", result.FilesFetched,
		"tokens", result.TokensUsed.Total())

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(summarizeResponse{
		Summary:      result.Summary.Summary,
		Technologies: result.Summary.Technologies,
		Structure:    result.Summary.Structure,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}` + "\n"))
}

// statusFor maps pipeline and source failures to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, github.ErrBadURL):
		return http.StatusBadRequest
	case errors.Is(err, github.ErrNotFound),
		errors.Is(err, pipeline.ErrEmptyRepo),
		errors.Is(err, pipeline.ErrNoReadableFiles):
		return http.StatusNotFound
	case errors.Is(err, github.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, github.ErrLegal):
		return http.StatusUnavailableForLegalReasons
	case errors.Is(err, github.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, github.ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, github.ErrUpstream):
		return http.StatusBadGateway
	case errors.Is(err, llm.ErrLLMFailure):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, log *slog.Logger, status int, message string) {
	log.Warn("request failed", "status", status, "error", message)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Status: "error", Message: message})
}
