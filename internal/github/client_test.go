// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package github

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/petar-djukic/repobrief/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, api, raw http.Handler) *Client {
	t.Helper()

	apiSrv := httptest.NewServer(api)
	t.Cleanup(apiSrv.Close)

	cfg := ClientConfig{APIBaseURL: apiSrv.URL}
	if raw != nil {
		rawSrv := httptest.NewServer(raw)
		t.Cleanup(rawSrv.Close)
		cfg.RawBaseURL = rawSrv.URL
	}
	return NewClient(cfg)
}

func TestDefaultBranch(t *testing.T) {
	api := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/octo/hello", r.URL.Path)
		assert.Equal(t, "application/vnd.github+json", r.Header.Get("Accept"))
		fmt.Fprint(w, `{"default_branch": "trunk"}`)
	})

	c := newTestClient(t, api, nil)
	branch, err := c.DefaultBranch(context.Background(), "octo", "hello")
	require.NoError(t, err)
	assert.Equal(t, "trunk", branch)
}

func TestTree_BlobsOnly(t *testing.T) {
	api := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/octo/hello/git/trees/main", r.URL.Path)
		assert.Equal(t, "recursive=1", r.URL.RawQuery)
		fmt.Fprint(w, `{"truncated": false, "tree": [
			{"path": "src", "type": "tree"},
			{"path": "src/main.go", "size": 120, "type": "blob"},
			{"path": "README.md", "size": 40, "type": "blob"}
		]}`)
	})

	c := newTestClient(t, api, nil)
	entries, err := c.Tree(context.Background(), "octo", "hello", "main")
	require.NoError(t, err)

	assert.Equal(t, []types.TreeEntry{
		{Path: "src/main.go", Size: 120, Kind: types.Blob},
		{Path: "README.md", Size: 40, Kind: types.Blob},
	}, entries)
}

func TestStatusClassification(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"not found", http.StatusNotFound, `{}`, ErrNotFound},
		{"rate limited", http.StatusForbidden, `{"message": "API rate limit exceeded"}`, ErrRateLimited},
		{"forbidden", http.StatusForbidden, `{"message": "Must have admin rights"}`, ErrForbidden},
		{"legal", http.StatusUnavailableForLegalReasons, `{}`, ErrLegal},
		{"server error", http.StatusBadGateway, `{}`, ErrUpstream},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			})

			c := newTestClient(t, api, nil)
			_, err := c.DefaultBranch(context.Background(), "o", "r")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClient_SendsBearerToken(t *testing.T) {
	var got string
	api := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		fmt.Fprint(w, `{"default_branch": "main"}`)
	})
	srv := httptest.NewServer(api)
	defer srv.Close()

	c := NewClient(ClientConfig{Token: "tok123", APIBaseURL: srv.URL})
	_, err := c.DefaultBranch(context.Background(), "o", "r")
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok123", got)
}

func TestFetchFiles_PartialFailuresDropped(t *testing.T) {
	raw := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/octo/hello/HEAD/ok.go":
			fmt.Fprint(w, "package main")
		case "/octo/hello/HEAD/binary.dat":
			w.Write([]byte{0xff, 0xfe, 0x00, 0x01})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	c := newTestClient(t, http.NotFoundHandler(), raw)
	files := c.FetchFiles(context.Background(), "octo", "hello",
		[]string{"ok.go", "binary.dat", "gone.go"})

	assert.Equal(t, map[string]string{"ok.go": "package main"}, files)
}

func TestFetchFiles_BoundedConcurrency(t *testing.T) {
	var inflight, peak int64
	var mu sync.Mutex

	raw := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt64(&inflight, 1)
		mu.Lock()
		if n > peak {
			peak = n
		}
		mu.Unlock()
		defer atomic.AddInt64(&inflight, -1)
		fmt.Fprint(w, "content")
	})

	c := newTestClient(t, http.NotFoundHandler(), raw)

	paths := make([]string, 50)
	for i := range paths {
		paths[i] = fmt.Sprintf("f%02d.go", i)
	}
	files := c.FetchFiles(context.Background(), "o", "r", paths)

	assert.Len(t, files, 50)
	mu.Lock()
	defer mu.Unlock()
	assert.LessOrEqual(t, peak, int64(maxConcurrentFetches))
}

func TestSource_TreeAndLabel(t *testing.T) {
	api := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/octo/hello":
			fmt.Fprint(w, `{"default_branch": "main"}`)
		case "/repos/octo/hello/git/trees/main":
			fmt.Fprint(w, `{"tree": [{"path": "a.go", "size": 10, "type": "blob"}]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	c := newTestClient(t, api, nil)
	src := c.NewSource("octo", "hello")

	assert.Equal(t, "octo/hello", src.Label())

	entries, err := src.Tree(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
