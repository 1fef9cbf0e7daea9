package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/repolens/pkg/cache"
	"github.com/matzehuels/repolens/pkg/errors"
	"github.com/matzehuels/repolens/pkg/source"
)

func newTestServer(t *testing.T, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			calls.Add(1)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("Authorization = %q, want %q", got, "Bearer secret")
		}

		switch r.URL.Path {
		case "/repos/octo/hello":
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"name":           "hello",
				"description":    "Says hello",
				"language":       "Go",
				"html_url":       "https://github.com/octo/hello",
				"default_branch": "main",
				"owner":          map[string]string{"login": "octo"},
			})
		case "/repos/octo/hello/git/trees/main":
			if r.URL.Query().Get("recursive") != "1" {
				t.Errorf("tree request missing recursive=1: %s", r.URL.RawQuery)
			}
			json.NewEncoder(w).Encode(map[string]any{
				"sha": "abc",
				"tree": []map[string]any{
					{"path": "go.mod", "type": "blob", "size": 40},
					{"path": "README.md", "type": "blob", "size": 10},
					{"path": "cmd", "type": "tree"},
					{"path": "cmd/go.mod", "type": "blob", "size": 30},
					{"path": "third_party/lib", "type": "commit"},
				},
			})
		case "/repos/octo/hello/contents/go.mod":
			if got := r.Header.Get("Accept"); got != "application/vnd.github.raw" {
				t.Errorf("contents Accept = %q", got)
			}
			if got := r.URL.Query().Get("ref"); got != "main" {
				t.Errorf("contents ref = %q, want main", got)
			}
			w.Write([]byte("module example.com/hello\n"))
		case "/repos/octo/hello/contents/cmd/go.mod":
			http.NotFound(w, r)
		default:
			http.NotFound(w, r)
		}
	}))
}

func testClient(c cache.Cache, serverURL string) *Client {
	client := NewClient(c, "secret", time.Hour)
	client.SetBaseURL(serverURL)
	return client
}

func wantGoMod(name string) bool { return name == "go.mod" }

func TestClientFetch(t *testing.T) {
	server := newTestServer(t, nil)
	defer server.Close()

	repo, err := testClient(nil, server.URL).Fetch(context.Background(), "octo", "hello",
		source.Options{Recursive: true, Wanted: wantGoMod})
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}

	if repo.Name != "hello" || repo.Owner != "octo" || repo.Platform != source.GitHub {
		t.Errorf("Fetch() = %s/%s on %s, want octo/hello on github", repo.Owner, repo.Name, repo.Platform)
	}
	if repo.Description == nil || *repo.Description != "Says hello" {
		t.Errorf("Description = %v, want %q", repo.Description, "Says hello")
	}
	if repo.Language == nil || *repo.Language != "Go" {
		t.Errorf("Language = %v, want Go", repo.Language)
	}
	if got := repo.CloneURL(); got != "https://github.com/octo/hello.git" {
		t.Errorf("CloneURL() = %q", got)
	}

	if len(repo.Files) != 4 {
		t.Fatalf("Files = %+v, want 4 entries (submodule skipped)", repo.Files)
	}
	byPath := map[string]source.File{}
	for _, f := range repo.Files {
		byPath[f.Path] = f
	}
	if f := byPath["go.mod"]; f.Content == nil || *f.Content != "module example.com/hello\n" {
		t.Errorf("go.mod content = %v", f.Content)
	}
	if f := byPath["cmd/go.mod"]; f.Name != "go.mod" || f.Content != nil {
		t.Errorf("cmd/go.mod = %+v, want name go.mod without content", f)
	}
	if f := byPath["cmd"]; f.Type != source.TypeDir {
		t.Errorf("cmd type = %q, want dir", f.Type)
	}
	if f := byPath["README.md"]; f.Content != nil {
		t.Error("README.md content loaded, want nil")
	}
}

func TestClientFetchCached(t *testing.T) {
	var calls atomic.Int32
	server := newTestServer(t, &calls)
	defer server.Close()

	mc := cache.NewMemoryCache(16, time.Hour)
	client := testClient(mc, server.URL)
	opts := source.Options{Recursive: true, Wanted: wantGoMod}

	if _, err := client.Fetch(context.Background(), "octo", "hello", opts); err != nil {
		t.Fatalf("first Fetch() error: %v", err)
	}
	first := calls.Load()

	if _, err := client.Fetch(context.Background(), "octo", "hello", opts); err != nil {
		t.Fatalf("second Fetch() error: %v", err)
	}
	if calls.Load() != first {
		t.Errorf("second Fetch() made %d requests, want 0", calls.Load()-first)
	}

	opts.Refresh = true
	if _, err := client.Fetch(context.Background(), "octo", "hello", opts); err != nil {
		t.Fatalf("refresh Fetch() error: %v", err)
	}
	if calls.Load() == first {
		t.Error("refresh Fetch() should bypass the cache")
	}
}

func TestClientFetchErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/octo/limited":
			w.Header().Set("X-RateLimit-Remaining", "0")
			w.WriteHeader(http.StatusForbidden)
		case "/repos/octo/private":
			w.WriteHeader(http.StatusUnauthorized)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := testClient(nil, server.URL)
	tests := []struct {
		owner, repo string
		code        errors.Code
	}{
		{"octo", "missing", errors.ErrCodeRepoNotFound},
		{"octo", "limited", errors.ErrCodeRateLimited},
		{"octo", "private", errors.ErrCodeUnauthorized},
		{"-bad", "repo", errors.ErrCodeInvalidInput},
		{"octo", "..", errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.owner+"/"+tt.repo, func(t *testing.T) {
			_, err := client.Fetch(context.Background(), tt.owner, tt.repo, source.Options{})
			if !errors.Is(err, tt.code) {
				t.Errorf("Fetch() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestValidateRepoRef(t *testing.T) {
	tests := []struct {
		owner, repo string
		ok          bool
	}{
		{"octo", "hello", true},
		{"octo-cat", "hello.go", true},
		{"", "hello", false},
		{"octo", "", false},
		{"-octo", "hello", false},
		{"octo", "hello world", false},
	}
	for _, tt := range tests {
		err := ValidateRepoRef(tt.owner, tt.repo)
		if (err == nil) != tt.ok {
			t.Errorf("ValidateRepoRef(%q, %q) = %v, want ok=%v", tt.owner, tt.repo, err, tt.ok)
		}
	}
}
