//go:build integration

package github

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/matzehuels/repolens/pkg/errors"
	"github.com/matzehuels/repolens/pkg/source"
)

func TestFetch_Integration(t *testing.T) {
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		t.Skip("GITHUB_TOKEN not set, skipping integration test")
	}

	client := NewClient(nil, token, time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tests := []struct {
		name  string
		owner string
		repo  string
		code  errors.Code
	}{
		{"golang/example", "golang", "example", ""},
		{"nonexistent", "nonexistent-owner-12345", "nonexistent-repo", errors.ErrCodeRepoNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, err := client.Fetch(ctx, tt.owner, tt.repo, source.Options{
				Wanted: func(name string) bool { return name == "go.mod" },
			})
			if tt.code != "" {
				if !errors.Is(err, tt.code) {
					t.Errorf("Fetch(%q, %q) error = %v, want code %s", tt.owner, tt.repo, err, tt.code)
				}
				return
			}
			if err != nil {
				t.Fatalf("Fetch(%q, %q) error: %v", tt.owner, tt.repo, err)
			}
			if len(repo.Files) == 0 {
				t.Error("Files should not be empty")
			}
		})
	}
}
