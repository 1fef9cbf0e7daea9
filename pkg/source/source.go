// Package source describes repository snapshots: where they come from and
// the file listing the analyzer consumes.
//
// A snapshot is a [Repo] holding a flat list of [File] entries. Remote
// snapshots are produced by the GitHub and GitLab clients in
// pkg/integrations; [Local] produces one from a directory on disk. Only
// recognized dependency files carry content, everything else is a name and
// a path.
package source

import (
	"context"
	"net/url"
	"strings"

	"github.com/matzehuels/repolens/pkg/errors"
)

// Platform identifies where a repository is hosted.
type Platform string

const (
	GitHub Platform = "github"
	GitLab Platform = "gitlab"
	Disk   Platform = "local"
)

// FileType distinguishes files from directories in a listing.
type FileType string

const (
	TypeFile FileType = "file"
	TypeDir  FileType = "dir"
)

// File is one entry of a repository listing.
type File struct {
	Name    string   `json:"name"`              // Base name
	Path    string   `json:"path"`              // Slash-separated path from the repository root
	Type    FileType `json:"type"`              // "file" or "dir"
	Size    int64    `json:"size,omitempty"`    // Bytes, when the listing reports it
	Content *string  `json:"content,omitempty"` // Set for dependency files only
}

// IsFile reports whether f is a regular file entry.
func (f File) IsFile() bool { return f.Type == TypeFile }

// Repo is a repository snapshot.
type Repo struct {
	Name          string   `json:"name"`
	Description   *string  `json:"description"`
	Language      *string  `json:"language"`
	Platform      Platform `json:"platform"`
	Owner         string   `json:"owner"`
	URL           string   `json:"url,omitempty"` // Web URL of the repository
	DefaultBranch string   `json:"defaultBranch,omitempty"`
	Files         []File   `json:"files"`
}

// CloneURL returns the HTTPS clone URL for the repository.
func (r *Repo) CloneURL() string {
	if r.URL != "" {
		return strings.TrimSuffix(r.URL, "/") + ".git"
	}
	host := "github.com"
	if r.Platform == GitLab {
		host = "gitlab.com"
	}
	return "https://" + host + "/" + r.Owner + "/" + r.Name + ".git"
}

// Options controls how a snapshot is taken.
type Options struct {
	// Recursive lists the whole tree instead of the top level only.
	Recursive bool
	// Refresh bypasses cached snapshots.
	Refresh bool
	// Wanted reports whether a file's content should be loaded. Nil loads
	// no content.
	Wanted func(name string) bool
	// MaxContents caps how many files get their content loaded.
	// Zero means DefaultMaxContents.
	MaxContents int
}

// DefaultMaxContents bounds content downloads for large monorepos.
const DefaultMaxContents = 64

// Limit returns the effective content cap.
func (o Options) Limit() int {
	if o.MaxContents <= 0 {
		return DefaultMaxContents
	}
	return o.MaxContents
}

// Want reports whether the content of f should be loaded. Files larger
// than [errors.MaxManifestSize] are never loaded.
func (o Options) Want(f File) bool {
	return f.IsFile() && f.Size <= errors.MaxManifestSize && o.Wanted != nil && o.Wanted(f.Name)
}

// Fetcher takes snapshots of hosted repositories.
type Fetcher interface {
	Fetch(ctx context.Context, owner, repo string, opts Options) (*Repo, error)
}

// Ref identifies a hosted repository.
type Ref struct {
	Platform Platform `json:"platform"`
	Host     string   `json:"host"`
	Owner    string   `json:"owner"`
	Repo     string   `json:"repo"`
}

func (r Ref) String() string { return r.Host + "/" + r.Owner + "/" + r.Repo }

// ParseRepoURL parses a repository URL such as
// "https://github.com/owner/repo.git". Hosts other than github.com,
// gitlab.com and gitlabHost are rejected. gitlabHost may be a bare host or
// a full base URL and may be empty.
func ParseRepoURL(raw, gitlabHost string) (Ref, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return Ref{}, errors.New(errors.ErrCodeInvalidURL, "invalid URL format")
	}

	var segs []string
	for _, s := range strings.Split(strings.TrimSuffix(u.Path, ".git"), "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	if len(segs) < 2 {
		return Ref{}, errors.New(errors.ErrCodeInvalidURL,
			"URL must contain owner and repository name (e.g. https://github.com/owner/repo)")
	}

	host := u.Hostname()
	ref := Ref{Host: host, Owner: segs[0], Repo: segs[1]}
	switch {
	case host == "github.com":
		ref.Platform = GitHub
	case host == "gitlab.com" || host == hostOf(gitlabHost):
		ref.Platform = GitLab
	default:
		return Ref{}, errors.New(errors.ErrCodeUnsupportedPlatform,
			"unsupported platform: %s. Only GitHub and GitLab are supported.", host)
	}
	return ref, nil
}

func hostOf(s string) string {
	if s == "" {
		return ""
	}
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
