package gitlab

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/repolens/pkg/cache"
	"github.com/matzehuels/repolens/pkg/integrations"
	"github.com/matzehuels/repolens/pkg/source"
)

// DefaultBaseURL is gitlab.com.
const DefaultBaseURL = "https://gitlab.com"

const (
	perPage  = 100
	maxPages = 50
)

// Client takes repository snapshots through the GitLab REST API (v4).
// It handles HTTP requests with caching, automatic retries, and optional authentication.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a GitLab API client.
//
// Parameters:
//   - backend: Cache backend for snapshots (nil disables caching)
//   - baseURL: Instance root such as "https://gitlab.example.com" (empty for gitlab.com)
//   - token: Personal access token (empty string for unauthenticated)
//   - cacheTTL: How long snapshots are cached
func NewClient(backend cache.Cache, baseURL, token string, cacheTTL time.Duration) *Client {
	var headers map[string]string
	if token != "" {
		headers = map[string]string{"PRIVATE-TOKEN": token}
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		Client:  integrations.NewClient(backend, "gitlab:", cacheTTL, headers),
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// BaseURL returns the instance root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// Fetch takes a snapshot of the project owner/repo on its default branch.
// Errors carry a code from pkg/errors.
func (c *Client) Fetch(ctx context.Context, owner, repo string, opts source.Options) (*source.Repo, error) {
	key := fmt.Sprintf("repo:%s/%s/%s:recursive=%t", c.baseURL, owner, repo, opts.Recursive)
	var r source.Repo
	err := c.Cached(ctx, key, opts.Refresh, &r, func() error {
		return c.snapshot(ctx, owner, repo, opts, &r)
	})
	if err != nil {
		return nil, integrations.Classify(err, owner+"/"+repo)
	}
	return &r, nil
}

func (c *Client) snapshot(ctx context.Context, owner, repo string, opts source.Options, r *source.Repo) error {
	project := c.projectURL(owner, repo)

	var info projectResponse
	if err := c.Get(ctx, project, &info); err != nil {
		return err
	}

	*r = source.Repo{
		Name:          info.Path,
		Description:   info.Description,
		Platform:      source.GitLab,
		Owner:         owner,
		URL:           info.WebURL,
		DefaultBranch: info.DefaultBranch,
	}
	if r.Name == "" {
		r.Name = repo
	}
	if info.Description != nil && *info.Description == "" {
		r.Description = nil
	}
	r.Language = c.language(ctx, project)

	files, err := c.tree(ctx, project, info.DefaultBranch, opts.Recursive)
	if err != nil {
		return err
	}
	r.Files = files

	return integrations.LoadContents(ctx, r.Files, opts, func(ctx context.Context, p string) (string, error) {
		u := fmt.Sprintf("%s/repository/files/%s/raw?ref=%s", project, url.PathEscape(p), url.QueryEscape(info.DefaultBranch))
		return c.GetText(ctx, u, nil)
	})
}

// language returns the project's dominant language, or nil when GitLab
// reports none or the request fails.
func (c *Client) language(ctx context.Context, project string) *string {
	var langs map[string]float64
	if err := c.Get(ctx, project+"/languages", &langs); err != nil {
		return nil
	}
	best, share := "", 0.0
	for name, pct := range langs {
		if pct > share || (pct == share && name < best) {
			best, share = name, pct
		}
	}
	if best == "" {
		return nil
	}
	return &best
}

func (c *Client) tree(ctx context.Context, project, ref string, recursive bool) ([]source.File, error) {
	files := []source.File{}
	if ref == "" {
		return files, nil
	}

	for page := 1; page > 0 && page <= maxPages; {
		q := url.Values{
			"ref":      {ref},
			"per_page": {strconv.Itoa(perPage)},
			"page":     {strconv.Itoa(page)},
		}
		if recursive {
			q.Set("recursive", "true")
		}

		var entries []treeEntry
		h, err := c.GetWithHeaders(ctx, project+"/repository/tree?"+q.Encode(), nil, &entries)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			f := source.File{Name: e.Name, Path: e.Path, Type: source.TypeFile}
			switch e.Type {
			case "tree":
				f.Type = source.TypeDir
			case "blob":
			default:
				continue
			}
			files = append(files, f)
		}

		page, _ = strconv.Atoi(h.Get("X-Next-Page"))
	}
	return files, nil
}

func (c *Client) projectURL(owner, repo string) string {
	return fmt.Sprintf("%s/api/v4/projects/%s", c.baseURL, url.PathEscape(owner+"/"+repo))
}

type projectResponse struct {
	Path          string  `json:"path"`
	Description   *string `json:"description"`
	WebURL        string  `json:"web_url"`
	DefaultBranch string  `json:"default_branch"`
}

type treeEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type"` // "blob", "tree" or "commit"
}
