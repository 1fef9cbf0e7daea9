package github

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/repolens/pkg/cache"
	"github.com/matzehuels/repolens/pkg/integrations"
	"github.com/matzehuels/repolens/pkg/source"
)

// DefaultBaseURL is the public GitHub REST API.
const DefaultBaseURL = "https://api.github.com"

// Client takes repository snapshots through the GitHub REST API.
// It handles HTTP requests with caching, automatic retries, and optional authentication.
type Client struct {
	*integrations.Client
	baseURL string
	logger  *log.Logger
}

// NewClient creates a GitHub API client. Pass an empty token for
// unauthenticated requests (60 requests/hour) and a nil cache to disable
// caching.
func NewClient(c cache.Cache, token string, cacheTTL time.Duration) *Client {
	headers := map[string]string{"Accept": "application/vnd.github.v3+json"}
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}
	return &Client{
		Client:  integrations.NewClient(c, "github:", cacheTTL, headers),
		baseURL: DefaultBaseURL,
		logger:  log.Default(),
	}
}

// SetBaseURL points the client at another API root, e.g. GitHub Enterprise.
func (c *Client) SetBaseURL(u string) { c.baseURL = strings.TrimSuffix(u, "/") }

// SetLogger sets the logger used for warnings.
func (c *Client) SetLogger(l *log.Logger) {
	if l != nil {
		c.logger = l
	}
}

// Fetch takes a snapshot of owner/repo on its default branch.
// Errors carry a code from pkg/errors.
func (c *Client) Fetch(ctx context.Context, owner, repo string, opts source.Options) (*source.Repo, error) {
	if err := ValidateRepoRef(owner, repo); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("repo:%s/%s:recursive=%t", owner, repo, opts.Recursive)
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
	var info repoResponse
	if err := c.Get(ctx, c.repoURL(owner, repo), &info); err != nil {
		return err
	}

	*r = source.Repo{
		Name:          info.Name,
		Description:   info.Description,
		Language:      info.Language,
		Platform:      source.GitHub,
		Owner:         owner,
		URL:           info.HTMLURL,
		DefaultBranch: info.DefaultBranch,
	}
	if info.Owner.Login != "" {
		r.Owner = info.Owner.Login
	}
	if r.Name == "" {
		r.Name = repo
	}

	files, err := c.tree(ctx, owner, repo, info.DefaultBranch, opts.Recursive)
	if err != nil {
		return err
	}
	r.Files = files

	return integrations.LoadContents(ctx, r.Files, opts, func(ctx context.Context, p string) (string, error) {
		return c.raw(ctx, owner, repo, info.DefaultBranch, p)
	})
}

func (c *Client) tree(ctx context.Context, owner, repo, ref string, recursive bool) ([]source.File, error) {
	if ref == "" {
		return []source.File{}, nil
	}
	u := fmt.Sprintf("%s/git/trees/%s", c.repoURL(owner, repo), url.PathEscape(ref))
	if recursive {
		u += "?recursive=1"
	}

	var data treeResponse
	if err := c.Get(ctx, u, &data); err != nil {
		return nil, err
	}
	if data.Truncated {
		c.logger.Warn("tree listing truncated by GitHub", "repo", owner+"/"+repo, "entries", len(data.Tree))
	}

	files := make([]source.File, 0, len(data.Tree))
	for _, e := range data.Tree {
		f := source.File{Name: path.Base(e.Path), Path: e.Path}
		switch e.Type {
		case "blob":
			f.Type, f.Size = source.TypeFile, e.Size
		case "tree":
			f.Type = source.TypeDir
		default:
			continue
		}
		files = append(files, f)
	}
	return files, nil
}

func (c *Client) raw(ctx context.Context, owner, repo, ref, p string) (string, error) {
	u := fmt.Sprintf("%s/contents/%s?ref=%s", c.repoURL(owner, repo), escapePath(p), url.QueryEscape(ref))
	return c.GetText(ctx, u, map[string]string{"Accept": "application/vnd.github.raw"})
}

func (c *Client) repoURL(owner, repo string) string {
	return fmt.Sprintf("%s/repos/%s/%s", c.baseURL, url.PathEscape(owner), url.PathEscape(repo))
}

func escapePath(p string) string {
	segs := strings.Split(p, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return strings.Join(segs, "/")
}
