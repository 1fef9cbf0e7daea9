package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/repolens/pkg/analyzer"
	"github.com/matzehuels/repolens/pkg/cache"
	"github.com/matzehuels/repolens/pkg/errors"
	"github.com/matzehuels/repolens/pkg/integrations/github"
	"github.com/matzehuels/repolens/pkg/integrations/gitlab"
	"github.com/matzehuels/repolens/pkg/observability"
	"github.com/matzehuels/repolens/pkg/source"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it so that they fetch, cache and render the same way.
//
// The Runner holds no per-run state. Multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Cache    cache.Cache
	Analyzer *analyzer.Analyzer
	GitHub   *github.Client
	GitLab   *gitlab.Client
	Logger   *log.Logger

	analyses cache.Cache
	ttl      time.Duration
}

// NewRunner creates a runner. If c is nil, caching is disabled.
func NewRunner(c cache.Cache, cfg Config, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	gitlabURL := cfg.GitLabURL
	if gitlabURL == "" {
		gitlabURL = DefaultGitLabURL
	}

	gh := github.NewClient(c, cfg.GitHubToken, cfg.ttl())
	gh.SetLogger(logger)

	return &Runner{
		Cache: c,
		Analyzer: analyzer.New(analyzer.Options{
			Concurrency: cfg.Concurrency,
			Logger:      logger,
		}),
		GitHub:   gh,
		GitLab:   gitlab.NewClient(c, gitlabURL, cfg.GitLabToken, cfg.ttl()),
		Logger:   logger,
		analyses: cache.Namespace(c, "analysis:"),
		ttl:      cfg.ttl(),
	}
}

// Execute runs the complete fetch → analyze → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1: Fetch
	start := time.Now()
	repo, err := r.Fetch(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Repo = repo
	result.Stats.FetchTime = time.Since(start)
	result.Stats.Files = len(repo.Files)

	r.Logger.Info("fetched repository",
		"repo", repoName(repo),
		"files", len(repo.Files),
		"duration", result.Stats.FetchTime)

	// Stage 2: Analyze
	start = time.Now()
	analysis, hit, err := r.AnalyzeWithCacheInfo(ctx, repo, opts)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	result.Analysis = analysis
	result.CacheInfo.AnalysisHit = hit
	result.Stats.AnalyzeTime = time.Since(start)
	result.Stats.Manifests = len(analysis.Dependencies)
	result.Stats.Dependencies = depCount(analysis)

	r.Logger.Info("analyzed repository",
		"language", analysis.Language,
		"manifests", result.Stats.Manifests,
		"dependencies", result.Stats.Dependencies,
		"cached", hit,
		"duration", result.Stats.AnalyzeTime)

	// Stage 3: Render
	start = time.Now()
	artifacts, err := r.Render(ctx, repo, analysis, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(start)

	r.Logger.Debug("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Fetch takes the snapshot described by opts. Only files the analyzer
// extracts from carry content.
func (r *Runner) Fetch(ctx context.Context, opts Options) (*source.Repo, error) {
	if err := opts.ValidateForFetch(); err != nil {
		return nil, err
	}
	so := opts.SourceOptions(r.Analyzer.Wants)

	if opts.Dir != "" {
		return r.observeFetch(ctx, source.Disk, opts.Dir, func() (*source.Repo, error) {
			return source.Local(ctx, opts.Dir, so)
		})
	}

	ref, err := source.ParseRepoURL(opts.URL, r.GitLab.BaseURL())
	if err != nil {
		return nil, err
	}
	fetcher, err := r.fetcher(ref.Platform)
	if err != nil {
		return nil, err
	}
	return r.observeFetch(ctx, ref.Platform, ref.Owner+"/"+ref.Repo, func() (*source.Repo, error) {
		return fetcher.Fetch(ctx, ref.Owner, ref.Repo, so)
	})
}

func (r *Runner) fetcher(p source.Platform) (source.Fetcher, error) {
	switch p {
	case source.GitHub:
		return r.GitHub, nil
	case source.GitLab:
		return r.GitLab, nil
	}
	return nil, errors.New(errors.ErrCodeUnsupportedPlatform, "unsupported platform: %s", p)
}

func (r *Runner) observeFetch(ctx context.Context, p source.Platform, name string, fetch func() (*source.Repo, error)) (*source.Repo, error) {
	hooks := observability.Pipeline()
	hooks.OnFetchStart(ctx, string(p), name)
	start := time.Now()

	repo, err := fetch()
	files := 0
	if repo != nil {
		files = len(repo.Files)
	}
	hooks.OnFetchComplete(ctx, string(p), name, files, time.Since(start), err)
	return repo, err
}

// AnalyzeWithCacheInfo analyzes a snapshot and reports whether the result
// came from cache. Analyses are keyed by the snapshot's listing and
// manifest contents, so a changed manifest is analyzed again.
func (r *Runner) AnalyzeWithCacheInfo(ctx context.Context, repo *source.Repo, opts Options) (*analyzer.Result, bool, error) {
	key := analysisKey(repo)

	hooks := observability.Cache()
	if !opts.Refresh {
		var cached analyzer.Result
		if hit, err := cache.GetJSON(ctx, r.analyses, key, &cached); err == nil && hit {
			hooks.OnCacheHit(ctx, "analysis")
			return &cached, true, nil
		}
		hooks.OnCacheMiss(ctx, "analysis")
	}

	res, err := r.Analyzer.Analyze(ctx, repo.Files)
	if err != nil {
		return nil, false, err
	}
	if data, err := json.Marshal(res); err == nil {
		if err := r.analyses.Set(ctx, key, data, r.ttl); err != nil {
			r.Logger.Debug("cache analysis", "err", err)
		} else {
			hooks.OnCacheSet(ctx, "analysis", len(data))
		}
	}
	return res, false, nil
}

// Analyze is a convenience wrapper that discards the cache hit info.
func (r *Runner) Analyze(ctx context.Context, repo *source.Repo, opts Options) (*analyzer.Result, error) {
	res, _, err := r.AnalyzeWithCacheInfo(ctx, repo, opts)
	return res, err
}

func analysisKey(repo *source.Repo) string {
	return cache.Key("files", repo.Files)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func repoName(repo *source.Repo) string {
	if repo.Owner == "" {
		return repo.Name
	}
	return repo.Owner + "/" + repo.Name
}
