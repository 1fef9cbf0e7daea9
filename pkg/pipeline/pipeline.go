// Package pipeline provides the fetch → analyze → render pipeline shared by
// the CLI and the HTTP API.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Fetch: Take a snapshot of a hosted repository or a local directory
//  2. Analyze: Detect language, package manager and declared dependencies
//  3. Render: Produce outputs (JSON, text summary, README, DOT, SVG, PNG, PDF)
//
// Each stage can be run on its own.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, pipeline.Config{GitHubToken: token}, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    URL:     "https://github.com/golang/example",
//	    Formats: []string{pipeline.FormatReadme},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(string(result.Artifacts[pipeline.FormatReadme]))
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/repolens/pkg/analyzer"
	"github.com/matzehuels/repolens/pkg/errors"
	"github.com/matzehuels/repolens/pkg/integrations"
	"github.com/matzehuels/repolens/pkg/source"
)

const (
	// DefaultTTL is how long snapshots and analyses are cached.
	DefaultTTL = 24 * time.Hour

	// DefaultGitLabURL is the GitLab instance used when none is configured.
	DefaultGitLabURL = "https://gitlab.com"
)

// Format constants for output formats.
const (
	FormatJSON   = "json"
	FormatText   = "text"
	FormatReadme = "readme"
	FormatDOT    = "dot"
	FormatSVG    = "svg"
	FormatPNG    = "png"
	FormatPDF    = "pdf"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON:   true,
	FormatText:   true,
	FormatReadme: true,
	FormatDOT:    true,
	FormatSVG:    true,
	FormatPNG:    true,
	FormatPDF:    true,
}

// Options describes one pipeline run. It supports JSON for API requests.
type Options struct {
	// Exactly one of URL and Dir is set.
	URL string `json:"url,omitempty"`
	Dir string `json:"dir,omitempty"`

	Recursive   bool `json:"recursive,omitempty"`    // List the whole tree, not just the top level
	MaxContents int  `json:"max_contents,omitempty"` // Cap on manifest downloads
	Refresh     bool `json:"refresh,omitempty"`      // Bypass cached snapshots and analyses

	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // Versions in graph labels
	Scale    float64  `json:"scale,omitempty"`    // PNG scale factor

	Logger *log.Logger `json:"-"`
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid format: %q (must be one of: json, text, readme, dot, svg, png, pdf)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateForFetch checks that the options name exactly one repository.
// SSH and git:// URLs are rewritten to their HTTPS form.
func (o *Options) ValidateForFetch() error {
	switch {
	case o.URL == "" && o.Dir == "":
		return errors.New(errors.ErrCodeInvalidInput, "a repository URL or directory is required")
	case o.URL != "" && o.Dir != "":
		return errors.New(errors.ErrCodeInvalidInput, "provide either a URL or a directory, not both")
	case o.URL != "":
		o.URL = integrations.NormalizeRepoURL(o.URL)
		if err := errors.ValidateURL(o.URL); err != nil {
			return err
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// ValidateAndSetDefaults checks the options and applies defaults for a
// full run.
func (o *Options) ValidateAndSetDefaults() error {
	if err := o.ValidateForFetch(); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	return ValidateFormats(o.Formats)
}

// SourceOptions returns the snapshot options for the fetch stage.
func (o *Options) SourceOptions(wanted func(string) bool) source.Options {
	return source.Options{
		Recursive:   o.Recursive,
		Refresh:     o.Refresh,
		Wanted:      wanted,
		MaxContents: o.MaxContents,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Repo      *source.Repo
	Analysis  *analyzer.Result
	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

// Report is the JSON document describing an analyzed repository.
type Report struct {
	Repo     *source.Repo     `json:"repoInfo"`
	Analysis *analyzer.Result `json:"analysisResult"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Files        int
	Manifests    int
	Dependencies int
	FetchTime    time.Duration
	AnalyzeTime  time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	AnalysisHit bool // Whether the analysis came from cache
}

// Config holds the upstream settings of a Runner.
type Config struct {
	GitHubToken string
	GitLabToken string
	GitLabURL   string        // Instance root; empty means gitlab.com
	TTL         time.Duration // Cache lifetime; zero means DefaultTTL
	Concurrency int           // Parallel manifest extraction
}

func (c Config) ttl() time.Duration {
	if c.TTL <= 0 {
		return DefaultTTL
	}
	return c.TTL
}

func depCount(a *analyzer.Result) int {
	n := 0
	for _, f := range a.Dependencies {
		n += len(f.Packages)
	}
	return n
}

func (s Stats) String() string {
	return fmt.Sprintf("%d files, %d manifests, %d dependencies", s.Files, s.Manifests, s.Dependencies)
}
