// Package analyzer turns a repository listing into an analysis: dominant
// language, package manager, declared dependencies per manifest, key
// structure, and the project's own version and license.
//
// # Usage
//
//	a := analyzer.New(analyzer.Options{Logger: logger})
//	res, err := a.Analyze(ctx, repo.Files)
//
// Dependency files are processed concurrently; the result keeps the
// listing order. Malformed manifests never fail the analysis: the file is
// reported with no packages and an Error message.
package analyzer

import (
	"context"
	"path"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/repolens/pkg/deps"
	"github.com/matzehuels/repolens/pkg/deps/languages"
	"github.com/matzehuels/repolens/pkg/observability"
	"github.com/matzehuels/repolens/pkg/source"
)

// Unknown is reported when no file extension maps to a language.
const Unknown = "Unknown"

// DefaultConcurrency bounds parallel manifest extraction.
const DefaultConcurrency = 8

// DependencyFile is one recognized dependency file and what it declares.
type DependencyFile struct {
	File     string            `json:"file"`
	Path     string            `json:"path"`
	Packages []deps.Dependency `json:"packages"`
	Error    string            `json:"error,omitempty"`
}

// Structure lists notable top-level entries.
type Structure struct {
	Directories []string `json:"directories"`
	KeyFiles    []string `json:"keyFiles"`
}

// Result is the outcome of an analysis.
type Result struct {
	Language       string           `json:"language"`
	PackageManager *string          `json:"packageManager"`
	Dependencies   []DependencyFile `json:"dependencies"`
	Structure      Structure        `json:"structure"`
	Version        *string          `json:"version"`
	License        *string          `json:"license"`
}

// Packages returns every package of type t across all dependency files,
// in file order.
func (r *Result) Packages(t deps.Type) []deps.Dependency {
	var out []deps.Dependency
	for _, f := range r.Dependencies {
		for _, p := range f.Packages {
			if p.Type == t {
				out = append(out, p)
			}
		}
	}
	return out
}

// Options configures an Analyzer.
type Options struct {
	// Registry resolves dependency files. Nil uses languages.Default.
	Registry *deps.Registry
	// Concurrency bounds parallel extraction. Zero uses DefaultConcurrency.
	Concurrency int
	Logger      *log.Logger
}

// Analyzer runs analyses. It is safe for concurrent use.
type Analyzer struct {
	reg         *deps.Registry
	concurrency int
	logger      *log.Logger
}

// New creates an Analyzer.
func New(opts Options) *Analyzer {
	a := &Analyzer{
		reg:         opts.Registry,
		concurrency: opts.Concurrency,
		logger:      opts.Logger,
	}
	if a.reg == nil {
		a.reg = languages.Default
	}
	if a.concurrency <= 0 {
		a.concurrency = DefaultConcurrency
	}
	if a.logger == nil {
		a.logger = log.Default()
	}
	return a
}

// Wants reports whether the content of a file named name is needed for
// analysis. It fits [source.Options].Wanted.
func (a *Analyzer) Wants(name string) bool {
	_, ok := a.reg.Extractor(name)
	return ok
}

// Analyze analyzes files. It only fails when ctx is cancelled.
func (a *Analyzer) Analyze(ctx context.Context, files []source.File) (res *Result, err error) {
	start := time.Now()
	hooks := observability.Pipeline()
	hooks.OnAnalyzeStart(ctx, len(files))
	defer func() {
		lang, n := Unknown, 0
		if res != nil {
			lang, n = res.Language, len(res.Dependencies)
		}
		hooks.OnAnalyzeComplete(ctx, lang, n, time.Since(start), err)
	}()

	res = &Result{
		Language:  DetectLanguage(files),
		Structure: DetectStructure(files),
	}

	res.Dependencies, err = a.dependencies(ctx, files)
	if err != nil {
		return nil, err
	}
	res.PackageManager = a.packageManager(res.Dependencies)
	res.Version, res.License = a.meta(files)

	a.logger.Debug("analyzed files",
		"files", len(files),
		"language", res.Language,
		"manifests", len(res.Dependencies),
		"duration", time.Since(start))
	return res, nil
}

func (a *Analyzer) dependencies(ctx context.Context, files []source.File) ([]DependencyFile, error) {
	var found []source.File
	for _, f := range files {
		if f.IsFile() && a.isDependencyFile(f.Path) {
			found = append(found, f)
		}
	}

	out := make([]DependencyFile, len(found))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	for i, f := range found {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = a.extract(ctx, f)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *Analyzer) extract(ctx context.Context, f source.File) DependencyFile {
	df := DependencyFile{File: f.Name, Path: f.Path, Packages: []deps.Dependency{}}
	if f.Content == nil || *f.Content == "" {
		return df
	}

	pkgs, err := a.reg.Extract(f.Name, *f.Content)
	observability.Pipeline().OnExtract(ctx, f.Name, len(pkgs), err)
	if err != nil {
		a.logger.Warn("skipping malformed manifest", "path", f.Path, "err", err)
		df.Error = err.Error()
		return df
	}
	df.Packages = pkgs
	return df
}

func (a *Analyzer) isDependencyFile(path string) bool {
	_, ok := a.reg.Lookup(path)
	return ok
}

// lockfilePriority lists lockfiles that identify the package manager more
// precisely than the manifest next to them.
var lockfilePriority = []string{"yarn.lock", "pnpm-lock.yaml"}

func (a *Analyzer) packageManager(found []DependencyFile) *string {
	for _, lock := range lockfilePriority {
		for _, d := range found {
			if d.File == lock {
				pm, _ := a.reg.PackageManager(lock)
				return deps.String(pm)
			}
		}
	}
	if len(found) > 0 {
		pm, _ := a.reg.PackageManager(found[0].File)
		return deps.String(pm)
	}
	return nil
}

// meta returns the first version and the first license declared by any
// dependency file, in listing order.
func (a *Analyzer) meta(files []source.File) (version, license *string) {
	for _, f := range files {
		if !f.IsFile() || f.Content == nil {
			continue
		}
		m := a.reg.Meta(f.Name, *f.Content)
		if version == nil {
			version = m.Version
		}
		if license == nil {
			license = m.License
		}
		if version != nil && license != nil {
			break
		}
	}
	return version, license
}

// DetectLanguage returns the language with the most files by extension.
// On a tie the language seen first wins; with no match it is [Unknown].
func DetectLanguage(files []source.File) string {
	counts := make(map[string]int)
	var order []string
	for _, f := range files {
		if !f.IsFile() {
			continue
		}
		ext := strings.ToLower(path.Ext(f.Name))
		lang, ok := extensionLanguages[ext]
		if !ok {
			continue
		}
		if counts[lang] == 0 {
			order = append(order, lang)
		}
		counts[lang]++
	}

	best, top := Unknown, 0
	for _, lang := range order {
		if counts[lang] > top {
			best, top = lang, counts[lang]
		}
	}
	return best
}

// DetectStructure collects key directories and key files by base name.
func DetectStructure(files []source.File) Structure {
	s := Structure{Directories: []string{}, KeyFiles: []string{}}
	for _, f := range files {
		switch {
		case f.Type == source.TypeDir && keyDirectories[f.Name]:
			s.Directories = append(s.Directories, f.Path)
		case f.IsFile() && keyFiles[f.Name]:
			s.KeyFiles = append(s.KeyFiles, f.Path)
		}
	}
	return s
}
