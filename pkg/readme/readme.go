// Package readme renders a Markdown README from a repository snapshot and
// its analysis.
//
// The document is a fixed sequence of sections: title, badges,
// description, table of contents, prerequisites, installation, usage,
// project structure, dependencies and license. Sections with nothing to
// show are omitted and the rest are separated by a blank line.
package readme

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/matzehuels/repolens/pkg/analyzer"
	"github.com/matzehuels/repolens/pkg/deps"
	"github.com/matzehuels/repolens/pkg/source"
)

// DefaultDescription is used when the repository has none.
const DefaultDescription = "A project built with modern technologies."

// Input is what a README is generated from.
type Input struct {
	Repo     RepoInfo        `json:"repoInfo"`
	Analysis analyzer.Result `json:"analysisResult"`
}

// RepoInfo is the subset of a snapshot the generator needs.
type RepoInfo struct {
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Language    *string         `json:"language"`
	Platform    source.Platform `json:"platform"`
	Owner       string          `json:"owner"`
	URL         string          `json:"url,omitempty"`
}

// Info extracts the RepoInfo of a snapshot.
func Info(r *source.Repo) RepoInfo {
	return RepoInfo{
		Name:        r.Name,
		Description: r.Description,
		Language:    r.Language,
		Platform:    r.Platform,
		Owner:       r.Owner,
		URL:         r.URL,
	}
}

// CloneURL returns the HTTPS clone URL of the repository.
func (r RepoInfo) CloneURL() string {
	repo := source.Repo{Name: r.Name, Owner: r.Owner, Platform: r.Platform, URL: r.URL}
	return repo.CloneURL()
}

// Generate renders the README for in.
func Generate(in Input) string {
	a := &in.Analysis
	sections := []string{
		"# " + in.Repo.Name,
		badges(a),
		description(in.Repo),
		tableOfContents,
		prerequisites(a),
		installation(in.Repo, a),
		usage(a),
		structure(a),
		dependencies(a),
		license,
	}

	var out []string
	for _, s := range sections {
		if s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, "\n\n")
}

func badges(a *analyzer.Result) string {
	var out []string
	if b, ok := languageBadges[a.Language]; ok {
		out = append(out, fmt.Sprintf("![%s](https://img.shields.io/badge/%s-%s?logo=%s&logoColor=%s)",
			a.Language, encode(a.Language), b.color, b.logo, b.logoColor()))
	}
	if a.License != nil && *a.License != "" {
		out = append(out, fmt.Sprintf("![License](https://img.shields.io/badge/license-%s-blue.svg)", encode(*a.License)))
	}
	if a.Version != nil && *a.Version != "" {
		out = append(out, fmt.Sprintf("![Version](https://img.shields.io/badge/version-%s-green.svg)", encode(*a.Version)))
	}
	return strings.Join(out, " ")
}

// encode escapes s like a URI component: spaces become %20, not +.
func encode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func description(r RepoInfo) string {
	if r.Description == nil || *r.Description == "" {
		return DefaultDescription
	}
	return *r.Description
}

const tableOfContents = `## Table of Contents

- [Prerequisites](#prerequisites)
- [Installation](#installation)
- [Usage](#usage)
- [Project Structure](#project-structure)
- [Dependencies](#dependencies)
- [License](#license)`

const license = `## License

This project is licensed under the terms specified in the LICENSE file.`

func prerequisites(a *analyzer.Result) string {
	lines := []string{"## Prerequisites", "", "Make sure you have installed:"}
	rt := runtimes[a.Language]
	if rt != "" {
		lines = append(lines, "- "+rt)
	}
	if pm := packageManager(a); pm != "" {
		if rt == "" || !strings.Contains(strings.ToLower(rt), strings.ToLower(pm)) {
			lines = append(lines, "- "+pm)
		}
	}
	lines = append(lines, "- Git")
	return strings.Join(lines, "\n")
}

func installation(r RepoInfo, a *analyzer.Result) string {
	lines := []string{
		"## Installation",
		"",
		"1. Clone the repository:",
		"",
		"```bash",
		"git clone " + r.CloneURL(),
		"cd " + r.Name,
		"```",
	}
	if cmd, ok := commands[packageManager(a)]; ok {
		lines = append(lines, "", "2. Install dependencies:", "", "```bash", cmd.install, "```")
	}
	return strings.Join(lines, "\n")
}

func usage(a *analyzer.Result) string {
	if cmd, ok := commands[packageManager(a)]; ok {
		return strings.Join([]string{"## Usage", "", "Start the development server:", "", "```bash", cmd.dev, "```"}, "\n")
	}
	example := "Refer to the project documentation for run instructions."
	if run, ok := runExamples[a.Language]; ok {
		example = "```bash\n" + run + "\n```"
	}
	return "## Usage\n\n" + example
}

func structure(a *analyzer.Result) string {
	if len(a.Structure.Directories) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("## Project Structure\n\n```\n")
	for _, d := range a.Structure.Directories {
		fmt.Fprintf(&b, "├── %s/\n", d)
	}
	for _, f := range a.Structure.KeyFiles {
		fmt.Fprintf(&b, "├── %s\n", f)
	}
	b.WriteString("```")
	return b.String()
}

func dependencies(a *analyzer.Result) string {
	prod, dev := a.Packages(deps.Production), a.Packages(deps.Dev)
	if len(prod) == 0 && len(dev) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("## Dependencies")
	writeTable(&b, "Main", prod)
	writeTable(&b, "Development", dev)
	return b.String()
}

func writeTable(b *strings.Builder, title string, pkgs []deps.Dependency) {
	if len(pkgs) == 0 {
		return
	}
	fmt.Fprintf(b, "\n\n### %s\n\n| Package | Version |\n|---------|---------|", title)
	for _, p := range pkgs {
		v := p.Version
		if v == "" {
			v = "-"
		}
		fmt.Fprintf(b, "\n| %s | %s |", p.Name, v)
	}
}

func packageManager(a *analyzer.Result) string {
	if a.PackageManager == nil {
		return ""
	}
	return *a.PackageManager
}
