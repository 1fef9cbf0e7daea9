package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/matzehuels/repolens/pkg/analyzer"
	"github.com/matzehuels/repolens/pkg/readme"
	"github.com/matzehuels/repolens/pkg/render/nodelink"
	"github.com/matzehuels/repolens/pkg/source"
)

// Render generates output artifacts in the requested formats.
func (r *Runner) Render(ctx context.Context, repo *source.Repo, res *analyzer.Result, opts Options) (map[string][]byte, error) {
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, err
	}
	return Render(ctx, repo, res, opts)
}

// Render generates output artifacts without a Runner.
func Render(ctx context.Context, repo *source.Repo, res *analyzer.Result, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	var dot string
	graphDOT := func() string {
		if dot == "" {
			dot = nodelink.ToDOT(res, repoName(repo), nodelink.Options{Detailed: opts.Detailed})
		}
		return dot
	}

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatJSON:
			data, err = json.MarshalIndent(Report{Repo: repo, Analysis: res}, "", "  ")
		case FormatText:
			data = Summary(repo, res)
		case FormatReadme:
			data = []byte(readme.Generate(readme.Input{Repo: readme.Info(repo), Analysis: *res}))
		case FormatDOT:
			data = []byte(graphDOT())
		case FormatSVG:
			data, err = nodelink.RenderSVG(ctx, graphDOT())
		case FormatPNG:
			scale := opts.Scale
			if scale == 0 {
				scale = 2.0
			}
			data, err = nodelink.RenderPNG(ctx, graphDOT(), scale)
		case FormatPDF:
			data, err = nodelink.RenderPDF(ctx, graphDOT())
		default:
			err = ValidateFormat(format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// Summary renders a plain-text overview of an analysis.
func Summary(repo *source.Repo, res *analyzer.Result) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s (%s)\n\n", repoName(repo), repo.Platform)

	w := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Language:\t%s\n", res.Language)
	fmt.Fprintf(w, "Package manager:\t%s\n", orDash(res.PackageManager))
	fmt.Fprintf(w, "Version:\t%s\n", orDash(res.Version))
	fmt.Fprintf(w, "License:\t%s\n", orDash(res.License))
	w.Flush()

	for _, f := range res.Dependencies {
		fmt.Fprintf(&buf, "\n%s (%d)\n", f.Path, len(f.Packages))
		if f.Error != "" {
			fmt.Fprintf(&buf, "  error: %s\n", f.Error)
			continue
		}
		w := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
		for _, p := range f.Packages {
			v := p.Version
			if v == "" {
				v = "-"
			}
			fmt.Fprintf(w, "  %s\t%s\t%s\n", p.Name, v, p.Type)
		}
		w.Flush()
	}
	return buf.Bytes()
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}
