package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/repolens/pkg/analyzer"
	"github.com/matzehuels/repolens/pkg/deps"
	"github.com/matzehuels/repolens/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds declared versions to package labels.
	Detailed bool
	// Types limits the diagram to these dependency types. Empty keeps all.
	Types []deps.Type
}

func (o Options) keep(t deps.Type) bool {
	return len(o.Types) == 0 || slices.Contains(o.Types, t)
}

const rootID = "project"

// ToDOT converts an analysis to Graphviz DOT. Packages declared by several
// files appear once with an edge from each file.
func ToDOT(res *analyzer.Result, name string, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=lightblue, penwidth=2];\n", rootID, name)

	seen := make(map[string]bool)
	var edges []string
	for _, f := range res.Dependencies {
		fileID := "file:" + f.Path
		label := f.Path
		if f.Error != "" {
			label += "\n(unparsable)"
		}
		fmt.Fprintf(&buf, "  %q [label=%q, shape=note, style=filled, fillcolor=lightyellow];\n", fileID, label)
		edges = append(edges, fmt.Sprintf("  %q -> %q;\n", rootID, fileID))

		linked := make(map[string]bool)
		for _, p := range f.Packages {
			if !opts.keep(p.Type) {
				continue
			}
			pkgID := "pkg:" + p.Name
			if !seen[pkgID] {
				seen[pkgID] = true
				fmt.Fprintf(&buf, "  %q [%s];\n", pkgID, strings.Join(fmtAttrs(p, opts.Detailed), ", "))
			}
			if linked[pkgID] {
				continue
			}
			linked[pkgID] = true
			edges = append(edges, fmt.Sprintf("  %q -> %q%s;\n", fileID, pkgID, edgeStyle(p.Type)))
		}
	}

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(p deps.Dependency, detailed bool) []string {
	label := p.Name
	if detailed && p.Version != "" {
		label += "\n" + p.Version
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if p.Type != deps.Production {
		attrs = append(attrs, "fillcolor=whitesmoke")
	}
	return attrs
}

func edgeStyle(t deps.Type) string {
	switch t {
	case deps.Dev:
		return " [style=dashed]"
	case deps.Peer, deps.Optional:
		return " [style=dotted]"
	}
	return ""
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the root element so the diagram scales from
// its origin with explicit pixel dimensions.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
