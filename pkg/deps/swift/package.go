package swift

import (
	"strings"

	"github.com/matzehuels/repolens/pkg/deps"
	"github.com/matzehuels/repolens/pkg/deps/scan"
)

// Package extracts `.package(url: ...)` declarations from Package.swift.
type Package struct{}

func (Package) Type() string { return "Package.swift" }

// Extract names each dependency after the last path segment of its URL,
// without a ".git" suffix. The version comes from `from: "x"`,
// `exact: "x"` or the lower bound of a `"a"..<"b"` or `"a"..."b"` range.
// Local `.package(path:)` entries have no URL and are skipped.
func (Package) Extract(content string) ([]deps.Dependency, error) {
	out := []deps.Dependency{}
	toks := scan.Tokenize(content)
	for i := 0; i+2 < len(toks); i++ {
		if !toks[i].Is(scan.Punct, ".") || !toks[i+1].Is(scan.Ident, "package") || !toks[i+2].Is(scan.Punct, "(") {
			continue
		}
		args, end := call(toks, i+3)
		i = end
		url, version := packageArgs(args)
		if name := repoName(url); name != "" {
			out = append(out, deps.Dep(name, version, deps.Production))
		}
	}
	return out, nil
}

// call returns the tokens between an opening paren (already consumed) and
// its matching close, and the index of the close.
func call(toks []scan.Token, start int) ([]scan.Token, int) {
	depth := 0
	for j := start; j < len(toks); j++ {
		switch {
		case toks[j].Is(scan.Punct, "("):
			depth++
		case toks[j].Is(scan.Punct, ")"):
			if depth == 0 {
				return toks[start:j], j
			}
			depth--
		}
	}
	return toks[start:], len(toks)
}

func packageArgs(args []scan.Token) (url, version string) {
	for k := 0; k < len(args); k++ {
		t := args[k]
		switch {
		case t.Kind == scan.Ident && k+2 < len(args) &&
			args[k+1].Is(scan.Punct, ":") && args[k+2].Kind == scan.String:
			switch t.Text {
			case "url":
				if url == "" {
					url = args[k+2].Text
				}
			case "from", "exact":
				if version == "" {
					version = args[k+2].Text
				}
			}
			k += 2
		case t.Kind == scan.String && k+2 < len(args) &&
			args[k+1].Kind == scan.Range && args[k+2].Kind == scan.String:
			if version == "" {
				version = t.Text
			}
			k += 2
		}
	}
	return url, version
}

func repoName(url string) string {
	url = strings.TrimSuffix(strings.TrimSpace(url), ".git")
	if i := strings.LastIndexByte(url, '/'); i >= 0 {
		url = url[i+1:]
	}
	return url
}
