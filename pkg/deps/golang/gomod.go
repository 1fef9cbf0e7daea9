package golang

import (
	"regexp"
	"strings"

	"golang.org/x/mod/modfile"

	"github.com/matzehuels/repolens/pkg/deps"
	"github.com/matzehuels/repolens/pkg/deps/scan"
)

type gomodState int

const (
	gomodTop gomodState = iota
	gomodRequireBlock
)

var (
	blockRequireRE  = regexp.MustCompile(`^(\S+)\s+(\S+)`)
	inlineRequireRE = regexp.MustCompile(`^require\s+(\S+)\s+(\S+)`)
)

// GoMod extracts require directives, both single-line and block form.
// All records are production; go.mod has no dev dependencies.
type GoMod struct{}

func (GoMod) Type() string { return "go.mod" }

// Extract parses with modfile first. Files modfile rejects, such as ones
// with non-semver versions, are scanned line by line instead.
func (g GoMod) Extract(content string) ([]deps.Dependency, error) {
	if f, err := modfile.ParseLax(g.Type(), []byte(content), nil); err == nil {
		out := make([]deps.Dependency, 0, len(f.Require))
		for _, r := range f.Require {
			out = append(out, deps.Dep(r.Mod.Path, r.Mod.Version, deps.Production))
		}
		return out, nil
	}
	return scanRequires(content), nil
}

func scanRequires(content string) []deps.Dependency {
	out := []deps.Dependency{}
	state := gomodTop
	for _, l := range scan.Lines(content) {
		if l.Blank() || l.Comment("//") {
			continue
		}
		switch state {
		case gomodTop:
			if strings.HasPrefix(l.Text, "require (") || strings.HasPrefix(l.Text, "require(") {
				state = gomodRequireBlock
				continue
			}
			if m := inlineRequireRE.FindStringSubmatch(l.Text); m != nil {
				out = append(out, deps.Dep(m[1], m[2], deps.Production))
			}
		case gomodRequireBlock:
			if l.Text == ")" {
				state = gomodTop
				continue
			}
			if m := blockRequireRE.FindStringSubmatch(l.Text); m != nil {
				out = append(out, deps.Dep(m[1], m[2], deps.Production))
			}
		}
	}
	return out
}
