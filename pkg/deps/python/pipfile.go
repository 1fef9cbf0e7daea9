package python

import (
	"github.com/matzehuels/repolens/pkg/deps"
	"github.com/matzehuels/repolens/pkg/deps/scan"
)

type pipfileState int

const (
	pipfileOther pipfileState = iota
	pipfilePackages
	pipfileDevPackages
)

// Pipfile extracts the [packages] and [dev-packages] tables.
type Pipfile struct{}

func (Pipfile) Type() string { return "Pipfile" }

func (Pipfile) Extract(content string) ([]deps.Dependency, error) {
	out := []deps.Dependency{}
	state := pipfileOther
	for _, l := range scan.Lines(content) {
		if l.Blank() || l.Comment("#") {
			continue
		}
		if l.Comment("[") {
			switch l.Text {
			case "[packages]":
				state = pipfilePackages
			case "[dev-packages]":
				state = pipfileDevPackages
			default:
				state = pipfileOther
			}
			continue
		}
		if state == pipfileOther {
			continue
		}
		name, rest, ok := scan.KeyValue(l.Text, scan.DottedKey)
		if !ok {
			continue
		}
		version, ok := scan.Quoted(rest)
		if !ok {
			if version, ok = scan.TableVersion(rest); !ok {
				continue
			}
		}
		typ := deps.Production
		if state == pipfileDevPackages {
			typ = deps.Dev
		}
		out = append(out, deps.Dep(name, pinned(version), typ))
	}
	return out, nil
}
