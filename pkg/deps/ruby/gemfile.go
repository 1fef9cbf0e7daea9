package ruby

import (
	"regexp"
	"strings"

	"github.com/matzehuels/repolens/pkg/deps"
	"github.com/matzehuels/repolens/pkg/deps/scan"
)

type gemfileState int

const (
	gemDefault gemfileState = iota
	gemDevGroup
)

var gemPattern = regexp.MustCompile(`^gem\s+['"]([^'"]+)['"](?:\s*,\s*['"]([^'"]+)['"])?`)

// Gemfile extracts gem declarations. Gems inside a group block that names
// :development or :test are dev; everything else is production.
type Gemfile struct{}

func (Gemfile) Type() string { return "Gemfile" }

// Extract tracks group blocks with a flat state: any "group" line opens a
// block and the next "end" line closes it, whatever block that end belongs
// to. Only the first string argument after the name is read as a version.
func (Gemfile) Extract(content string) ([]deps.Dependency, error) {
	out := []deps.Dependency{}
	state := gemDefault
	for _, l := range scan.Lines(content) {
		if l.Blank() || l.Comment("#") {
			continue
		}
		switch {
		case strings.HasPrefix(l.Text, "group"):
			state = gemDefault
			if strings.Contains(l.Text, ":development") || strings.Contains(l.Text, ":test") {
				state = gemDevGroup
			}
			continue
		case l.Text == "end":
			state = gemDefault
			continue
		}
		m := gemPattern.FindStringSubmatch(l.Text)
		if m == nil {
			continue
		}
		typ := deps.Production
		if state == gemDevGroup {
			typ = deps.Dev
		}
		out = append(out, deps.Dep(m[1], m[2], typ))
	}
	return out, nil
}
