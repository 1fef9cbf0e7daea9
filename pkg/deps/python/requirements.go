package python

import (
	"regexp"
	"strings"

	"github.com/matzehuels/repolens/pkg/deps"
	"github.com/matzehuels/repolens/pkg/deps/scan"
)

var requirementRE = regexp.MustCompile(`^([a-zA-Z0-9_.-]+)\s*(.*)$`)

// Requirements extracts pip requirement lines. Every record is production.
type Requirements struct{}

func (Requirements) Type() string { return "requirements.txt" }

// Extract skips blank lines, comments, option lines such as "-r" or "-e",
// and bare URLs. The version is the text after the name with leading
// comparison operators removed, so a direct reference `name @ url` keeps
// "@ url" as its version.
func (Requirements) Extract(content string) ([]deps.Dependency, error) {
	out := []deps.Dependency{}
	for _, l := range scan.Lines(content) {
		if l.Blank() || l.Comment("#", "-") {
			continue
		}
		m := requirementRE.FindStringSubmatch(l.Text)
		if m == nil || bareURL(m[2]) {
			continue
		}
		version := strings.TrimSpace(strings.TrimLeft(stripComment(m[2]), "=<>!~"))
		out = append(out, deps.Dep(m[1], version, deps.Production))
	}
	return out, nil
}

// bareURL reports whether the text after a leading identifier continues a
// URL scheme, as in "git+https://..." or "https://...".
func bareURL(rest string) bool {
	return strings.HasPrefix(rest, "+") || strings.HasPrefix(rest, "://")
}

// stripComment drops a trailing "# ..." comment. A '#' inside a URL, such
// as "#egg=name" or "#sha256=...", is kept.
func stripComment(s string) string {
	if strings.HasPrefix(s, "#") {
		return ""
	}
	if i := strings.Index(s, " #"); i >= 0 {
		return s[:i]
	}
	if i := strings.Index(s, "\t#"); i >= 0 {
		return s[:i]
	}
	return s
}
