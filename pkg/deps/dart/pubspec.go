package dart

import (
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/repolens/pkg/deps"
	"github.com/matzehuels/repolens/pkg/deps/scan"
)

type pubspecState int

const (
	pubOther pubspecState = iota
	pubDeps
	pubDevDeps
)

var (
	pubChildRE   = regexp.MustCompile(`^\s{2}([a-zA-Z0-9_]+):\s*(.*)`)
	pubVersionRE = regexp.MustCompile(`(?m)^version:[ \t]*(.+)`)

	// sdkPackages ship with the Flutter SDK and are not fetched from pub.
	sdkPackages = map[string]bool{"flutter": true, "flutter_test": true}
)

// Pubspec extracts the dependencies and dev_dependencies maps.
type Pubspec struct{}

func (Pubspec) Type() string { return "pubspec.yaml" }

// Extract reads entries indented by exactly two columns under a
// "dependencies:" or "dev_dependencies:" header. Any other non-comment line
// starting at column zero ends the section. An entry with a nested map
// (path, git or sdk sources) has no version.
func (Pubspec) Extract(content string) ([]deps.Dependency, error) {
	out := []deps.Dependency{}
	state := pubOther
	for _, l := range scan.Lines(content) {
		switch {
		case l.Raw == "dependencies:":
			state = pubDeps
			continue
		case l.Raw == "dev_dependencies:":
			state = pubDevDeps
			continue
		case l.Raw != "" && l.Raw[0] != ' ' && l.Raw[0] != '\t' && !l.Comment("#"):
			state = pubOther
			continue
		}
		if state == pubOther {
			continue
		}
		m := pubChildRE.FindStringSubmatch(l.Raw)
		if m == nil || sdkPackages[m[1]] {
			continue
		}
		typ := deps.Production
		if state == pubDevDeps {
			typ = deps.Dev
		}
		out = append(out, deps.Dep(m[1], scan.Unquote(strings.TrimSpace(m[2])), typ))
	}
	return out, nil
}

// ExtractMeta reads the top-level version. pubspec.yaml has no license
// field. Invalid YAML falls back to the first "version:" line.
func (Pubspec) ExtractMeta(content string) (deps.ProjectMeta, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(content), &doc); err != nil {
		if m := pubVersionRE.FindStringSubmatch(content); m != nil {
			return deps.ProjectMeta{Version: deps.String(strings.TrimSpace(m[1]))}, nil
		}
		return deps.ProjectMeta{}, nil
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return deps.ProjectMeta{}, nil
	}
	root := doc.Content[0]
	for i := 0; i+1 < len(root.Content); i += 2 {
		k, v := root.Content[i], root.Content[i+1]
		if k.Value == "version" && v.Kind == yaml.ScalarNode {
			return deps.ProjectMeta{Version: deps.String(strings.TrimSpace(v.Value))}, nil
		}
	}
	return deps.ProjectMeta{}, nil
}
