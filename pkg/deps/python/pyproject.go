package python

import (
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/repolens/pkg/deps"
	"github.com/matzehuels/repolens/pkg/deps/scan"
)

type pyprojectState int

const (
	pyOther pyprojectState = iota
	pyProject
	pyOptional  // [project.optional-dependencies]
	pyPoetry    // [tool.poetry.dependencies]
	pyPoetryDev // dev-dependencies and dependency groups
)

var pyItemRE = regexp.MustCompile(`^([a-zA-Z0-9_.-]+)\s*(.*)$`)

// Pyproject extracts PEP 621 dependency arrays and Poetry dependency tables.
type Pyproject struct{}

func (Pyproject) Type() string { return "pyproject.toml" }

// Extract reads:
//
//   - [project] dependencies = [...] as production
//   - [project.optional-dependencies] arrays as optional
//   - [tool.poetry.dependencies] as production, excluding python itself
//   - [tool.poetry.dev-dependencies] and [tool.poetry.group.*.dependencies] as dev
//
// Arrays may span several lines. PEP 508 items keep their full constraint
// text as the version; Poetry's "*" means no version.
func (Pyproject) Extract(content string) ([]deps.Dependency, error) {
	out := []deps.Dependency{}
	state := pyOther
	inList := false
	listType := deps.Production

	for _, l := range scan.Lines(content) {
		if inList {
			body, closed := cutList(l.Text)
			out = append(out, pyItems(body, listType)...)
			inList = !closed
			continue
		}
		if l.Blank() || l.Comment("#") {
			continue
		}
		if name, ok := l.Section(); ok {
			state = pySection(name)
			continue
		}

		switch state {
		case pyProject, pyOptional:
			key, rest, ok := scan.KeyValue(l.Text, scan.DottedKey)
			if !ok || !strings.HasPrefix(rest, "[") {
				continue
			}
			if state == pyProject && key != "dependencies" {
				continue
			}
			listType = deps.Production
			if state == pyOptional {
				listType = deps.Optional
			}
			body, closed := cutList(rest[1:])
			out = append(out, pyItems(body, listType)...)
			inList = !closed
		case pyPoetry, pyPoetryDev:
			name, rest, ok := scan.KeyValue(l.Text, scan.DottedKey)
			if !ok || (state == pyPoetry && name == "python") {
				continue
			}
			version, ok := scan.Quoted(rest)
			if !ok {
				if version, ok = scan.TableVersion(rest); !ok {
					continue
				}
			}
			typ := deps.Production
			if state == pyPoetryDev {
				typ = deps.Dev
			}
			out = append(out, deps.Dep(name, pinned(version), typ))
		}
	}
	return out, nil
}

func pySection(name string) pyprojectState {
	switch {
	case name == "project":
		return pyProject
	case name == "project.optional-dependencies":
		return pyOptional
	case name == "tool.poetry.dependencies":
		return pyPoetry
	case name == "tool.poetry.dev-dependencies",
		strings.HasPrefix(name, "tool.poetry.group.") && strings.HasSuffix(name, ".dependencies"):
		return pyPoetryDev
	}
	return pyOther
}

// cutList returns the text before the first ']' outside a quoted string.
func cutList(s string) (body string, closed bool) {
	var quote byte
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '#':
			return s[:i], false
		case c == ']':
			return s[:i], true
		}
	}
	return s, false
}

// pyItems splits a comma-separated list of PEP 508 strings. Commas inside
// a constraint such as ">=1,<2" split it too; the fragment that does not
// start with a name is dropped.
func pyItems(body string, typ deps.Type) []deps.Dependency {
	var out []deps.Dependency
	for _, item := range strings.Split(body, ",") {
		item = strings.TrimSpace(strings.NewReplacer(`"`, "", `'`, "").Replace(item))
		m := pyItemRE.FindStringSubmatch(item)
		if m == nil {
			continue
		}
		out = append(out, deps.Dep(m[1], strings.TrimSpace(m[2]), typ))
	}
	return out
}

type pyprojectMeta struct {
	Project struct {
		Version string `toml:"version"`
		License any    `toml:"license"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Version string `toml:"version"`
			License string `toml:"license"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

var (
	pyVersionRE = regexp.MustCompile(`(?m)^version\s*=\s*"([^"]+)"`)
	pyLicenseRE = regexp.MustCompile(`(?m)^license\s*=\s*"([^"]+)"`)
)

// ExtractMeta reads version and license from [project], falling back to
// [tool.poetry]. A PEP 621 license table contributes its "text" key. Files
// that are not valid TOML are searched line by line instead.
func (Pyproject) ExtractMeta(content string) (deps.ProjectMeta, error) {
	var doc pyprojectMeta
	if _, err := toml.Decode(content, &doc); err != nil {
		return deps.ProjectMeta{
			Version: firstGroup(pyVersionRE, content),
			License: firstGroup(pyLicenseRE, content),
		}, nil
	}

	version := doc.Project.Version
	if version == "" {
		version = doc.Tool.Poetry.Version
	}
	license := ""
	switch l := doc.Project.License.(type) {
	case string:
		license = l
	case map[string]any:
		license, _ = l["text"].(string)
	}
	if license == "" {
		license = doc.Tool.Poetry.License
	}
	return deps.ProjectMeta{Version: deps.String(version), License: deps.String(license)}, nil
}

func firstGroup(re *regexp.Regexp, s string) *string {
	if m := re.FindStringSubmatch(s); m != nil {
		return &m[1]
	}
	return nil
}
