package rust

import (
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/repolens/pkg/deps"
	"github.com/matzehuels/repolens/pkg/deps/scan"
)

type cargoState int

const (
	cargoOther cargoState = iota
	cargoDeps
	cargoDevDeps // dev-dependencies and build-dependencies
)

// Cargo extracts the [dependencies], [dev-dependencies] and
// [build-dependencies] tables. Build dependencies are reported as dev.
type Cargo struct{}

func (Cargo) Type() string { return "Cargo.toml" }

// Extract accepts `name = "1.0"` and inline tables with a version key.
// Path, git and workspace dependencies without a version are skipped. Platform tables such as [target.'cfg(unix)'.dependencies]
// classify like their untargeted counterparts. Dotted keys are not read.
func (Cargo) Extract(content string) ([]deps.Dependency, error) {
	out := []deps.Dependency{}
	state := cargoOther
	for _, l := range scan.Lines(content) {
		if l.Blank() || l.Comment("#") {
			continue
		}
		if name, ok := l.Section(); ok {
			state = cargoSection(name)
			continue
		}
		if state == cargoOther {
			continue
		}
		name, rest, ok := scan.KeyValue(l.Text, scan.PackageKey)
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
		if state == cargoDevDeps {
			typ = deps.Dev
		}
		out = append(out, deps.Dep(name, version, typ))
	}
	return out, nil
}

func cargoSection(name string) cargoState {
	if strings.HasPrefix(name, "target.") {
		if i := strings.LastIndexByte(name, '.'); i > 0 {
			name = name[i+1:]
		}
	}
	switch name {
	case "dependencies":
		return cargoDeps
	case "dev-dependencies", "build-dependencies":
		return cargoDevDeps
	}
	return cargoOther
}

type cargoManifest struct {
	Package struct {
		Version any `toml:"version"`
		License any `toml:"license"`
	} `toml:"package"`
}

var (
	cargoVersionRE = regexp.MustCompile(`(?ms)^\[package\].*?^version\s*=\s*"([^"]+)"`)
	cargoLicenseRE = regexp.MustCompile(`(?ms)^\[package\].*?^license\s*=\s*"([^"]+)"`)
)

// ExtractMeta reads version and license from [package]. Values inherited
// from the workspace (`version.workspace = true`) are not resolved. Files
// that are not valid TOML are searched for the keys after the [package]
// header instead.
func (Cargo) ExtractMeta(content string) (deps.ProjectMeta, error) {
	var m cargoManifest
	if _, err := toml.Decode(content, &m); err != nil {
		return deps.ProjectMeta{
			Version: firstGroup(cargoVersionRE, content),
			License: firstGroup(cargoLicenseRE, content),
		}, nil
	}
	version, _ := m.Package.Version.(string)
	license, _ := m.Package.License.(string)
	return deps.ProjectMeta{Version: deps.String(version), License: deps.String(license)}, nil
}

func firstGroup(re *regexp.Regexp, s string) *string {
	if m := re.FindStringSubmatch(s); m != nil {
		return &m[1]
	}
	return nil
}
