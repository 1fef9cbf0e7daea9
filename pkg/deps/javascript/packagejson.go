package javascript

import "github.com/matzehuels/repolens/pkg/deps"

var sections = []deps.Section{
	{Key: "dependencies", Type: deps.Production},
	{Key: "devDependencies", Type: deps.Dev},
	{Key: "peerDependencies", Type: deps.Peer},
	{Key: "optionalDependencies", Type: deps.Optional},
}

// PackageJSON extracts package.json dependencies and project metadata.
type PackageJSON struct{}

func (PackageJSON) Type() string { return "package.json" }

func (p PackageJSON) Extract(content string) ([]deps.Dependency, error) {
	return deps.JSONSections(p.Type(), content, sections...)
}

// ExtractMeta reads the top-level "version" and "license" strings.
func (PackageJSON) ExtractMeta(content string) (deps.ProjectMeta, error) {
	return deps.JSONMeta(content, false)
}
