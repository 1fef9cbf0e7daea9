// Package python extracts dependencies from requirements.txt, Pipfile and
// pyproject.toml (PEP 621 and Poetry layouts).
package python

import "github.com/matzehuels/repolens/pkg/deps"

// Language registers the Python manifests. All of them report pip as the
// package manager.
var Language = &deps.Language{
	Name: "python",
	Manifests: []deps.Manifest{
		{Filename: "requirements.txt", PackageManager: "pip", Extractor: Requirements{}},
		{Filename: "Pipfile", PackageManager: "pip", Extractor: Pipfile{}},
		{Filename: "pyproject.toml", PackageManager: "pip", Extractor: Pyproject{}, Meta: Pyproject{}},
	},
}

// pinned returns v, or "" for the "any version" wildcard.
func pinned(v string) string {
	if v == "*" {
		return ""
	}
	return v
}
