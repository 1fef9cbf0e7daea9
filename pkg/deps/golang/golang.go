// Package golang extracts module requirements from go.mod files.
package golang

import "github.com/matzehuels/repolens/pkg/deps"

// Language registers go.mod.
var Language = &deps.Language{
	Name: "go",
	Manifests: []deps.Manifest{
		{Filename: "go.mod", PackageManager: "go modules", Extractor: GoMod{}},
	},
}
