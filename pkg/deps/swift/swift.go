// Package swift extracts package dependencies from Swift Package Manager
// manifests.
package swift

import "github.com/matzehuels/repolens/pkg/deps"

// Language registers Package.swift.
var Language = &deps.Language{
	Name: "swift",
	Manifests: []deps.Manifest{
		{Filename: "Package.swift", PackageManager: "swift package manager", Extractor: Package{}},
	},
}
