// Package rust extracts crate dependencies and package metadata from
// Cargo.toml.
package rust

import "github.com/matzehuels/repolens/pkg/deps"

// Language registers Cargo.toml.
var Language = &deps.Language{
	Name: "rust",
	Manifests: []deps.Manifest{
		{Filename: "Cargo.toml", PackageManager: "cargo", Extractor: Cargo{}, Meta: Cargo{}},
	},
}
