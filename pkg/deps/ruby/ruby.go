// Package ruby extracts dependencies from Bundler Gemfiles.
package ruby

import "github.com/matzehuels/repolens/pkg/deps"

// Language registers the Gemfile.
var Language = &deps.Language{
	Name: "ruby",
	Manifests: []deps.Manifest{
		{Filename: "Gemfile", PackageManager: "bundler", Extractor: Gemfile{}},
	},
}
