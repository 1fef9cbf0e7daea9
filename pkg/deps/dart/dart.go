// Package dart extracts dependencies and the project version from Dart
// and Flutter pubspec.yaml files.
package dart

import "github.com/matzehuels/repolens/pkg/deps"

// Language registers pubspec.yaml.
var Language = &deps.Language{
	Name: "dart",
	Manifests: []deps.Manifest{
		{Filename: "pubspec.yaml", PackageManager: "pub", Extractor: Pubspec{}, Meta: Pubspec{}},
	},
}
