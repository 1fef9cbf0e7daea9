// Package languages provides the complete list of supported ecosystems and
// the default extractor registry built from it.
//
// This package exists to break import cycles: the individual language
// packages import pkg/deps, so pkg/deps cannot import them back.
//
// Usage:
//
//	records, err := languages.ExtractDependenciesFromFile("go.mod", content)
//	meta := languages.ExtractProjectMeta("Cargo.toml", content)
package languages

import (
	"github.com/matzehuels/repolens/pkg/deps"
	"github.com/matzehuels/repolens/pkg/deps/dart"
	"github.com/matzehuels/repolens/pkg/deps/golang"
	"github.com/matzehuels/repolens/pkg/deps/java"
	"github.com/matzehuels/repolens/pkg/deps/javascript"
	"github.com/matzehuels/repolens/pkg/deps/php"
	"github.com/matzehuels/repolens/pkg/deps/python"
	"github.com/matzehuels/repolens/pkg/deps/ruby"
	"github.com/matzehuels/repolens/pkg/deps/rust"
	"github.com/matzehuels/repolens/pkg/deps/swift"
)

// All is the canonical list of supported ecosystems, in the order their
// manifests are checked.
var All = []*deps.Language{
	javascript.Language,
	python.Language,
	php.Language,
	ruby.Language,
	golang.Language,
	rust.Language,
	java.Language,
	dart.Language,
	swift.Language,
}

// Default is the registry over All.
var Default = deps.NewRegistry(All...)

// GetExtractor returns the extractor for an exact manifest filename.
func GetExtractor(filename string) (deps.Extractor, bool) {
	return Default.Extractor(filename)
}

// ExtractDependenciesFromFile extracts the dependencies of one manifest.
// Unrecognized filenames yield an empty slice.
func ExtractDependenciesFromFile(filename, content string) ([]deps.Dependency, error) {
	return Default.Extract(filename, content)
}

// ExtractProjectMeta returns the project version and license declared in
// a manifest, with nil fields when unknown. It never fails.
func ExtractProjectMeta(filename, content string) deps.ProjectMeta {
	return Default.Meta(filename, content)
}
