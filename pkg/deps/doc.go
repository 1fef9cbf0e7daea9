// Package deps provides the data model and registry for extracting declared
// dependencies from package-manager manifest files.
//
// # Overview
//
// Repolens reads the manifests found in a repository and turns each one into
// a flat list of [Dependency] records:
//
//   - package.json, composer.json (JSON)
//   - requirements.txt, Pipfile, pyproject.toml (Python)
//   - Gemfile, go.mod, Cargo.toml, pubspec.yaml (line-oriented)
//   - pom.xml, build.gradle, build.gradle.kts, Package.swift (markup and DSLs)
//
// Every record carries a name, an optional version constraint kept verbatim
// from the manifest, and a [Type]: production, dev, peer or optional.
//
// # Extractors
//
// Each format has an [Extractor] living in a language subpackage ([javascript],
// [python], [ruby], ...). Extractors are pure functions of the file content.
// Line-oriented formats skip anything they do not understand and never fail;
// JSON formats report undecodable content as a [*ParseError].
//
// # Registry
//
// A [Registry] maps exact base filenames to extractors:
//
//	reg := deps.NewRegistry(javascript.Language, python.Language)
//	records, err := reg.Extract("package.json", content)
//
// The default registry with all supported languages lives in [languages].
//
// # Project Metadata
//
// Some manifests also declare the project's own version and license.
// [Registry.Meta] returns them as a [ProjectMeta] with nil fields for
// anything missing. Metadata extraction is best effort: any failure yields
// an empty ProjectMeta rather than an error.
package deps
