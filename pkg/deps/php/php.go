// Package php extracts dependencies from Composer's composer.json.
package php

import "github.com/matzehuels/repolens/pkg/deps"

// Language registers composer.json.
var Language = &deps.Language{
	Name: "php",
	Manifests: []deps.Manifest{
		{Filename: "composer.json", PackageManager: "composer", Extractor: Composer{}, Meta: Composer{}},
	},
}

var sections = []deps.Section{
	{Key: "require", Type: deps.Production, Skip: platform},
	{Key: "require-dev", Type: deps.Dev},
}

// platform reports the PHP runtime constraint, which is not a package.
func platform(name string) bool { return name == "php" }

// Composer extracts composer.json "require" and "require-dev" entries.
type Composer struct{}

func (Composer) Type() string { return "composer.json" }

func (c Composer) Extract(content string) ([]deps.Dependency, error) {
	return deps.JSONSections(c.Type(), content, sections...)
}

// ExtractMeta reads "version" and "license". Composer allows the license
// to be an array, in which case the first entry is used.
func (Composer) ExtractMeta(content string) (deps.ProjectMeta, error) {
	return deps.JSONMeta(content, true)
}
