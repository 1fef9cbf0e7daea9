package javascript

import "github.com/matzehuels/repolens/pkg/deps"

// Language registers package.json and the npm-compatible lockfiles.
var Language = &deps.Language{
	Name: "javascript",
	Manifests: []deps.Manifest{
		{Filename: "package.json", PackageManager: "npm", Extractor: PackageJSON{}, Meta: PackageJSON{}},
		{Filename: "yarn.lock", PackageManager: "yarn"},
		{Filename: "pnpm-lock.yaml", PackageManager: "pnpm"},
	},
}
