package java

import "github.com/matzehuels/repolens/pkg/deps"

// Language registers pom.xml and both Gradle build script dialects.
var Language = &deps.Language{
	Name: "java",
	Manifests: []deps.Manifest{
		{Filename: "pom.xml", PackageManager: "maven", Extractor: POM{}},
		{Filename: "build.gradle", PackageManager: "gradle", Extractor: Gradle{File: "build.gradle"}},
		{Filename: "build.gradle.kts", PackageManager: "gradle", Extractor: Gradle{File: "build.gradle.kts"}},
	},
}
