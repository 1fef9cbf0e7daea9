package swift

import (
	"reflect"
	"testing"

	"github.com/matzehuels/repolens/pkg/deps"
)

func TestPackage_Extract(t *testing.T) {
	content := `// swift-tools-version:5.9
import PackageDescription

let package = Package(
    name: "Lens",
    dependencies: [
        .package(url: "https://github.com/apple/swift-argument-parser.git", from: "1.2.0"),
        .package(url: "https://github.com/vapor/vapor", "4.0.0"..<"5.0.0"),
        .package(url: "https://github.com/pointfreeco/swift-snapshot-testing", exact: "1.15.1"),
        .package(url: "https://github.com/apple/swift-log.git", .upToNextMajor(from: "1.5.0")),
        .package(url: "https://github.com/example/branchy.git", branch: "main"),
        .package(path: "../LocalKit"),
        // .package(url: "https://github.com/old/dep.git", from: "0.1.0"),
    ],
    targets: [
        .target(name: "Lens", dependencies: [.product(name: "Vapor", package: "vapor")]),
    ]
)`
	got, err := Package{}.Extract(content)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	want := []deps.Dependency{
		{Name: "swift-argument-parser", Version: "1.2.0", Type: deps.Production},
		{Name: "vapor", Version: "4.0.0", Type: deps.Production},
		{Name: "swift-snapshot-testing", Version: "1.15.1", Type: deps.Production},
		{Name: "swift-log", Version: "1.5.0", Type: deps.Production},
		{Name: "branchy", Type: deps.Production},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract =\n%v\nwant\n%v", got, want)
	}
}

func TestRepoName(t *testing.T) {
	tests := map[string]string{
		"https://github.com/a/b.git": "b",
		"git@github.com:a/c.git":     "c",
		"https://host/x/":            "",
		"plain":                      "plain",
	}
	for in, want := range tests {
		if got := repoName(in); got != want {
			t.Errorf("repoName(%q) = %q, want %q", in, got, want)
		}
	}
}
