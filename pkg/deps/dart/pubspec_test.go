package dart

import (
	"reflect"
	"testing"

	"github.com/matzehuels/repolens/pkg/deps"
)

const pubspec = `name: app
description: A Flutter app.
version: 1.2.0+4

environment:
  sdk: ">=3.0.0 <4.0.0"

dependencies:
  flutter:
    sdk: flutter
  http: ^1.1.0
  # pinned for web
  intl: "0.18.1"
  local_pkg:
    path: ../local_pkg

dev_dependencies:
  flutter_test:
    sdk: flutter
  lints: ^3.0.0

flutter:
  uses-material-design: true
`

func TestPubspec_Extract(t *testing.T) {
	got, err := Pubspec{}.Extract(pubspec)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	want := []deps.Dependency{
		{Name: "http", Version: "^1.1.0", Type: deps.Production},
		{Name: "intl", Version: "0.18.1", Type: deps.Production},
		{Name: "local_pkg", Type: deps.Production},
		{Name: "lints", Version: "^3.0.0", Type: deps.Dev},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract =\n%v\nwant\n%v", got, want)
	}
}

func TestPubspec_SectionReset(t *testing.T) {
	content := "dependencies:\n  a: 1.0.0\n# top-level comment keeps the section\n  b: 2.0.0\ndependency_overrides:\n  c: 3.0.0\n"
	got, _ := Pubspec{}.Extract(content)
	want := []deps.Dependency{
		{Name: "a", Version: "1.0.0", Type: deps.Production},
		{Name: "b", Version: "2.0.0", Type: deps.Production},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract =\n%v\nwant\n%v", got, want)
	}
}

func TestPubspec_ExtractMeta(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"yaml", pubspec, "1.2.0+4"},
		{"invalid yaml", "version: 0.9.0\n  bad: [\n", "0.9.0"},
		{"no version", "name: x\n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, err := Pubspec{}.ExtractMeta(tt.content)
			if err != nil {
				t.Fatalf("ExtractMeta failed: %v", err)
			}
			got := ""
			if meta.Version != nil {
				got = *meta.Version
			}
			if got != tt.want {
				t.Errorf("Version = %q, want %q", got, tt.want)
			}
			if meta.License != nil {
				t.Errorf("License = %q, want nil", *meta.License)
			}
		})
	}
}
