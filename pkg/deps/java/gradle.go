package java

import (
	"strings"

	"github.com/matzehuels/repolens/pkg/deps"
	"github.com/matzehuels/repolens/pkg/deps/scan"
)

// configurations lists the recognized dependency configurations and
// whether each one is dev-only.
var configurations = map[string]bool{
	"implementation":      false,
	"api":                 false,
	"runtimeOnly":         false,
	"compileOnly":         true,
	"testImplementation":  true,
	"testRuntimeOnly":     true,
	"annotationProcessor": true,
}

// Gradle extracts string dependency coordinates from Gradle build scripts.
type Gradle struct {
	File string // "build.gradle" or "build.gradle.kts"
}

func (g Gradle) Type() string {
	if g.File == "" {
		return "build.gradle"
	}
	return g.File
}

// Extract reads `<configuration> "group:artifact[:version]"` and the
// parenthesized Kotlin form. Coordinates with fewer than two parts are
// skipped; the version is the third part when present.
func (Gradle) Extract(content string) ([]deps.Dependency, error) {
	out := []deps.Dependency{}
	toks := scan.Tokenize(content)
	for i := 0; i < len(toks); i++ {
		if toks[i].Kind != scan.Ident {
			continue
		}
		dev, ok := configurations[toks[i].Text]
		if !ok || (i > 0 && toks[i-1].Is(scan.Punct, ".")) {
			continue
		}
		j := i + 1
		if j < len(toks) && toks[j].Is(scan.Punct, "(") {
			j++
		}
		if j >= len(toks) || toks[j].Kind != scan.String {
			continue
		}
		d, ok := coordinate(toks[j].Text, dev)
		if !ok {
			continue
		}
		out = append(out, d)
		i = j
	}
	return out, nil
}

func coordinate(s string, dev bool) (deps.Dependency, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 {
		return deps.Dependency{}, false
	}
	version := ""
	if len(parts) > 2 {
		version = parts[2]
	}
	typ := deps.Production
	if dev {
		typ = deps.Dev
	}
	return deps.Dep(parts[0]+":"+parts[1], version, typ), true
}
