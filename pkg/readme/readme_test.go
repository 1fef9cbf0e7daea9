package readme

import (
	"strings"
	"testing"

	"github.com/matzehuels/repolens/pkg/analyzer"
	"github.com/matzehuels/repolens/pkg/deps"
	"github.com/matzehuels/repolens/pkg/source"
)

func nodeInput() Input {
	return Input{
		Repo: RepoInfo{
			Name:        "web",
			Description: deps.String("A web app"),
			Platform:    source.GitHub,
			Owner:       "octo",
		},
		Analysis: analyzer.Result{
			Language:       "TypeScript",
			PackageManager: deps.String("npm"),
			Dependencies: []analyzer.DependencyFile{{
				File: "package.json",
				Path: "package.json",
				Packages: []deps.Dependency{
					deps.Dep("react", "^18.0.0", deps.Production),
					deps.Dep("left-pad", "", deps.Production),
					deps.Dep("vite", "5", deps.Dev),
					deps.Dep("fsevents", "2", deps.Optional),
				},
			}},
			Structure: analyzer.Structure{
				Directories: []string{"src", "public"},
				KeyFiles:    []string{"README.md", "tsconfig.json"},
			},
			Version: deps.String("1.2.0"),
			License: deps.String("MIT"),
		},
	}
}

func TestGenerateNode(t *testing.T) {
	got := Generate(nodeInput())

	want := []string{
		"# web\n\n![TypeScript](https://img.shields.io/badge/TypeScript-3178C6?logo=typescript&logoColor=white) " +
			"![License](https://img.shields.io/badge/license-MIT-blue.svg) " +
			"![Version](https://img.shields.io/badge/version-1.2.0-green.svg)\n\nA web app\n\n## Table of Contents",
		"## Prerequisites\n\nMake sure you have installed:\n- Node.js (>= 18)\n- npm\n- Git",
		"```bash\ngit clone https://github.com/octo/web.git\ncd web\n```\n\n2. Install dependencies:\n\n```bash\nnpm install\n```",
		"## Usage\n\nStart the development server:\n\n```bash\nnpm run dev\n```",
		"## Project Structure\n\n```\n├── src/\n├── public/\n├── README.md\n├── tsconfig.json\n```",
		"### Main\n\n| Package | Version |\n|---------|---------|\n| react | ^18.0.0 |\n| left-pad | - |",
		"### Development\n\n| Package | Version |\n|---------|---------|\n| vite | 5 |\n\n## License",
	}
	for _, w := range want {
		if !strings.Contains(got, w) {
			t.Errorf("Generate() missing:\n%s\n\ngot:\n%s", w, got)
		}
	}
	if strings.Contains(got, "fsevents") {
		t.Error("optional dependencies should not be listed")
	}
	if !strings.HasSuffix(got, "This project is licensed under the terms specified in the LICENSE file.") {
		t.Error("Generate() should end with the license section")
	}
}

func TestGenerateMinimal(t *testing.T) {
	got := Generate(Input{
		Repo:     RepoInfo{Name: "tool", Platform: source.GitLab, Owner: "grp"},
		Analysis: analyzer.Result{Language: analyzer.Unknown},
	})

	want := "# tool\n\n" + DefaultDescription + "\n\n" + tableOfContents + "\n\n" +
		"## Prerequisites\n\nMake sure you have installed:\n- Git\n\n" +
		"## Installation\n\n1. Clone the repository:\n\n```bash\ngit clone https://gitlab.com/grp/tool.git\ncd tool\n```\n\n" +
		"## Usage\n\nRefer to the project documentation for run instructions.\n\n" +
		license
	if got != want {
		t.Errorf("Generate() =\n%s\n\nwant:\n%s", got, want)
	}
}

func TestPrerequisites(t *testing.T) {
	tests := []struct {
		name string
		lang string
		pm   *string
		want []string
	}{
		{"runtime names manager", "Go", nil, []string{"- Go (>= 1.21)", "- Git"}},
		{"manager listed", "Rust", deps.String("cargo"), []string{"- Rust (latest stable)", "- cargo", "- Git"}},
		{"manager contained in runtime", "Python", deps.String("python"), []string{"- Python (>= 3.8)", "- Git"}},
		{"no runtime", "Vue", deps.String("npm"), []string{"- npm", "- Git"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := prerequisites(&analyzer.Result{Language: tt.lang, PackageManager: tt.pm})
			lines := strings.Split(got, "\n")[3:]
			if strings.Join(lines, "|") != strings.Join(tt.want, "|") {
				t.Errorf("prerequisites() items = %v, want %v", lines, tt.want)
			}
		})
	}
}

func TestUsageGenericExample(t *testing.T) {
	got := usage(&analyzer.Result{Language: "Java"})
	if got != "## Usage\n\n```bash\njavac Main.java && java Main\n```" {
		t.Errorf("usage() = %q", got)
	}
}

func TestBadges(t *testing.T) {
	tests := []struct {
		name string
		res  analyzer.Result
		want string
	}{
		{"none", analyzer.Result{Language: analyzer.Unknown}, ""},
		{"dark logo", analyzer.Result{Language: "JavaScript"}, "![JavaScript](https://img.shields.io/badge/JavaScript-F7DF1E?logo=javascript&logoColor=black)"},
		{"escaped", analyzer.Result{Language: "C#"}, "![C#](https://img.shields.io/badge/C%23-239120?logo=csharp&logoColor=white)"},
		{"license with spaces", analyzer.Result{License: deps.String("MIT OR Apache-2.0")}, "![License](https://img.shields.io/badge/license-MIT%20OR%20Apache-2.0-blue.svg)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := badges(&tt.res); got != tt.want {
				t.Errorf("badges() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStructureEmpty(t *testing.T) {
	res := analyzer.Result{Structure: analyzer.Structure{KeyFiles: []string{"README.md"}}}
	if got := structure(&res); got != "" {
		t.Errorf("structure() without directories = %q, want empty", got)
	}
}

func TestInfo(t *testing.T) {
	repo := &source.Repo{Name: "x", Owner: "o", Platform: source.GitLab, URL: "https://git.example.com/o/x"}
	info := Info(repo)
	if got := info.CloneURL(); got != "https://git.example.com/o/x.git" {
		t.Errorf("CloneURL() = %q", got)
	}
}
