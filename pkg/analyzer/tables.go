package analyzer

// extensionLanguages maps lower-case file extensions to language names.
var extensionLanguages = map[string]string{
	".ts":     "TypeScript",
	".tsx":    "TypeScript",
	".js":     "JavaScript",
	".jsx":    "JavaScript",
	".py":     "Python",
	".java":   "Java",
	".go":     "Go",
	".rb":     "Ruby",
	".php":    "PHP",
	".rs":     "Rust",
	".cs":     "C#",
	".cpp":    "C++",
	".cc":     "C++",
	".c":      "C",
	".swift":  "Swift",
	".kt":     "Kotlin",
	".scala":  "Scala",
	".dart":   "Dart",
	".vue":    "Vue",
	".svelte": "Svelte",
}

var keyDirectories = map[string]bool{
	"src":         true,
	"lib":         true,
	"app":         true,
	"components":  true,
	"api":         true,
	"test":        true,
	"tests":       true,
	"spec":        true,
	"docs":        true,
	"public":      true,
	"static":      true,
	"config":      true,
	"utils":       true,
	"helpers":     true,
	"scripts":     true,
	"assets":      true,
	"styles":      true,
	"pages":       true,
	"routes":      true,
	"middleware":  true,
	"models":      true,
	"views":       true,
	"controllers": true,
	"services":    true,
}

var keyFiles = map[string]bool{
	"README.md":           true,
	"README":              true,
	"LICENSE":             true,
	"LICENSE.md":          true,
	".gitignore":          true,
	"Dockerfile":          true,
	"docker-compose.yml":  true,
	"docker-compose.yaml": true,
	"Makefile":            true,
	".env.example":        true,
	"tsconfig.json":       true,
	".eslintrc.js":        true,
	".prettierrc":         true,
}
