package deps

// Language groups the manifest formats of one ecosystem.
type Language struct {
	Name      string
	Manifests []Manifest
}

// Manifest describes one recognized dependency file.
type Manifest struct {
	Filename       string        // Exact base name, case-sensitive
	PackageManager string        // Reported package manager, e.g. "npm"
	Extractor      Extractor     // Nil for lockfiles that only identify a manager
	Meta           MetaExtractor // Nil when the format carries no project metadata
}

// Extractable reports whether the manifest has a dependency extractor.
func (m Manifest) Extractable() bool { return m.Extractor != nil }
