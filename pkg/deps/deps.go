package deps

// Type classifies how a project depends on a package.
type Type string

const (
	Production Type = "production" // Needed at runtime
	Dev        Type = "dev"        // Build, test or tooling only
	Peer       Type = "peer"       // Expected to be provided by the host project
	Optional   Type = "optional"   // Installed when available
)

// Valid reports whether t is one of the four known dependency types.
func (t Type) Valid() bool {
	switch t {
	case Production, Dev, Peer, Optional:
		return true
	}
	return false
}

// Dependency is a single record extracted from a manifest file.
type Dependency struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"` // Empty when the manifest declares none
	Type    Type   `json:"type"`
}

// ProjectMeta holds the project's own version and license, when declared.
// Nil fields mean the manifest does not say.
type ProjectMeta struct {
	Version *string `json:"version"`
	License *string `json:"license"`
}

// Empty reports whether neither field is set.
func (m ProjectMeta) Empty() bool { return m.Version == nil && m.License == nil }

// Extractor parses the textual content of one manifest format.
//
// Implementations are pure and stateless: the same content always yields
// the same records, in document order, and lines or entries that do not
// match the format's grammar are skipped rather than reported.
type Extractor interface {
	// Extract returns the declared dependencies. Only formats with a
	// structured syntax (JSON) report malformed content as a [*ParseError].
	Extract(content string) ([]Dependency, error)
	// Type returns the manifest filename this extractor handles.
	Type() string
}

// MetaExtractor reads a project's own version and license from a manifest.
type MetaExtractor interface {
	ExtractMeta(content string) (ProjectMeta, error)
}

// Dep builds a Dependency, leaving Version empty when v is empty.
func Dep(name, version string, t Type) Dependency {
	return Dependency{Name: name, Version: version, Type: t}
}

// String returns a pointer to s, or nil when s is empty.
func String(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
