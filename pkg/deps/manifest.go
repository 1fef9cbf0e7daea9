package deps

import "path"

// Registry maps manifest filenames to their extractors. It is built once
// and read-only afterwards, so it is safe for concurrent use.
type Registry struct {
	order     []string
	manifests map[string]Manifest
	languages map[string]string
}

// NewRegistry indexes the manifests of the given languages. When two
// languages declare the same filename the first one wins.
func NewRegistry(langs ...*Language) *Registry {
	r := &Registry{
		manifests: make(map[string]Manifest),
		languages: make(map[string]string),
	}
	for _, l := range langs {
		for _, m := range l.Manifests {
			if _, dup := r.manifests[m.Filename]; dup {
				continue
			}
			r.order = append(r.order, m.Filename)
			r.manifests[m.Filename] = m
			r.languages[m.Filename] = l.Name
		}
	}
	return r
}

// Extractor returns the extractor registered for filename. The lookup uses
// the exact base name: "requirements-dev.txt" and "PACKAGE.JSON" do not match.
func (r *Registry) Extractor(filename string) (Extractor, bool) {
	m, ok := r.manifests[filename]
	if !ok || m.Extractor == nil {
		return nil, false
	}
	return m.Extractor, true
}

// Extract runs the extractor for filename over content. Unregistered
// filenames yield an empty result and no error.
func (r *Registry) Extract(filename, content string) ([]Dependency, error) {
	ex, ok := r.Extractor(filename)
	if !ok {
		return []Dependency{}, nil
	}
	out, err := ex.Extract(content)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []Dependency{}
	}
	return out, nil
}

// Meta extracts project metadata for filename. Any failure, including an
// unregistered filename, yields a ProjectMeta with both fields nil.
func (r *Registry) Meta(filename, content string) ProjectMeta {
	m, ok := r.manifests[filename]
	if !ok || m.Meta == nil {
		return ProjectMeta{}
	}
	meta, err := m.Meta.ExtractMeta(content)
	if err != nil {
		return ProjectMeta{}
	}
	return meta
}

// Manifests returns the filenames that have an extractor, in registration order.
func (r *Registry) Manifests() []string {
	var out []string
	for _, name := range r.order {
		if r.manifests[name].Extractor != nil {
			out = append(out, name)
		}
	}
	return out
}

// Files returns every recognized dependency file, lockfiles included.
func (r *Registry) Files() []string {
	return append([]string(nil), r.order...)
}

// Lookup returns the manifest registered for the base name of p.
func (r *Registry) Lookup(p string) (Manifest, bool) {
	m, ok := r.manifests[path.Base(p)]
	return m, ok
}

// PackageManager returns the package manager associated with filename.
func (r *Registry) PackageManager(filename string) (string, bool) {
	m, ok := r.manifests[filename]
	return m.PackageManager, ok
}

// Language returns the name of the language that registered filename.
func (r *Registry) Language(filename string) (string, bool) {
	l, ok := r.languages[filename]
	return l, ok
}
