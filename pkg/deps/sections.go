package deps

import (
	"bytes"
	"encoding/json"

	"github.com/matzehuels/repolens/pkg/deps/scan"
)

// Section maps one top-level JSON object of a manifest to a dependency type.
type Section struct {
	Key  string
	Type Type
	Skip func(name string) bool // Optional filter for non-package entries
}

// JSONSections decodes a JSON manifest and emits the entries of each
// section in the order given, preserving key order within each section.
// Sections that are missing or not objects contribute nothing, as does
// valid JSON whose top-level value is not an object. Invalid JSON is
// reported as a [*ParseError] for file.
func JSONSections(file, content string, sections ...Section) ([]Dependency, error) {
	top, err := jsonObject(content)
	if err != nil {
		return nil, &ParseError{File: file, Err: err}
	}

	out := []Dependency{}
	for _, s := range sections {
		entries, err := scan.Entries(top[s.Key])
		if err != nil {
			return nil, &ParseError{File: file, Err: err}
		}
		for _, e := range entries {
			if e.Key == "" || (s.Skip != nil && s.Skip(e.Key)) {
				continue
			}
			out = append(out, Dep(e.Key, e.Value, s.Type))
		}
	}
	return out, nil
}

// JSONMeta reads string-valued "version" and "license" fields from the top
// level of a JSON manifest. When licenseList is set, a license given as an
// array of strings yields its first element.
func JSONMeta(content string, licenseList bool) (ProjectMeta, error) {
	var top struct {
		Version any `json:"version"`
		License any `json:"license"`
	}
	raw, err := jsonValue(content)
	if err != nil {
		return ProjectMeta{}, err
	}
	meta := ProjectMeta{}
	if !isObject(raw) {
		return meta, nil
	}
	if err := json.Unmarshal(raw, &top); err != nil {
		return ProjectMeta{}, err
	}
	if v, ok := top.Version.(string); ok {
		meta.Version = &v
	}
	switch l := top.License.(type) {
	case string:
		meta.License = &l
	case []any:
		if licenseList && len(l) > 0 {
			if s, ok := l[0].(string); ok {
				meta.License = &s
			}
		}
	}
	return meta, nil
}

func jsonValue(content string) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func isObject(raw json.RawMessage) bool {
	return bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{"))
}

// jsonObject returns the members of a top-level JSON object, or nil when
// the value is valid JSON of another kind.
func jsonObject(content string) (map[string]json.RawMessage, error) {
	raw, err := jsonValue(content)
	if err != nil || !isObject(raw) {
		return nil, err
	}
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, err
	}
	return top, nil
}
