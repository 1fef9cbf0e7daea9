package java

import (
	"encoding/xml"
	"strings"

	"github.com/matzehuels/repolens/pkg/deps"
)

// POM extracts <dependency> elements from pom.xml.
type POM struct{}

func (POM) Type() string { return "pom.xml" }

type pomDependency struct {
	fields map[string]*strings.Builder
}

func (d *pomDependency) get(name string) string {
	if b, ok := d.fields[name]; ok {
		return strings.TrimSpace(b.String())
	}
	return ""
}

func (d *pomDependency) record() (deps.Dependency, bool) {
	group, artifact := d.get("groupId"), d.get("artifactId")
	if group == "" || artifact == "" {
		return deps.Dependency{}, false
	}
	typ := deps.Production
	switch d.get("scope") {
	case "test", "provided":
		typ = deps.Dev
	case "optional":
		typ = deps.Optional
	}
	if typ == deps.Production && d.get("optional") == "true" {
		typ = deps.Optional
	}
	return deps.Dep(group+":"+artifact, d.get("version"), typ), true
}

func (POM) Extract(content string) ([]deps.Dependency, error) {
	out := []deps.Dependency{}
	dec := xml.NewDecoder(strings.NewReader(content))
	dec.Strict = false
	dec.Entity = xml.HTMLEntity

	var (
		depth    int
		cur      *pomDependency
		curDepth int
		field    *strings.Builder
	)
	for {
		tok, err := dec.Token()
		if err != nil {
			return out, nil
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			switch {
			case t.Name.Local == "dependency" && cur == nil:
				cur = &pomDependency{fields: make(map[string]*strings.Builder)}
				curDepth = depth
			case cur != nil && depth == curDepth+1:
				field = &strings.Builder{}
				cur.fields[t.Name.Local] = field
			}
		case xml.CharData:
			if field != nil {
				field.Write(t)
			}
		case xml.EndElement:
			switch {
			case cur != nil && depth == curDepth:
				if d, ok := cur.record(); ok {
					out = append(out, d)
				}
				cur = nil
			case cur != nil && depth == curDepth+1:
				field = nil
			}
			depth--
		}
	}
}
