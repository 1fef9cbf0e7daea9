package python

import (
	"reflect"
	"testing"

	"github.com/matzehuels/repolens/pkg/deps"
)

func TestPipfile_Extract(t *testing.T) {
	content := `[[source]]
url = "https://pypi.org/simple"
verify_ssl = true

[packages]
requests = "*"
django = ">=4.0"
zope.interface = "==5.0"
celery = {version = "^5.3", extras = ["redis"]}

[dev-packages]
pytest = "~=7.0"

[requires]
python_version = "3.11"
`
	got, err := Pipfile{}.Extract(content)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	want := []deps.Dependency{
		{Name: "requests", Type: deps.Production},
		{Name: "django", Version: ">=4.0", Type: deps.Production},
		{Name: "zope.interface", Version: "==5.0", Type: deps.Production},
		{Name: "celery", Version: "^5.3", Type: deps.Production},
		{Name: "pytest", Version: "~=7.0", Type: deps.Dev},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract =\n%v\nwant\n%v", got, want)
	}
}

func TestPipfile_OutsideSections(t *testing.T) {
	got, _ := Pipfile{}.Extract("requests = \"*\"\n[scripts]\nserve = \"python app.py\"\n")
	if len(got) != 0 {
		t.Errorf("Extract = %v, want empty", got)
	}
}

func TestPipfile_InlineTables(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []deps.Dependency
	}{
		{
			name:    "path without version",
			content: "[packages]\nmylib = {path = \"./mylib\", editable = true}\n",
			want:    []deps.Dependency{},
		},
		{
			name:    "git without version",
			content: "[dev-packages]\ntool = {git = \"https://github.com/a/tool.git\", ref = \"main\"}\nblack = \"*\"\n",
			want:    []deps.Dependency{{Name: "black", Type: deps.Dev}},
		},
		{
			name:    "version key",
			content: "[packages]\nhttpx = {version = \"==0.27\", extras = [\"http2\"]}\n",
			want:    []deps.Dependency{{Name: "httpx", Version: "==0.27", Type: deps.Production}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Pipfile{}.Extract(tt.content)
			if err != nil {
				t.Fatalf("Extract failed: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Extract = %v, want %v", got, tt.want)
			}
		})
	}
}
