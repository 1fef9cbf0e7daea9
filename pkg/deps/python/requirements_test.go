package python

import (
	"reflect"
	"testing"

	"github.com/matzehuels/repolens/pkg/deps"
)

func TestRequirements_Type(t *testing.T) {
	if got := (Requirements{}).Type(); got != "requirements.txt" {
		t.Errorf("Type() = %q, want requirements.txt", got)
	}
}

func TestRequirements_Extract(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []deps.Dependency
	}{
		{
			name:    "pinned and ranged",
			content: "requests==2.31.0\n# comment\nnumpy>=1.0\n",
			want: []deps.Dependency{
				{Name: "requests", Version: "2.31.0", Type: deps.Production},
				{Name: "numpy", Version: "1.0", Type: deps.Production},
			},
		},
		{
			name:    "bare name has no version",
			content: "httpx\n",
			want:    []deps.Dependency{{Name: "httpx", Type: deps.Production}},
		},
		{
			name:    "compatible release and trailing comment",
			content: "django~=4.2  # LTS\r\nflask !=2.0.0\n",
			want: []deps.Dependency{
				{Name: "django", Version: "4.2", Type: deps.Production},
				{Name: "flask", Version: "2.0.0", Type: deps.Production},
			},
		},
		{
			name:    "direct reference",
			content: "requests @ https://github.com/psf/requests/archive/main.zip\nflask==2.0 # pinned\n",
			want: []deps.Dependency{
				{Name: "requests", Version: "@ https://github.com/psf/requests/archive/main.zip", Type: deps.Production},
				{Name: "flask", Version: "2.0", Type: deps.Production},
			},
		},
		{
			name:    "direct reference keeps fragment",
			content: "pkg @ git+https://github.com/a/pkg.git#egg=pkg  # vendored\n",
			want: []deps.Dependency{
				{Name: "pkg", Version: "@ git+https://github.com/a/pkg.git#egg=pkg", Type: deps.Production},
			},
		},
		{
			name:    "bare URLs skipped",
			content: "https://example.com/pkg-1.0.tar.gz\ngit+ssh://git@github.com/a/b.git\n",
			want:    []deps.Dependency{},
		},
		{
			name:    "options and URLs skipped",
			content: "-r base.txt\n--index-url https://pypi.org/simple\n-e ./local\ngit+https://github.com/a/b.git\n\n",
			want:    []deps.Dependency{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Requirements{}.Extract(tt.content)
			if err != nil {
				t.Fatalf("Extract failed: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Extract =\n%v\nwant\n%v", got, tt.want)
			}
		})
	}
}
