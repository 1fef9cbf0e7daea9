package ruby

import (
	"reflect"
	"testing"

	"github.com/matzehuels/repolens/pkg/deps"
)

func TestGemfile_Extract(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []deps.Dependency
	}{
		{
			name:    "test group then top level",
			content: "group :test do\n  gem 'rspec'\nend\ngem 'rails', '7.0'\n",
			want: []deps.Dependency{
				{Name: "rspec", Type: deps.Dev},
				{Name: "rails", Version: "7.0", Type: deps.Production},
			},
		},
		{
			name: "group classification",
			content: `source "https://rubygems.org"
gem "pg", "~> 1.5"
group :development, :test do
  gem "debug", platforms: %i[mri windows]
end
group :production do
  gem "lograge"
end
# gem "commented"
gem "puma", ">= 5.0", "< 7"
`,
			want: []deps.Dependency{
				{Name: "pg", Version: "~> 1.5", Type: deps.Production},
				{Name: "debug", Type: deps.Dev},
				{Name: "lograge", Type: deps.Production},
				{Name: "puma", Version: ">= 5.0", Type: deps.Production},
			},
		},
		{
			name:    "any end closes the group",
			content: "group :development do\n  platforms :jruby do\n  end\n  gem 'pry'\nend\n",
			want:    []deps.Dependency{{Name: "pry", Type: deps.Production}},
		},
		{
			name:    "empty",
			content: "",
			want:    []deps.Dependency{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Gemfile{}.Extract(tt.content)
			if err != nil {
				t.Fatalf("Extract failed: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Extract =\n%v\nwant\n%v", got, tt.want)
			}
		})
	}
}
