package rust

import (
	"reflect"
	"testing"

	"github.com/matzehuels/repolens/pkg/deps"
)

const manifest = `[package]
name = "lens"
version = "0.4.1"
license = "MIT OR Apache-2.0"

[dependencies]
serde = { version = "1.0", features = ["derive"] }
tokio = "1.37"
core-lib = { path = "../core" }
# anyhow = "1"

[dev-dependencies]
criterion = "0.5"

[build-dependencies]
cc = "1.0"

[target.'cfg(windows)'.dependencies]
winapi = "0.3"

[target.x86_64-unknown-linux-gnu.dev-dependencies]
pprof = "0.13"

[profile.release]
lto = "fat"
`

func TestCargo_Extract(t *testing.T) {
	got, err := Cargo{}.Extract(manifest)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	want := []deps.Dependency{
		{Name: "serde", Version: "1.0", Type: deps.Production},
		{Name: "tokio", Version: "1.37", Type: deps.Production},
		{Name: "criterion", Version: "0.5", Type: deps.Dev},
		{Name: "cc", Version: "1.0", Type: deps.Dev},
		{Name: "winapi", Version: "0.3", Type: deps.Production},
		{Name: "pprof", Version: "0.13", Type: deps.Dev},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract =\n%v\nwant\n%v", got, want)
	}
}

func TestCargo_InlineTableWithoutVersion(t *testing.T) {
	content := "[dependencies]\nlocal = { path = \"../local\" }\nserde = \"1\"\nrepo = { git = \"https://github.com/a/repo\" }\n"
	got, err := Cargo{}.Extract(content)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	want := []deps.Dependency{{Name: "serde", Version: "1", Type: deps.Production}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract = %v, want %v", got, want)
	}
}

func TestCargo_SectionScoping(t *testing.T) {
	content := "serde = \"1\"\n[package]\nname = \"x\"\n[features]\ndefault = \"std\"\n"
	got, _ := Cargo{}.Extract(content)
	if len(got) != 0 {
		t.Errorf("Extract = %v, want empty", got)
	}
}

func TestCargo_ExtractMeta(t *testing.T) {
	meta, err := Cargo{}.ExtractMeta(manifest)
	if err != nil {
		t.Fatalf("ExtractMeta failed: %v", err)
	}
	if meta.Version == nil || *meta.Version != "0.4.1" {
		t.Errorf("Version = %v, want 0.4.1", meta.Version)
	}
	if meta.License == nil || *meta.License != "MIT OR Apache-2.0" {
		t.Errorf("License = %v, want MIT OR Apache-2.0", meta.License)
	}
}

func TestCargo_ExtractMetaFallback(t *testing.T) {
	content := "version = \"9\"\n[package]\nname = \"x\"\nversion = \"0.1.0\"\n[dependencies\n"
	meta, err := Cargo{}.ExtractMeta(content)
	if err != nil {
		t.Fatalf("ExtractMeta failed: %v", err)
	}
	if meta.Version == nil || *meta.Version != "0.1.0" {
		t.Errorf("Version = %v, want 0.1.0", meta.Version)
	}
	if meta.License != nil {
		t.Errorf("License = %v, want nil", *meta.License)
	}
}

func TestCargo_ExtractMetaWorkspace(t *testing.T) {
	meta, err := Cargo{}.ExtractMeta("[package]\nname = \"x\"\nversion.workspace = true\n")
	if err != nil {
		t.Fatalf("ExtractMeta failed: %v", err)
	}
	if !meta.Empty() {
		t.Errorf("meta = %+v, want empty", meta)
	}
}
