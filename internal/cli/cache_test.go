package cli

import (
	"path/filepath"
	"testing"
)

func TestCacheDir(t *testing.T) {
	tests := []struct {
		name string
		xdg  string
		home string
		want string
	}{
		{"xdg", "/tmp/xdg", "/home/u", filepath.Join("/tmp/xdg", "repolens")},
		{"home", "", "/home/u", filepath.Join("/home/u", ".cache", "repolens")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_CACHE_HOME", tt.xdg)
			t.Setenv("HOME", tt.home)

			got, err := cacheDir()
			if err != nil {
				t.Fatalf("cacheDir() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("cacheDir() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCLICacheDirOverride(t *testing.T) {
	c, _ := newTestCLI(t)
	c.Config.Cache.Dir = "/srv/cache"

	got, err := c.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if got != "/srv/cache" {
		t.Errorf("cacheDir() = %q, want /srv/cache", got)
	}
}
