package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/svglite/vglite"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, "svglite.toml", `
format = "rgba"
clear = 0x00000000
fill_rule = "evenodd"
font_dirs = ["/a", "/b"]
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	def := DefaultConfig()
	if cfg.Format != "rgba" {
		t.Errorf("Format = %q, want rgba", cfg.Format)
	}
	if cfg.Clear != 0 {
		t.Errorf("Clear = %#x, want 0", cfg.Clear)
	}
	if cfg.FillRule != "evenodd" {
		t.Errorf("FillRule = %q, want evenodd", cfg.FillRule)
	}
	if len(cfg.FontDirs) != 2 {
		t.Errorf("FontDirs = %v, want 2 entries", cfg.FontDirs)
	}
	if cfg.Backend != def.Backend || cfg.Quality != def.Quality {
		t.Errorf("unset keys changed: backend %q quality %q", cfg.Backend, cfg.Quality)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown key", `colour = "red"`, "unknown key"},
		{"syntax", `format = `, "parse config"},
		{"wrong type", `clear = "white"`, "parse config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeFile(t, "c.toml", tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("LoadConfig() error = %v, want containing %q", err, tt.want)
			}
		})
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("LoadConfig(missing) error = nil")
	}
}

func TestConfigFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    vglite.Format
		wantErr bool
	}{
		{"bgra", vglite.FormatBGRA8888, false},
		{"BGRA8888", vglite.FormatBGRA8888, false},
		{"rgba", vglite.FormatRGBA8888, false},
		{"rgb565", 0, true},
	}
	for _, tt := range tests {
		got, err := Config{Format: tt.in}.format()
		if (err != nil) != tt.wantErr {
			t.Errorf("format(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("format(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestConfigOptions(t *testing.T) {
	opts, err := DefaultConfig().options()
	if err != nil {
		t.Fatalf("options() error = %v", err)
	}
	if len(opts) != 4 {
		t.Errorf("len(options()) = %d, want 4", len(opts))
	}

	bad := []func(*Config){
		func(c *Config) { c.FillRule = "winding" },
		func(c *Config) { c.Quality = "best" },
		func(c *Config) { c.ImagePolicy = "skip" },
	}
	for i, mutate := range bad {
		cfg := DefaultConfig()
		mutate(&cfg)
		if _, err := cfg.options(); err == nil {
			t.Errorf("case %d: options() error = nil", i)
		}
	}
}
