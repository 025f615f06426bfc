package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/wecco-dev/wecco/internal/errors"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, DefaultLogLevel)
	}
	if cfg.Indent != DefaultIndent {
		t.Errorf("Indent = %q, want %q", cfg.Indent, DefaultIndent)
	}
	if cfg.Metrics.Namespace != DefaultNamespace {
		t.Errorf("Metrics.Namespace = %q, want %q", cfg.Metrics.Namespace, DefaultNamespace)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadJSON(t *testing.T) {
	tmpDir := t.TempDir()

	if _, err := Load(tmpDir); errors.Code(err) != "W010" {
		t.Errorf("Load(empty dir) code = %q, want W010", errors.Code(err))
	}

	configJSON := `{
  "name": "todo",
  "logLevel": "debug",
  "pretty": true,
  "stripMarkers": true,
  "metrics": {"enabled": true},
  "watch": {"debounce": "250ms"}
}
`
	if err := os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte(configJSON), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Name != "todo" {
		t.Errorf("Name = %q, want todo", cfg.Name)
	}
	if !cfg.Pretty || !cfg.StripMarkers || !cfg.Metrics.Enabled {
		t.Errorf("flags not loaded: %+v", cfg)
	}
	if cfg.Metrics.Namespace != DefaultNamespace {
		t.Errorf("Metrics.Namespace = %q, want default", cfg.Metrics.Namespace)
	}
	if level, _ := cfg.SlogLevel(); level != slog.LevelDebug {
		t.Errorf("SlogLevel() = %v, want DEBUG", level)
	}
	if d, _ := cfg.DebounceDuration(); d != 250*time.Millisecond {
		t.Errorf("DebounceDuration() = %v, want 250ms", d)
	}
	if cfg.Dir() != tmpDir {
		t.Errorf("Dir() = %q, want %q", cfg.Dir(), tmpDir)
	}
}

func TestLoadYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configYAML := `name: todo
logLevel: warn
indent: "\t"
metrics:
  enabled: true
  namespace: todo_app
`
	if err := os.WriteFile(filepath.Join(tmpDir, "wecco.yaml"), []byte(configYAML), 0644); err != nil {
		t.Fatal(err)
	}
	if !Exists(tmpDir) {
		t.Fatal("Exists should find wecco.yaml")
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Indent != "\t" || cfg.Metrics.Namespace != "todo_app" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	rc := cfg.RendererConfig()
	if rc.Indent != "\t" {
		t.Errorf("RendererConfig().Indent = %q", rc.Indent)
	}
}

func TestLoadPrefersJSON(t *testing.T) {
	tmpDir := t.TempDir()
	os.WriteFile(filepath.Join(tmpDir, "wecco.yaml"), []byte("name: yaml\n"), 0644)
	os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte(`{"name":"json"}`), 0644)

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Name != "json" {
		t.Errorf("Name = %q, want json", cfg.Name)
	}
}

func TestLoadInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, ConfigFileName)
	os.WriteFile(path, []byte("{invalid"), 0644)

	_, err := LoadFile(path)
	if errors.Code(err) != "W010" {
		t.Fatalf("LoadFile(invalid) = %v, want W010", err)
	}
	if !strings.Contains(err.Error(), "wecco.json") {
		t.Errorf("error should name the file: %v", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	for _, name := range []string{ConfigFileName, "wecco.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			cfg := New()
			cfg.Name = "saved"
			cfg.Pretty = true
			if err := cfg.SaveTo(path); err != nil {
				t.Fatalf("SaveTo error: %v", err)
			}
			if cfg.Path() != path {
				t.Errorf("Path() = %q, want %q", cfg.Path(), path)
			}

			loaded, err := LoadFile(path)
			if err != nil {
				t.Fatalf("LoadFile error: %v", err)
			}
			if loaded.Name != "saved" || !loaded.Pretty {
				t.Errorf("loaded = %+v", loaded)
			}
		})
	}
}

func TestSaveWithoutPath(t *testing.T) {
	if err := New().Save(); err == nil {
		t.Error("Save without a path should fail")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"upper case level", func(c *Config) { c.LogLevel = "ERROR" }, true},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, false},
		{"bad indent", func(c *Config) { c.Indent = "--" }, false},
		{"bad namespace", func(c *Config) { c.Metrics.Namespace = "9lives" }, false},
		{"dash namespace", func(c *Config) { c.Metrics.Namespace = "my-app" }, false},
		{"bad debounce", func(c *Config) { c.Watch.Debounce = "soon" }, false},
		{"negative debounce", func(c *Config) { c.Watch.Debounce = "-1s" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err == nil) != tt.ok {
				t.Errorf("Validate() = %v, want ok=%v", err, tt.ok)
			}
			if err != nil && errors.Code(err) != "W010" {
				t.Errorf("code = %q, want W010", errors.Code(err))
			}
		})
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	os.WriteFile(filepath.Join(root, ConfigFileName), []byte(`{}`), 0644)
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	got, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatalf("FindProjectRoot error: %v", err)
	}
	want, _ := filepath.Abs(root)
	if got != want {
		t.Errorf("FindProjectRoot() = %q, want %q", got, want)
	}
}
