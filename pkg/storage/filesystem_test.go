package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWorkspace_ResolvePath(t *testing.T) {
	w := NewWorkspace("/tmp/project")

	tests := []struct {
		name    string
		file    string
		want    string
		wantErr bool
	}{
		{"direct child", "ai.yaml", "/tmp/project/.plancraft/ai.yaml", false},
		{"empty", "", "", true},
		{"traversal", "../secret", "", true},
		{"nested", "sub/ai.yaml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := w.ResolvePath(tt.file)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != filepath.Clean(tt.want) {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestWorkspace_Initialize(t *testing.T) {
	w := NewWorkspace(t.TempDir())
	if w.IsInitialized() {
		t.Fatal("fresh workspace reported initialized")
	}
	if err := w.Initialize(); err != nil {
		t.Fatal(err)
	}
	if !w.IsInitialized() {
		t.Fatal("workspace not initialized after Initialize")
	}

	db, err := w.DatabasePath()
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(db) != DatabaseFile {
		t.Errorf("unexpected database path %q", db)
	}
}

type sample struct {
	Provider string `yaml:"provider"`
	Retries  int    `yaml:"retries"`
}

func TestWorkspace_YAMLRoundTrip(t *testing.T) {
	w := NewWorkspace(t.TempDir())

	if err := w.SaveYAML("sample.yaml", sample{Provider: "gemini", Retries: 1}); err != nil {
		t.Fatal(err)
	}

	var got sample
	found, err := w.LoadYAML("sample.yaml", &got)
	if err != nil {
		t.Fatal(err)
	}
	if !found {
		t.Fatal("expected file to be found")
	}
	if got.Provider != "gemini" || got.Retries != 1 {
		t.Errorf("unexpected value %+v", got)
	}

	path, _ := w.ResolvePath("sample.yaml")
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected 0600 permissions, got %v", info.Mode().Perm())
	}
}

func TestWorkspace_LoadYAML_Missing(t *testing.T) {
	w := NewWorkspace(t.TempDir())

	var got sample
	found, err := w.LoadYAML("absent.yaml", &got)
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Error("expected missing file to report not found")
	}
}

func TestWorkspace_LoadYAML_Invalid(t *testing.T) {
	w := NewWorkspace(t.TempDir())
	if err := w.Initialize(); err != nil {
		t.Fatal(err)
	}
	path, _ := w.ResolvePath("broken.yaml")
	if err := os.WriteFile(path, []byte("provider: [unterminated"), 0600); err != nil {
		t.Fatal(err)
	}

	var got sample
	if _, err := w.LoadYAML("broken.yaml", &got); err == nil {
		t.Error("expected unmarshal error")
	}
}
