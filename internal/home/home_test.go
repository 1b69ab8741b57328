package home

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("with explicit path", func(t *testing.T) {
		dir, err := New("/tmp/test-docweb")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if dir.Path() != "/tmp/test-docweb" {
			t.Errorf("expected path /tmp/test-docweb, got %s", dir.Path())
		}
	})

	t.Run("with empty path uses default", func(t *testing.T) {
		dir, err := New("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		home, _ := os.UserHomeDir()
		expected := filepath.Join(home, DefaultDirName)
		if dir.Path() != expected {
			t.Errorf("expected path %s, got %s", expected, dir.Path())
		}
	})
}

func TestDir_Paths(t *testing.T) {
	dir, _ := New("/tmp/test-docweb")

	t.Run("UploadsPath", func(t *testing.T) {
		expected := "/tmp/test-docweb/uploads"
		if dir.UploadsPath() != expected {
			t.Errorf("expected %s, got %s", expected, dir.UploadsPath())
		}
	})

	t.Run("ConfigPath", func(t *testing.T) {
		expected := "/tmp/test-docweb/config.yaml"
		if dir.ConfigPath() != expected {
			t.Errorf("expected %s, got %s", expected, dir.ConfigPath())
		}
	})

	t.Run("SessionUploadDir", func(t *testing.T) {
		expected := "/tmp/test-docweb/uploads/abc-123"
		if dir.SessionUploadDir("abc-123") != expected {
			t.Errorf("expected %s, got %s", expected, dir.SessionUploadDir("abc-123"))
		}
	})
}

func TestDir_EnsureExists(t *testing.T) {
	tmpDir := t.TempDir()
	docwebDir := filepath.Join(tmpDir, "docweb-test")

	dir, err := New(docwebDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if dir.Exists() {
		t.Error("directory should not exist yet")
	}

	if err := dir.EnsureExists(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !dir.Exists() {
		t.Error("directory should exist after EnsureExists")
	}
	for _, p := range []string{dir.UploadsPath(), dir.ExportsPath()} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("expected %s to exist: %v", p, err)
		}
	}

	// Idempotent
	if err := dir.EnsureExists(); err != nil {
		t.Errorf("EnsureExists should be idempotent: %v", err)
	}
}

func TestDir_ConfigExists(t *testing.T) {
	tmpDir := t.TempDir()
	dir, _ := New(tmpDir)

	if dir.ConfigExists() {
		t.Error("config should not exist yet")
	}

	if err := os.WriteFile(dir.ConfigPath(), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !dir.ConfigExists() {
		t.Error("config should exist after writing")
	}
}
