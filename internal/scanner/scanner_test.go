package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/orphanlabs/orphan/pkg/config"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create directory: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to create file %s: %v", name, err)
		}
	}
}

func TestNewScanner(t *testing.T) {
	s := NewScanner(nil)
	if s == nil {
		t.Fatal("NewScanner(nil) returned nil")
	}
	if s.config == nil {
		t.Error("scanner.config should not be nil when passing nil")
	}

	cfg := config.DefaultConfig()
	s = NewScanner(cfg)
	if s.config != cfg {
		t.Error("scanner.config should be the provided config")
	}
}

func TestScanDir(t *testing.T) {
	tmpDir := t.TempDir()

	writeTree(t, tmpDir, map[string]string{
		"main.py":              "import os\n",
		"lib/app/utils.dart":   "void main() {}\n",
		"android/Main.java":    "class Main {}\n",
		"android/Build.kt":     "fun main() {}\n",
		"res/layout.xml":       "<xml/>\n",
		"README.md":            "# nope\n",
		"scripts/build.sh":     "echo hi\n",
		"__pycache__/cached.py": "x = 1\n",
	})

	s := NewScanner(nil)
	result, err := s.ScanDir(tmpDir)
	if err != nil {
		t.Fatalf("ScanDir() error: %v", err)
	}

	found := make(map[string]bool)
	for _, f := range result.Files {
		if !filepath.IsAbs(f) {
			t.Errorf("collected path %q is not absolute", f)
		}
		rel, _ := filepath.Rel(tmpDir, f)
		found[filepath.ToSlash(rel)] = true
	}

	want := []string{
		"main.py",
		"lib/app/utils.dart",
		"android/Main.java",
		"android/Build.kt",
		"res/layout.xml",
	}
	for _, name := range want {
		if !found[name] {
			t.Errorf("File %s was not collected", name)
		}
	}
	if found["README.md"] || found["scripts/build.sh"] {
		t.Error("non-allow-listed files should not be collected")
	}
}

func TestScanDirExcludesDirectories(t *testing.T) {
	tmpDir := t.TempDir()

	writeTree(t, tmpDir, map[string]string{
		"main.py":                "import os\n",
		"build/generated.py":     "x = 1\n",
		"__pycache__/cached.py":  "x = 1\n",
		".dart_tool/whatever.py": "x = 1\n",
	})

	s := NewScanner(nil)
	result, err := s.ScanDir(tmpDir)
	if err != nil {
		t.Fatalf("ScanDir() error: %v", err)
	}

	if len(result.Files) != 1 {
		t.Errorf("ScanDir() found %d files, want 1: %v", len(result.Files), result.Files)
	}
}

func TestScanDirExcludePatterns(t *testing.T) {
	tmpDir := t.TempDir()

	writeTree(t, tmpDir, map[string]string{
		"main.py":      "import os\n",
		"main_test.py": "import main\n",
	})

	cfg := config.DefaultConfig()
	cfg.Exclude.Patterns = []string{"*_test.py"}

	s := NewScanner(cfg)
	result, err := s.ScanDir(tmpDir)
	if err != nil {
		t.Fatalf("ScanDir() error: %v", err)
	}

	if len(result.Files) != 1 {
		t.Errorf("ScanDir() found %d files, want 1: %v", len(result.Files), result.Files)
	}
}

func TestScanDirMissingRoot(t *testing.T) {
	s := NewScanner(nil)
	if _, err := s.ScanDir(filepath.Join(t.TempDir(), "does-not-exist")); err == nil {
		t.Error("ScanDir() should fail for a missing root")
	}
}
