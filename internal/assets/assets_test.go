package assets

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestResolvePriority(t *testing.T) {
	base := t.TempDir()
	low := filepath.Join(base, "low")
	high := filepath.Join(base, "high")
	writeFile(t, filepath.Join(low, "models", "cube.gltf"), "low")
	writeFile(t, filepath.Join(high, "models", "cube.gltf"), "high")
	writeFile(t, filepath.Join(low, "only-low.png"), "x")

	m := NewManager(low, high)

	got, err := m.Resolve("models/cube.gltf")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != filepath.Join(high, "models", "cube.gltf") {
		t.Errorf("expected last added dir to win, got %s", got)
	}

	got, err = m.Resolve("only-low.png")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != filepath.Join(low, "only-low.png") {
		t.Errorf("expected fallback to lower priority dir, got %s", got)
	}
}

func TestResolveMissing(t *testing.T) {
	m := NewManager(t.TempDir())

	tests := []string{"", "nope.png", "/definitely/not/here.png"}
	for _, path := range tests {
		if _, err := m.Resolve(path); !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Resolve(%q): expected fs.ErrNotExist, got %v", path, err)
		}
	}
}

func TestResolveAbsolute(t *testing.T) {
	path := filepath.Join(t.TempDir(), "abs.txt")
	writeFile(t, path, "abs")

	m := NewManager()
	got, err := m.Resolve(path)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != path {
		t.Errorf("expected %s, got %s", path, got)
	}
}

func TestLoadCaches(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "hello")

	m := NewManager(dir)

	data, err := m.Load("a.txt")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("expected hello, got %q", data)
	}

	// Served from cache even after the file changes on disk.
	writeFile(t, filepath.Join(dir, "a.txt"), "changed")
	data, err = m.Load("a.txt")
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("expected cached content, got %q", data)
	}

	hits, misses := m.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("expected 1 hit and 1 miss, got %d/%d", hits, misses)
	}
}

func TestCacheClear(t *testing.T) {
	c := NewCache()
	c.Set("k", []byte("v"))
	if _, ok := c.Get("k"); !ok {
		t.Fatal("expected cached value")
	}

	c.Clear()
	if _, ok := c.Get("k"); ok {
		t.Error("expected empty cache after Clear")
	}
	hits, misses := c.Stats()
	if hits != 0 || misses != 1 {
		t.Errorf("expected stats reset then one miss, got %d/%d", hits, misses)
	}
}
