// Package assets resolves asset paths against search directories and caches file contents.
package assets

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Manager handles asset lookup across a list of directories.
type Manager struct {
	dirs  []string
	cache *Cache
	mu    sync.RWMutex
}

// NewManager creates a new asset manager searching the given directories.
func NewManager(dirs ...string) *Manager {
	m := &Manager{cache: NewCache()}
	for _, d := range dirs {
		m.AddDir(d)
	}
	return m
}

// AddDir adds a search directory.
// Directories are searched in reverse order (last added = highest priority).
func (m *Manager) AddDir(dir string) {
	m.mu.Lock()
	m.dirs = append(m.dirs, filepath.Clean(dir))
	m.mu.Unlock()
}

// Dirs returns a copy of the search directories in priority order (lowest first).
func (m *Manager) Dirs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, len(m.dirs))
	copy(out, m.dirs)
	return out
}

// Resolve returns the path of an existing file for path.
// Absolute paths and paths that exist relative to the working directory
// bypass the search list.
func (m *Manager) Resolve(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("resolving empty path: %w", fs.ErrNotExist)
	}
	if filepath.IsAbs(path) {
		if isFile(path) {
			return path, nil
		}
		return "", fmt.Errorf("file not found: %s: %w", path, fs.ErrNotExist)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.dirs) - 1; i >= 0; i-- {
		candidate := filepath.Join(m.dirs[i], path)
		if isFile(candidate) {
			return candidate, nil
		}
	}
	if isFile(path) {
		return path, nil
	}

	return "", fmt.Errorf("file not found: %s: %w", path, fs.ErrNotExist)
}

// Load loads a file through the cache.
func (m *Manager) Load(path string) ([]byte, error) {
	if data, ok := m.cache.Get(path); ok {
		return data, nil
	}

	resolved, err := m.Resolve(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", resolved, err)
	}
	m.cache.Set(path, data)
	return data, nil
}

// Stats returns cache statistics.
func (m *Manager) Stats() (hits, misses int) {
	return m.cache.Stats()
}

// Close drops the search list and cached data.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.dirs = nil
	m.cache.Clear()
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Cache is a simple in-memory cache for loaded assets.
type Cache struct {
	data map[string][]byte
	mu   sync.Mutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
