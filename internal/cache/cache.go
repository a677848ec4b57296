// Package cache tracks which source files already passed a syntax check,
// so repeated checks can skip unchanged inputs.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Cache maps source paths to the content hash they had when they last
// parsed cleanly.
type Cache struct {
	Hashes map[string]string `json:"hashes"`
	path   string
}

// New creates an empty cache backed by the given path
func New(cachePath string) *Cache {
	return &Cache{
		Hashes: make(map[string]string),
		path:   cachePath,
	}
}

// Load loads the cache from disk. A missing file yields an empty cache.
func Load(cachePath string) (*Cache, error) {
	c := New(cachePath)

	data, err := os.ReadFile(cachePath)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, fmt.Errorf("failed to read cache: %w", err)
	}

	if err := json.Unmarshal(data, &c.Hashes); err != nil {
		return nil, fmt.Errorf("failed to parse cache: %w", err)
	}

	return c, nil
}

// Save saves the cache to disk
func (c *Cache) Save() error {
	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	data, err := json.MarshalIndent(c.Hashes, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache: %w", err)
	}

	if err := os.WriteFile(c.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}

	return nil
}

// Changed reports whether a file's content differs from the hash recorded
// at its last clean check. Unknown files count as changed. The recorded
// hash is not touched; call MarkClean after a successful check.
func (c *Cache) Changed(srcPath string) (bool, error) {
	current, err := hashFile(srcPath)
	if err != nil {
		return true, err
	}

	cached, exists := c.Hashes[srcPath]
	return !exists || cached != current, nil
}

// MarkClean records a file's current content hash after it parsed cleanly
func (c *Cache) MarkClean(srcPath string) error {
	current, err := hashFile(srcPath)
	if err != nil {
		return err
	}
	c.Hashes[srcPath] = current
	return nil
}

// Remove removes a file from the cache
func (c *Cache) Remove(srcPath string) {
	delete(c.Hashes, srcPath)
}

// Clear clears all entries from the cache
func (c *Cache) Clear() {
	c.Hashes = make(map[string]string)
}

func hashFile(srcPath string) (string, error) {
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
