// Package catalog provides commander name resolution backed by an in-memory
// index or a SQLite store. All lookups are case- and whitespace-insensitive.
package catalog

import (
	"sort"
	"sync"

	"github.com/mtgkit/edh-companion/internal/commander"
)

// Catalog resolves commander names to descriptors.
type Catalog interface {
	// Lookup returns the commander for a name, matched case- and
	// whitespace-insensitively against canonical and display names.
	Lookup(name string) (*commander.Commander, bool)

	// Names returns all canonical commander names in sorted order.
	Names() []string
}

// MemoryCatalog is an in-memory Catalog keyed by normalized name aliases.
type MemoryCatalog struct {
	mu      sync.RWMutex
	byAlias map[string]*commander.Commander
	names   map[string]struct{}
}

// NewMemoryCatalog creates an empty in-memory catalog.
func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{
		byAlias: make(map[string]*commander.Commander),
		names:   make(map[string]struct{}),
	}
}

// Add indexes a commander under its canonical and display names. Later adds
// win on alias collisions.
func (c *MemoryCatalog) Add(cmd *commander.Commander) {
	if cmd == nil || cmd.Name == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.names[cmd.Name] = struct{}{}
	c.byAlias[commander.NormalizeName(cmd.Name)] = cmd
	if cmd.DisplayName != "" {
		c.byAlias[commander.NormalizeName(cmd.DisplayName)] = cmd
	}
}

// Lookup implements Catalog.
func (c *MemoryCatalog) Lookup(name string) (*commander.Commander, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cmd, ok := c.byAlias[commander.NormalizeName(name)]
	return cmd, ok
}

// Names implements Catalog.
func (c *MemoryCatalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.names))
	for name := range c.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of distinct commanders in the catalog.
func (c *MemoryCatalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.names)
}
