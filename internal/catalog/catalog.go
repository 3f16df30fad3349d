// Package catalog holds the static category catalogs offered by the
// creation wizards. A catalog is ordered, read-only and has exactly one
// fallback entry.
package catalog

import (
	"fmt"
	"strings"
)

// Category is the display metadata for one selectable key.
type Category struct {
	Key         string
	Label       string
	Icon        string
	Color       string
	Description string
}

// Catalog is an ordered, closed set of categories.
type Catalog struct {
	name     string
	fallback string
	entries  []Category
	index    map[string]int
}

// New builds a catalog. fallback must name one of the entries and keys
// must be unique.
func New(name, fallback string, entries ...Category) (*Catalog, error) {
	c := &Catalog{
		name:     name,
		fallback: fallback,
		entries:  make([]Category, 0, len(entries)),
		index:    make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		key := NormalizeKey(e.Key)
		if key == "" {
			return nil, fmt.Errorf("catalog %s: empty key", name)
		}
		if _, dup := c.index[key]; dup {
			return nil, fmt.Errorf("catalog %s: duplicate key %q", name, key)
		}
		e.Key = key
		c.index[key] = len(c.entries)
		c.entries = append(c.entries, e)
	}
	if _, ok := c.index[fallback]; !ok {
		return nil, fmt.Errorf("catalog %s: fallback %q is not an entry", name, fallback)
	}
	return c, nil
}

// MustNew is New for package-level catalogs.
func MustNew(name, fallback string, entries ...Category) *Catalog {
	c, err := New(name, fallback, entries...)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) Name() string { return c.name }

// Get returns the category for key.
func (c *Catalog) Get(key string) (Category, bool) {
	i, ok := c.index[NormalizeKey(key)]
	if !ok {
		return Category{}, false
	}
	return c.entries[i], true
}

func (c *Catalog) Has(key string) bool {
	_, ok := c.index[NormalizeKey(key)]
	return ok
}

// Keys returns the keys in catalog order.
func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.entries))
	for i, e := range c.entries {
		keys[i] = e.Key
	}
	return keys
}

// Categories returns a copy of the entries in catalog order.
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.entries))
	copy(out, c.entries)
	return out
}

// Fallback returns the designated fallback category.
func (c *Catalog) Fallback() Category {
	return c.entries[c.index[c.fallback]]
}

// Resolve maps key onto a catalog key, substituting the fallback for
// anything unknown.
func (c *Catalog) Resolve(key string) string {
	if i, ok := c.index[NormalizeKey(key)]; ok {
		return c.entries[i].Key
	}
	return c.fallback
}

// NormalizeKey lowercases key and folds spaces and hyphens to underscores,
// so "Lean Six Sigma Green" and "lean-six-sigma-green" both match
// lean_six_sigma_green.
func NormalizeKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return '_'
		}
		return r
	}, key)
}
