// Copyright (c) 2024 Michael D Henderson. All rights reserved.

// Package colorcache memoizes color-token parsing. A long command
// stream tends to repeat the same handful of color literals (a
// palette name, a couple of hex codes) across thousands of commands;
// caching avoids re-running the hex/palette parse on every hit.
package colorcache

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/animstream/parser/internal/palette"
)

const defaultSize = 256

// Cache wraps an LRU of token -> parsed Color.
type Cache struct {
	entries *lru.Cache[string, palette.Color]
}

// New returns a Cache bounded to defaultSize distinct color tokens.
func New() *Cache {
	entries, err := lru.New[string, palette.Color](defaultSize)
	if err != nil {
		// only returns an error for a non-positive size, which defaultSize never is.
		panic(err)
	}
	return &Cache{entries: entries}
}

// Parse returns the Color for tok, parsing and caching on a miss.
func (c *Cache) Parse(tok string) (palette.Color, error) {
	if v, ok := c.entries.Get(tok); ok {
		return v, nil
	}
	v, err := palette.Parse(tok)
	if err != nil {
		return palette.Color{}, err
	}
	c.entries.Add(tok, v)
	return v, nil
}

// def is the process-wide cache used by the element builders, which
// have no natural place to thread a per-run cache instance through
// every set() call.
var def = New()

// Parse parses tok against the process-wide cache.
func Parse(tok string) (palette.Color, error) {
	return def.Parse(tok)
}
