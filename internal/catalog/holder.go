package catalog

import (
	"sync"
)

// Holder serves the active catalog and lets a reload swap it atomically.
type Holder struct {
	mu  sync.RWMutex
	cur *Catalog
}

func NewHolder(c *Catalog) *Holder {
	return &Holder{cur: c}
}

func (h *Holder) Get() *Catalog {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.cur
}

// Reload parses path and swaps it in. On error the current catalog is kept.
func (h *Holder) Reload(path string) error {
	c, err := Load(path)
	if err != nil {
		return err
	}
	h.mu.Lock()
	h.cur = c
	h.mu.Unlock()
	return nil
}
