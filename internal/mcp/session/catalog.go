package session

import (
	mcpschema "github.com/viant/mcp-protocol/schema"
)

// Entry maps a display key to a server tool.
type Entry struct {
	Key         string   `json:"key"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Required    []string `json:"required,omitempty"`
}

// Catalog is an ordered, read-only set of tools discovered from a server.
type Catalog struct {
	entries []Entry
	index   map[string]int
}

// NewCatalog builds a catalog keyed by prefix+name in listing order; repeated names keep the first.
func NewCatalog(prefix string, tools []mcpschema.Tool) *Catalog {
	ret := &Catalog{index: make(map[string]int, len(tools))}
	for _, tool := range tools {
		key := prefix + tool.Name
		if _, ok := ret.index[key]; ok {
			continue
		}
		entry := Entry{Key: key, Name: tool.Name, Required: tool.InputSchema.Required}
		if tool.Description != nil {
			entry.Description = *tool.Description
		}
		ret.index[key] = len(ret.entries)
		ret.entries = append(ret.entries, entry)
	}
	return ret
}

// Lookup returns the entry for a display key.
func (c *Catalog) Lookup(key string) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}
	idx, ok := c.index[key]
	if !ok {
		return Entry{}, false
	}
	return c.entries[idx], true
}

// Keys returns display keys in catalog order.
func (c *Catalog) Keys() []string {
	if c == nil {
		return nil
	}
	ret := make([]string, len(c.entries))
	for i, entry := range c.entries {
		ret[i] = entry.Key
	}
	return ret
}

// Entries returns a copy of all entries.
func (c *Catalog) Entries() []Entry {
	if c == nil {
		return nil
	}
	return append([]Entry(nil), c.entries...)
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}
