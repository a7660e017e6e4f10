package library

import "sync"

// DefinitionIndex accumulates Definitions by virtual path while a VFS
// is being built. It backs both fast GetOrCreate during manifest
// ingestion and, once ingestion finishes, the sorted-for-binary-search
// sequence the query API operates on. Its own methods are safe for
// concurrent use; the Definitions it hands out are not guarded, and
// the builder mutates them from a single goroutine in both ingestion
// modes.
type DefinitionIndex struct {
	mu     sync.Mutex
	byPath map[string]*Definition
}

// NewDefinitionIndex returns an empty index.
func NewDefinitionIndex() *DefinitionIndex {
	return &DefinitionIndex{byPath: make(map[string]*Definition)}
}

// GetOrCreate returns the Definition for virtualPath, creating an
// empty one on first reference. Virtual paths are stored verbatim: no
// normalization is applied.
func (idx *DefinitionIndex) GetOrCreate(virtualPath string) *Definition {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if d, ok := idx.byPath[virtualPath]; ok {
		return d
	}
	d := NewDefinition(virtualPath)
	idx.byPath[virtualPath] = d
	return d
}

// Get returns the Definition for virtualPath without creating one.
func (idx *DefinitionIndex) Get(virtualPath string) (*Definition, bool) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	d, ok := idx.byPath[virtualPath]
	return d, ok
}

// Len reports how many distinct virtual paths have been recorded.
func (idx *DefinitionIndex) Len() int {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return len(idx.byPath)
}

// sorted returns every held Definition ordered by virtual path,
// ready for binary-search lookup.
func (idx *DefinitionIndex) sorted() []*Definition {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	out := make([]*Definition, 0, len(idx.byPath))
	for _, d := range idx.byPath {
		out = append(out, d)
	}
	sortDefinitionsByVirtualPath(out)
	return out
}
