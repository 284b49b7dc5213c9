package normalisers

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/personarank/internal/core/domain"
	"github.com/custodia-labs/personarank/internal/core/ports/driven"
	"github.com/custodia-labs/personarank/internal/normalisers/markdown"
	"github.com/custodia-labs/personarank/internal/normalisers/pdf"
	"github.com/custodia-labs/personarank/internal/normalisers/plaintext"
)

// Ensure Registry implements the interface.
var _ driven.ReaderRegistry = (*Registry)(nil)

// Registry dispatches documents to page readers by file extension.
type Registry struct {
	mu          sync.RWMutex
	byExtension map[string][]driven.PageReader
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byExtension: make(map[string][]driven.PageReader)}
}

// NewDefaultRegistry creates a registry with the built-in readers.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(pdf.New())
	r.Register(markdown.New())
	r.Register(plaintext.New())
	return r
}

// Register adds a reader for each of its extensions. Readers for the same
// extension are kept in descending priority order.
func (r *Registry) Register(reader driven.PageReader) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ext := range reader.SupportedExtensions() {
		ext = strings.ToLower(ext)
		readers := append(r.byExtension[ext], reader)
		sort.SliceStable(readers, func(i, j int) bool {
			return readers[i].Priority() > readers[j].Priority()
		})
		r.byExtension[ext] = readers
	}
}

// Open opens path with the highest priority reader for its extension.
func (r *Registry) Open(ctx context.Context, path string) (driven.PagedDocument, error) {
	reader, err := r.readerFor(path)
	if err != nil {
		return nil, err
	}
	return reader.Open(ctx, path)
}

// SupportedExtensions returns all registered extensions, sorted.
func (r *Registry) SupportedExtensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exts := make([]string, 0, len(r.byExtension))
	for ext := range r.byExtension {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

func (r *Registry) readerFor(path string) (driven.PageReader, error) {
	ext := strings.ToLower(filepath.Ext(path))

	r.mu.RLock()
	defer r.mu.RUnlock()

	readers := r.byExtension[ext]
	if len(readers) == 0 {
		return nil, fmt.Errorf("%w: no reader for %q", domain.ErrUnsupportedType, filepath.Base(path))
	}
	return readers[0], nil
}
