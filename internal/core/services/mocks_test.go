package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/personarank/internal/core/domain"
	"github.com/custodia-labs/personarank/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockEmbedder implements driven.EmbeddingService with a lookup table.
// Texts missing from the table fail unless fallback is set.
type mockEmbedder struct {
	mu       sync.Mutex
	vectors  map[string][]float32
	fallback []float32
	embedErr map[string]error
	batchErr error
	batchLen int // When non-zero, truncate batch output to this length.
	dims     int
	embeds   int
	batches  int
}

func newMockEmbedder(vectors map[string][]float32) *mockEmbedder {
	return &mockEmbedder{vectors: vectors, embedErr: map[string]error{}, dims: 2}
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.embeds++
	return m.lookup(text)
}

func (m *mockEmbedder) lookup(text string) ([]float32, error) {
	if err, ok := m.embedErr[text]; ok {
		return nil, err
	}
	if v, ok := m.vectors[text]; ok {
		return v, nil
	}
	if m.fallback != nil {
		return m.fallback, nil
	}
	return nil, fmt.Errorf("no vector for %q", text)
}

func (m *mockEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.batches++
	if m.batchErr != nil {
		return nil, m.batchErr
	}
	out := make([][]float32, 0, len(texts))
	for _, t := range texts {
		v, err := m.lookup(t)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if m.batchLen > 0 && m.batchLen < len(out) {
		out = out[:m.batchLen]
	}
	return out, nil
}

func (m *mockEmbedder) Dimensions() int              { return m.dims }
func (m *mockEmbedder) ModelName() string            { return "mock-model" }
func (m *mockEmbedder) Ping(_ context.Context) error { return nil }
func (m *mockEmbedder) Close() error                 { return nil }

// unitVector returns a 2-d vector whose cosine with [1, 0] is score.
func unitVector(score float64) []float32 {
	return []float32{float32(score), float32(math.Sqrt(1 - score*score))}
}

// queryVector is the vector every scenario uses for the query.
var queryVector = []float32{1, 0}

// sentence returns a distinct rankable text of more than ten tokens.
func sentence(tag string) string {
	return tag + " " + strings.Repeat("lorem ", 11)
}

// mockDocument implements driven.PagedDocument.
type mockDocument struct {
	pages    [][]string
	pageErrs map[int]error
	closed   bool
}

func (d *mockDocument) NumPages() int { return len(d.pages) }

func (d *mockDocument) Blocks(page int) ([]string, error) {
	if err, ok := d.pageErrs[page]; ok {
		return nil, err
	}
	if page < 1 || page > len(d.pages) {
		return nil, errors.New("page out of range")
	}
	return d.pages[page-1], nil
}

func (d *mockDocument) Close() error {
	d.closed = true
	return nil
}

// mockRegistry implements driven.ReaderRegistry over in-memory documents
// keyed by base file name.
type mockRegistry struct {
	mu     sync.Mutex
	docs   map[string]*mockDocument
	opened []string
}

func newMockRegistry(docs map[string]*mockDocument) *mockRegistry {
	return &mockRegistry{docs: docs}
}

func (r *mockRegistry) Open(_ context.Context, path string) (driven.PagedDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	name := filepath.Base(path)
	r.opened = append(r.opened, name)
	doc, ok := r.docs[name]
	if !ok {
		return nil, fmt.Errorf("open %s: no such file or directory", path)
	}
	return doc, nil
}

func (r *mockRegistry) Register(_ driven.PageReader) {}

func (r *mockRegistry) SupportedExtensions() []string { return []string{".pdf"} }

// mockWriter implements driven.ReportWriter.
type mockWriter struct {
	path   string
	report *domain.RunReport
	err    error
	calls  int
}

func (w *mockWriter) Write(_ context.Context, report *domain.RunReport, path string) error {
	w.calls++
	w.path = path
	w.report = report
	return w.err
}

// mockRanker implements driving.RankingService.
type mockRanker struct {
	calls  int
	chunks []domain.TextChunk
	err    error
}

func (r *mockRanker) Rank(_ context.Context, _ string, chunks []domain.TextChunk) (*domain.RankResult, error) {
	r.calls++
	r.chunks = chunks
	if r.err != nil {
		return nil, r.err
	}
	return &domain.RankResult{}, nil
}

// mockValidator implements driven.AIConfigValidator.
type mockValidator struct {
	err    error
	called bool
}

func (v *mockValidator) ValidateEmbedding(_ *domain.EmbeddingSettings) error {
	v.called = true
	return v.err
}
