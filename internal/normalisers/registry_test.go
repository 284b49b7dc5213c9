package normalisers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/personarank/internal/core/domain"
	"github.com/custodia-labs/personarank/internal/core/ports/driven"
)

type stubReader struct {
	name     string
	exts     []string
	priority int
	opened   []string
}

func (s *stubReader) SupportedExtensions() []string { return s.exts }
func (s *stubReader) SupportedMIMETypes() []string  { return nil }
func (s *stubReader) Priority() int                 { return s.priority }

func (s *stubReader) Open(_ context.Context, path string) (driven.PagedDocument, error) {
	s.opened = append(s.opened, path)
	return nil, errors.New(s.name)
}

func TestRegistry_HighestPriorityWins(t *testing.T) {
	low := &stubReader{name: "low", exts: []string{".txt"}, priority: 5}
	high := &stubReader{name: "high", exts: []string{".txt"}, priority: 50}

	r := NewRegistry()
	r.Register(low)
	r.Register(high)

	_, err := r.Open(context.Background(), "/tmp/notes.txt")
	require.Error(t, err)
	assert.Equal(t, "high", err.Error())
	assert.Equal(t, []string{"/tmp/notes.txt"}, high.opened)
	assert.Empty(t, low.opened)
}

func TestRegistry_ExtensionIsCaseInsensitive(t *testing.T) {
	reader := &stubReader{name: "pdf", exts: []string{".PDF"}, priority: 50}

	r := NewRegistry()
	r.Register(reader)

	_, _ = r.Open(context.Background(), "Guide.Pdf")
	assert.Equal(t, []string{"Guide.Pdf"}, reader.opened)
}

func TestRegistry_Unsupported(t *testing.T) {
	r := NewRegistry()

	doc, err := r.Open(context.Background(), "/data/slides.pptx")

	assert.Nil(t, doc)
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
	assert.Contains(t, err.Error(), "slides.pptx")
}

func TestNewDefaultRegistry(t *testing.T) {
	r := NewDefaultRegistry()

	assert.Equal(t, []string{".markdown", ".md", ".pdf", ".text", ".txt"}, r.SupportedExtensions())
}
