// Package plaintext reads plain text files as pages of paragraphs.
package plaintext

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/custodia-labs/personarank/internal/core/ports/driven"
)

// Ensure Reader implements the interface.
var _ driven.PageReader = (*Reader)(nil)

// blankLines separates paragraphs.
var blankLines = regexp.MustCompile(`\n[ \t]*\n`)

// Reader handles plain text documents. Form feeds separate pages and
// blank lines separate blocks.
type Reader struct{}

// New creates a new plain text reader.
func New() *Reader {
	return &Reader{}
}

// SupportedExtensions returns the file extensions this reader handles.
func (r *Reader) SupportedExtensions() []string {
	return []string{".txt", ".text"}
}

// SupportedMIMETypes returns the MIME types this reader handles.
func (r *Reader) SupportedMIMETypes() []string {
	return []string{"text/plain"}
}

// Priority returns the selection priority.
func (r *Reader) Priority() int {
	return 5 // Fallback reader
}

// Open reads the whole file into memory.
func (r *Reader) Open(ctx context.Context, path string) (driven.PagedDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read text file: %w", err)
	}

	return NewDocument(string(content)), nil
}

// Document is an in-memory text document.
type Document struct {
	pages []string
}

// NewDocument splits content into pages on form feed characters.
// Other readers that reduce their format to text reuse it.
func NewDocument(content string) *Document {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return &Document{pages: strings.Split(content, "\f")}
}

// NumPages returns the number of form-feed separated pages.
func (d *Document) NumPages() int {
	return len(d.pages)
}

// Blocks returns the paragraphs of page.
func (d *Document) Blocks(page int) ([]string, error) {
	if page < 1 || page > len(d.pages) {
		return nil, fmt.Errorf("page %d out of range (1-%d)", page, len(d.pages))
	}

	text := d.pages[page-1]
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	return blankLines.Split(text, -1), nil
}

// Close is a no-op.
func (d *Document) Close() error {
	return nil
}
