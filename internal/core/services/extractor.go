package services

import (
	"context"
	"fmt"
	"iter"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/personarank/internal/core/domain"
	"github.com/custodia-labs/personarank/internal/core/ports/driven"
	"github.com/custodia-labs/personarank/internal/core/ports/driving"
	"github.com/custodia-labs/personarank/internal/logger"
)

// Ensure ExtractorService implements the interface.
var _ driving.ExtractionService = (*ExtractorService)(nil)

// ExtractorService splits documents into rankable text chunks.
type ExtractorService struct {
	readers driven.ReaderRegistry
}

// NewExtractorService creates a new extractor backed by the given reader registry.
func NewExtractorService(readers driven.ReaderRegistry) *ExtractorService {
	return &ExtractorService{readers: readers}
}

// Extract yields the chunks of doc lazily, pages in order and blocks in
// order within each page. Blocks are trimmed, and those with too few
// tokens are skipped without shifting the numbering of later blocks.
//
// A document that cannot be opened yields one error wrapping
// domain.ErrDocumentAccess. An unreadable page yields the same kind of
// error and extraction moves on to the next page.
func (s *ExtractorService) Extract(ctx context.Context, doc domain.DocumentRef) iter.Seq2[domain.TextChunk, error] {
	return func(yield func(domain.TextChunk, error) bool) {
		docID := documentID(doc)

		if s.readers == nil {
			yield(domain.TextChunk{}, fmt.Errorf("%w: %s: no readers registered", domain.ErrDocumentAccess, docID))
			return
		}

		paged, err := s.readers.Open(ctx, doc.Path)
		if err != nil {
			yield(domain.TextChunk{}, fmt.Errorf("%w: %s: %w", domain.ErrDocumentAccess, docID, err))
			return
		}
		defer paged.Close()

		pages := paged.NumPages()
		logger.Debug("Extracting %s (%d pages)", docID, pages)

		for page := 1; page <= pages; page++ {
			if err := ctx.Err(); err != nil {
				yield(domain.TextChunk{}, err)
				return
			}

			blocks, err := paged.Blocks(page)
			if err != nil {
				if !yield(domain.TextChunk{}, fmt.Errorf("%w: %s page %d: %w", domain.ErrDocumentAccess, docID, page, err)) {
					return
				}
				continue
			}

			for i, block := range blocks {
				text := strings.TrimSpace(block)
				if !domain.IsRankable(text) {
					continue
				}

				chunk := domain.TextChunk{
					DocumentID: docID,
					Location:   domain.Location{Page: page, Block: i + 1},
					Text:       text,
				}
				if !yield(chunk, nil) {
					return
				}
			}
		}
	}
}

// documentID returns the identifier chunks carry for doc: its base file name.
func documentID(doc domain.DocumentRef) string {
	if doc.Filename != "" {
		return filepath.Base(doc.Filename)
	}
	return filepath.Base(doc.Path)
}
