package driving

import (
	"context"
	"iter"

	"github.com/custodia-labs/personarank/internal/core/domain"
)

// ExtractionService turns one document into rankable chunks.
type ExtractionService interface {
	// Extract lazily yields the document's chunks in page, then block order.
	// A document that cannot be opened yields a single error wrapping
	// domain.ErrDocumentAccess and no chunks.
	Extract(ctx context.Context, doc domain.DocumentRef) iter.Seq2[domain.TextChunk, error]
}

// RankingService scores chunks against a query.
type RankingService interface {
	// Rank embeds query and chunks, scores them by cosine similarity and
	// returns those above domain.RelevanceThreshold in rank order.
	// Only a failure to embed the query is returned as an error.
	Rank(ctx context.Context, query string, chunks []domain.TextChunk) (*domain.RankResult, error)
}
