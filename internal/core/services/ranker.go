package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/custodia-labs/personarank/internal/core/domain"
	"github.com/custodia-labs/personarank/internal/core/ports/driven"
	"github.com/custodia-labs/personarank/internal/core/ports/driving"
	"github.com/custodia-labs/personarank/internal/logger"
)

// Ensure RankingService implements the interface.
var _ driving.RankingService = (*RankingService)(nil)

// RankingService scores chunks by cosine similarity to a query embedding.
type RankingService struct {
	embedder driven.EmbeddingService
}

// NewRankingService creates a ranker that embeds through embedder.
func NewRankingService(embedder driven.EmbeddingService) *RankingService {
	return &RankingService{embedder: embedder}
}

// Rank embeds the query once and every chunk in a single batch, scores
// each chunk against the query, and returns the chunks scoring strictly
// above domain.RelevanceThreshold with dense 1-based ranks.
//
// Chunks are expected in gathering order (documents as configured,
// chunks in document order); exact score ties keep that order.
// A chunk whose embedding fails or has the wrong size is left out and
// reported as a warning. Failing to embed the query is fatal.
func (s *RankingService) Rank(
	ctx context.Context, query string, chunks []domain.TextChunk,
) (*domain.RankResult, error) {
	done := logger.Stage("Relevance Ranking")
	defer done()

	if s.embedder == nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrQueryEmbedding, domain.ErrEmbeddingUnavailable)
	}

	logger.Debug("Query: %q", query)
	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrQueryEmbedding, err)
	}
	if len(queryVec) == 0 {
		return nil, fmt.Errorf("%w: empty query vector", domain.ErrQueryEmbedding)
	}

	result := &domain.RankResult{
		Ranked:   []domain.ScoredChunk{},
		Sections: []domain.ExtractedSection{},
		Analysis: []domain.SubsectionAnalysis{},
	}
	if len(chunks) == 0 {
		logger.Debug("No chunks to rank")
		return result, nil
	}

	vectors, warnings, err := s.embedChunks(ctx, chunks)
	if err != nil {
		return nil, err
	}

	scored := make([]domain.ScoredChunk, 0, len(chunks))
	for i, chunk := range chunks {
		vec := vectors[i]
		if len(vec) == 0 {
			continue
		}
		if len(vec) != len(queryVec) {
			warnings = append(warnings, domain.Warning{
				Kind:    domain.WarningEmbedding,
				Subject: chunk.Key(),
				Err: fmt.Errorf("%w: got %d, query has %d",
					domain.ErrDimensionMismatch, len(vec), len(queryVec)),
			})
			continue
		}
		scored = append(scored, domain.ScoredChunk{
			Chunk: chunk,
			Score: CosineSimilarity(queryVec, vec),
			Order: i,
		})
	}

	result.Scored = len(scored)
	result.Ranked = RankScored(scored)
	result.Sections, result.Analysis = buildViews(result.Ranked)
	result.Warnings = warnings

	logger.Info("Scored %d chunks, %d above threshold %.2f",
		result.Scored, len(result.Ranked), domain.RelevanceThreshold)
	return result, nil
}

// embedChunks embeds every chunk text with one batch call. If the batch
// fails or returns the wrong number of vectors, each chunk is embedded
// on its own so a single bad chunk does not sink the rest. Missing or
// empty vectors are reported as warnings and left empty in the result.
func (s *RankingService) embedChunks(
	ctx context.Context, chunks []domain.TextChunk,
) ([][]float32, []domain.Warning, error) {
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	logger.Debug("Embedding %d chunks", len(texts))
	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err == nil && len(vectors) != len(texts) {
		err = fmt.Errorf("batch returned %d vectors for %d texts", len(vectors), len(texts))
	}

	var warnings []domain.Warning
	failed := make(map[int]bool)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, nil, ctxErr
		}
		logger.Warn("Batch embedding failed, embedding chunks individually: %v", err)

		vectors = make([][]float32, len(texts))
		for i, text := range texts {
			vec, embedErr := s.embedder.Embed(ctx, text)
			if embedErr != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return nil, nil, ctxErr
				}
				warnings = append(warnings, domain.Warning{
					Kind:    domain.WarningEmbedding,
					Subject: chunks[i].Key(),
					Err:     fmt.Errorf("%w: %w", domain.ErrChunkEmbedding, embedErr),
				})
				failed[i] = true
				continue
			}
			vectors[i] = vec
		}
	}

	for i, vec := range vectors {
		if len(vec) == 0 && !failed[i] {
			warnings = append(warnings, domain.Warning{
				Kind:    domain.WarningEmbedding,
				Subject: chunks[i].Key(),
				Err:     fmt.Errorf("%w: empty vector", domain.ErrChunkEmbedding),
			})
		}
	}

	return vectors, warnings, nil
}

// RankScored orders scored chunks by descending score, breaking exact
// ties by gathering order, assigns dense 1-based ranks over the sorted
// list and keeps only chunks above domain.RelevanceThreshold.
//
// Because the cutoff is a strict lower bound on a descending list, the
// survivors are always a prefix of the sorted list and their ranks are
// exactly 1..n.
func RankScored(scored []domain.ScoredChunk) []domain.ScoredChunk {
	sorted := make([]domain.ScoredChunk, len(scored))
	copy(sorted, scored)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Score != sorted[j].Score {
			return sorted[i].Score > sorted[j].Score
		}
		return sorted[i].Order < sorted[j].Order
	})

	ranked := make([]domain.ScoredChunk, 0, len(sorted))
	for i := range sorted {
		sorted[i].Rank = i + 1
		if sorted[i].PassesThreshold() {
			ranked = append(ranked, sorted[i])
		}
	}
	return ranked
}

// buildViews derives the two parallel report views from ranked chunks.
func buildViews(ranked []domain.ScoredChunk) ([]domain.ExtractedSection, []domain.SubsectionAnalysis) {
	sections := make([]domain.ExtractedSection, 0, len(ranked))
	analysis := make([]domain.SubsectionAnalysis, 0, len(ranked))

	for _, sc := range ranked {
		sections = append(sections, domain.ExtractedSection{
			Document:     sc.Chunk.DocumentID,
			PageNumber:   sc.Chunk.Location.Page,
			SectionTitle: sc.Chunk.Label(),
			Rank:         sc.Rank,
		})
		analysis = append(analysis, domain.SubsectionAnalysis{
			Document:    sc.Chunk.DocumentID,
			PageNumber:  sc.Chunk.Location.Page,
			RefinedText: sc.Chunk.Text,
			Score:       sc.Score,
		})
	}
	return sections, analysis
}
