package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown provider or document format.
	ErrUnsupportedType = errors.New("unsupported type")

	// Run Errors.

	// ErrInvalidConfig indicates the task configuration is missing required fields.
	// It is fatal and raised before any extraction happens.
	ErrInvalidConfig = errors.New("invalid task configuration")

	// ErrDocumentAccess indicates a document could not be located or opened.
	// The document is skipped and the run continues.
	ErrDocumentAccess = errors.New("document not accessible")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrQueryEmbedding indicates the query could not be embedded.
	// Ranking is impossible without a query vector, so the run aborts.
	ErrQueryEmbedding = errors.New("query embedding failed")

	// ErrChunkEmbedding indicates a single chunk could not be embedded.
	// The chunk is excluded from scoring.
	ErrChunkEmbedding = errors.New("chunk embedding failed")

	// ErrDimensionMismatch indicates a vector does not match the query dimensions.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)
