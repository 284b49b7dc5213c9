package driven

import "github.com/custodia-labs/personarank/internal/core/domain"

// AIConfigValidator checks an embedding configuration against the live provider.
type AIConfigValidator interface {
	// ValidateEmbedding returns an error wrapping domain.ErrEmbeddingUnavailable
	// when the provider cannot be reached.
	ValidateEmbedding(config *domain.EmbeddingSettings) error
}
