package driven

import (
	"context"

	"github.com/custodia-labs/personarank/internal/core/domain"
)

// TaskLoader reads task configuration files.
type TaskLoader interface {
	// Load parses the task file at path. Missing required fields
	// produce an error wrapping domain.ErrInvalidConfig.
	Load(ctx context.Context, path string) (*domain.Task, error)

	// Discover returns the task file to use from dir: the first *.json
	// file in lexical order.
	Discover(dir string) (string, error)
}
