package driven

import (
	"context"

	"github.com/custodia-labs/personarank/internal/core/domain"
)

// ReportWriter persists a run report.
type ReportWriter interface {
	// Write serialises report to path, creating parent directories.
	Write(ctx context.Context, report *domain.RunReport, path string) error
}

// ReportReader loads a previously written report.
type ReportReader interface {
	// Read parses the report at path.
	Read(ctx context.Context, path string) (*domain.RunReport, error)
}
