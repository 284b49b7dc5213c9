package driving

import (
	"context"

	"github.com/custodia-labs/personarank/internal/core/domain"
)

// RunRequest describes a single pipeline run.
type RunRequest struct {
	// Task is the persona, job and document list.
	Task *domain.Task

	// DocumentDir is the directory document filenames resolve under.
	DocumentDir string

	// OutputPath is where the report is written. Empty skips writing.
	OutputPath string
}

// PipelineService runs the whole ranking pipeline.
type PipelineService interface {
	// Run validates the task, extracts every document, ranks the chunks
	// once, assembles the report and writes it.
	Run(ctx context.Context, req RunRequest) (*domain.RunReport, error)
}
