package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"slices"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/personarank/internal/core/domain"
	"github.com/custodia-labs/personarank/internal/core/ports/driven"
	"github.com/custodia-labs/personarank/internal/core/ports/driving"
	"github.com/custodia-labs/personarank/internal/logger"
)

// Ensure PipelineService implements the interface.
var _ driving.PipelineService = (*PipelineService)(nil)

// PipelineService coordinates one run: extraction, ranking, assembly and
// writing. It holds no state between runs.
type PipelineService struct {
	extractor driving.ExtractionService
	ranker    driving.RankingService
	assembler *ReportAssembler
	writer    driven.ReportWriter
	workers   int
	model     string
}

// NewPipelineService creates a new pipeline.
// The writer parameter is optional; without it reports are only returned.
func NewPipelineService(
	extractor driving.ExtractionService,
	ranker driving.RankingService,
	assembler *ReportAssembler,
	writer driven.ReportWriter,
) *PipelineService {
	if assembler == nil {
		assembler = NewReportAssembler()
	}
	return &PipelineService{
		extractor: extractor,
		ranker:    ranker,
		assembler: assembler,
		writer:    writer,
	}
}

// SetWorkers bounds parallel extraction. Values below 1 use one worker per CPU.
func (s *PipelineService) SetWorkers(n int) {
	s.workers = n
}

// SetModel records the embedding model name on produced reports.
func (s *PipelineService) SetModel(name string) {
	s.model = name
}

// documentResult is one document's extraction output. Each worker owns
// exactly one slot.
type documentResult struct {
	chunks   []domain.TextChunk
	warnings []domain.Warning
}

// Run executes the pipeline for req.
func (s *PipelineService) Run(ctx context.Context, req driving.RunRequest) (*domain.RunReport, error) {
	logger.Section("Pipeline")

	if err := req.Task.Validate(); err != nil {
		return nil, err
	}

	docs := ResolveDocuments(req.Task.Documents, req.DocumentDir)
	logger.Info("Persona: %s", req.Task.Persona)
	logger.Info("Task: %s", req.Task.JobToBeDone)
	logger.Info("Documents: %d", len(docs))

	extracted := logger.Stage("Chunk Extraction")
	chunks, warnings, err := s.extractAll(ctx, docs)
	if err != nil {
		return nil, err
	}
	logger.Info("Extracted %d chunks", len(chunks))
	extracted()

	result, err := s.ranker.Rank(ctx, req.Task.Query(), chunks)
	if err != nil {
		return nil, fmt.Errorf("rank chunks: %w", err)
	}
	warnings = append(warnings, result.Warnings...)

	for _, w := range warnings {
		logger.Warn("%s", w)
	}

	report := s.assembler.Assemble(ReportInput{
		Documents:   req.Task.Filenames(),
		Persona:     req.Task.Persona,
		JobToBeDone: req.Task.JobToBeDone,
		Model:       s.model,
		Result:      result,
		Warnings:    warnings,
	})

	if req.OutputPath != "" && s.writer != nil {
		logger.Section("Report")
		if err := s.writer.Write(ctx, report, req.OutputPath); err != nil {
			return report, fmt.Errorf("write report: %w", err)
		}
		logger.Info("Wrote %s", req.OutputPath)
	}

	return report, nil
}

// extractAll runs the extractor over docs on a bounded worker pool.
// Results are concatenated by document index, so output order matches
// configured order no matter how workers are scheduled. Within a document
// chunks are kept in page, then block order.
func (s *PipelineService) extractAll(
	ctx context.Context, docs []domain.DocumentRef,
) ([]domain.TextChunk, []domain.Warning, error) {
	slots := make([]documentResult, len(docs))
	var finished atomic.Int32

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workerCount(len(docs)))

	for i, doc := range docs {
		g.Go(func() error {
			slot := &slots[i]
			for chunk, err := range s.extractor.Extract(gctx, doc) {
				if err != nil {
					if !errors.Is(err, domain.ErrDocumentAccess) {
						return fmt.Errorf("extract %s: %w", doc.Filename, err)
					}
					slot.warnings = append(slot.warnings, domain.Warning{
						Kind:    domain.WarningDocument,
						Subject: doc.Filename,
						Err:     err,
					})
					continue
				}
				slot.chunks = append(slot.chunks, chunk)
			}
			slices.SortStableFunc(slot.chunks, compareLocation)
			logger.Debug("%s: %d chunks", doc.Filename, len(slot.chunks))
			logger.Progress("Extraction", int(finished.Add(1)), len(docs))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var (
		chunks   []domain.TextChunk
		warnings []domain.Warning
	)
	for _, slot := range slots {
		chunks = append(chunks, slot.chunks...)
		warnings = append(warnings, slot.warnings...)
	}
	return chunks, warnings, nil
}

func compareLocation(a, b domain.TextChunk) int {
	switch {
	case a.Location.Less(b.Location):
		return -1
	case b.Location.Less(a.Location):
		return 1
	default:
		return 0
	}
}

func (s *PipelineService) workerCount(docs int) int {
	n := s.workers
	if n < 1 {
		n = runtime.NumCPU()
	}
	if docs > 0 && n > docs {
		n = docs
	}
	return max(n, 1)
}

// ResolveDocuments returns copies of docs with Path set. Filenames resolve
// under dir unless a path is already set. Callers validate the task first,
// so every filename is local to dir.
func ResolveDocuments(docs []domain.DocumentRef, dir string) []domain.DocumentRef {
	resolved := make([]domain.DocumentRef, len(docs))
	for i, d := range docs {
		resolved[i] = d
		if d.Path == "" {
			resolved[i].Path = filepath.Join(dir, d.Filename)
		}
	}
	return resolved
}
