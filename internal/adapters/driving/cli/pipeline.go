package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/personarank/internal/adapters/driven/ai"
	"github.com/custodia-labs/personarank/internal/adapters/driven/report"
	"github.com/custodia-labs/personarank/internal/core/domain"
	"github.com/custodia-labs/personarank/internal/core/services"
	"github.com/custodia-labs/personarank/internal/normalisers"
)

// loadSettings returns the current settings, failing when the service is missing.
func loadSettings() (*domain.Settings, error) {
	if settingsService == nil {
		return nil, errors.New("settings service not configured")
	}
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings, nil
}

// overrideEmbedding applies command line provider and model overrides.
// Switching provider without a model selects that provider's default model.
func overrideEmbedding(settings *domain.Settings, provider, model string) error {
	if provider != "" {
		p := domain.AIProvider(provider)
		if !p.IsValid() {
			return fmt.Errorf("%w: unknown provider %q", domain.ErrUnsupportedType, provider)
		}
		if p != settings.Embedding.Provider {
			settings.Embedding.Provider = p
			settings.Embedding.Model = domain.DefaultEmbeddingModels()[p]
			settings.Embedding.Dimensions = 0
		}
	}
	if model != "" {
		settings.Embedding.Model = model
	}
	return nil
}

// buildPipeline wires the readers, embedder and report store into a
// pipeline. The returned close function releases the embedder.
func buildPipeline(ctx context.Context, settings *domain.Settings) (*services.PipelineService, func(), error) {
	embedder, err := ai.CreateAndValidateEmbeddingService(ctx, &settings.Embedding)
	if err != nil {
		return nil, nil, err
	}

	pipeline := services.NewPipelineService(
		services.NewExtractorService(normalisers.NewDefaultRegistry()),
		services.NewRankingService(embedder),
		services.NewReportAssembler(),
		report.NewJSONStore(),
	)
	pipeline.SetWorkers(settings.Pipeline.Workers)
	pipeline.SetModel(embedder.ModelName())

	return pipeline, func() { _ = embedder.Close() }, nil
}

// documentDir resolves the document directory under inputDir unless it
// is absolute.
func documentDir(settings *domain.Settings, inputDir string) string {
	dir := settings.Paths.DocumentDir
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(inputDir, dir)
}

// defaultOutputPath is where reports are written when --output is not given.
func defaultOutputPath(settings *domain.Settings) string {
	name := settings.Paths.OutputFile
	if name == "" {
		name = report.DefaultFilename
	}
	return filepath.Join(settings.Paths.OutputDir, name)
}
