package services

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/custodia-labs/personarank/internal/core/domain"
	"github.com/custodia-labs/personarank/internal/core/ports/driven"
	"github.com/custodia-labs/personarank/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyEmbedProvider   = "embedding.provider"
	keyEmbedModel      = "embedding.model"
	keyEmbedBaseURL    = "embedding.base_url"
	keyEmbedAPIKeyEnv  = "embedding.api_key_env"
	keyEmbedDimensions = "embedding.dimensions"
	keyEmbedRateLimit  = "embedding.rate_limit"
	keyWorkers         = "pipeline.workers"
	keyInputDir        = "paths.input_dir"
	keyDocumentDir     = "paths.document_dir"
	keyOutputDir       = "paths.output_dir"
	keyOutputFile      = "paths.output_file"
)

// settingKeys lists every settable key in display order.
var settingKeys = []string{
	keyEmbedProvider,
	keyEmbedModel,
	keyEmbedBaseURL,
	keyEmbedAPIKeyEnv,
	keyEmbedDimensions,
	keyEmbedRateLimit,
	keyWorkers,
	keyInputDir,
	keyDocumentDir,
	keyOutputDir,
	keyOutputFile,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
	getenv      func(string) string
}

// NewSettingsService creates a new settings service.
// The aiValidator parameter is optional.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
		getenv:      os.Getenv,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	settings := &domain.Settings{
		Embedding: domain.EmbeddingSettings{
			Provider:   s.getProvider(keyEmbedProvider, defaults.Embedding.Provider),
			Model:      s.getString(keyEmbedModel, defaults.Embedding.Model),
			BaseURL:    s.configStore.GetString(keyEmbedBaseURL), // Empty selects the provider default
			APIKeyEnv:  s.getString(keyEmbedAPIKeyEnv, defaults.Embedding.APIKeyEnv),
			Dimensions: s.getInt(keyEmbedDimensions, defaults.Embedding.Dimensions),
			RateLimit:  s.getFloat(keyEmbedRateLimit, defaults.Embedding.RateLimit),
		},
		Paths: domain.PathSettings{
			InputDir:    s.getString(keyInputDir, defaults.Paths.InputDir),
			DocumentDir: s.getString(keyDocumentDir, defaults.Paths.DocumentDir),
			OutputDir:   s.getString(keyOutputDir, defaults.Paths.OutputDir),
			OutputFile:  s.getString(keyOutputFile, defaults.Paths.OutputFile),
		},
		Pipeline: domain.PipelineSettings{
			Workers: s.getInt(keyWorkers, defaults.Pipeline.Workers),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.Settings) error {
	if settings == nil {
		return domain.ErrInvalidInput
	}

	values := []struct {
		key   string
		value any
	}{
		{keyEmbedProvider, settings.Embedding.Provider.String()},
		{keyEmbedModel, settings.Embedding.Model},
		{keyEmbedBaseURL, settings.Embedding.BaseURL},
		{keyEmbedAPIKeyEnv, settings.Embedding.APIKeyEnv},
		{keyEmbedDimensions, settings.Embedding.Dimensions},
		{keyEmbedRateLimit, settings.Embedding.RateLimit},
		{keyWorkers, settings.Pipeline.Workers},
		{keyInputDir, settings.Paths.InputDir},
		{keyDocumentDir, settings.Paths.DocumentDir},
		{keyOutputDir, settings.Paths.OutputDir},
		{keyOutputFile, settings.Paths.OutputFile},
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set parses value according to key and stores it.
func (s *SettingsService) Set(key, value string) error {
	value = strings.TrimSpace(value)

	var parsed any
	switch key {
	case keyEmbedProvider:
		provider := domain.AIProvider(value)
		if !provider.IsValid() {
			return fmt.Errorf("%w: invalid embedding provider: %s", domain.ErrInvalidInput, value)
		}
		parsed = provider.String()
	case keyEmbedDimensions, keyWorkers:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s must be a non-negative integer", domain.ErrInvalidInput, key)
		}
		parsed = n
	case keyEmbedRateLimit:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return fmt.Errorf("%w: %s must be a non-negative number", domain.ErrInvalidInput, key)
		}
		parsed = f
	case keyEmbedModel, keyEmbedBaseURL, keyEmbedAPIKeyEnv,
		keyInputDir, keyDocumentDir, keyOutputDir, keyOutputFile:
		parsed = value
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrNotFound, key)
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys returns every settable key in display order.
func (s *SettingsService) Keys() []string {
	return append([]string(nil), settingKeys...)
}

// SetEmbeddingProvider configures the embedding provider.
func (s *SettingsService) SetEmbeddingProvider(provider domain.AIProvider, model string) error {
	if !provider.IsValid() {
		return fmt.Errorf("%w: invalid embedding provider: %s", domain.ErrInvalidInput, provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Embedding.Provider = provider

	// Set model - use provided or default
	if model != "" {
		settings.Embedding.Model = model
	} else if defaultModel, ok := domain.DefaultEmbeddingModels()[provider]; ok {
		settings.Embedding.Model = defaultModel
	}

	// Endpoints are provider specific; reset to the adapter default.
	settings.Embedding.BaseURL = ""

	return s.Save(settings)
}

// Validate checks the current settings for consistency. Every problem
// found is reported, each wrapping domain.ErrInvalidInput.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{domain.ErrInvalidInput}, args...)...))
	}

	emb := settings.Embedding
	if !emb.Provider.IsValid() {
		invalid("embedding provider %q", emb.Provider)
	}
	if strings.TrimSpace(emb.Model) == "" {
		invalid("embedding model is required for %s", emb.Provider)
	}
	if emb.Provider.RequiresAPIKey() && s.getenv(emb.APIKeyEnv) == "" {
		invalid("API key required for %s: set %s", emb.Provider, emb.APIKeyEnv)
	}
	if emb.Dimensions < 0 {
		invalid("embedding dimensions must not be negative")
	}
	if emb.RateLimit < 0 {
		invalid("embedding rate limit must not be negative")
	}
	if settings.Pipeline.Workers < 0 {
		invalid("pipeline workers must not be negative")
	}
	return errors.Join(errs...)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

// ValidateEmbeddingConfig validates the current embedding configuration by pinging the provider.
func (s *SettingsService) ValidateEmbeddingConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateEmbedding(&settings.Embedding)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}
