package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/personarank/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/personarank/internal/core/domain"
)

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), *settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("embedding.provider", "openai")
	_ = store.Set("embedding.model", "text-embedding-3-large")
	_ = store.Set("embedding.dimensions", int64(256))
	_ = store.Set("embedding.rate_limit", 2.5)
	_ = store.Set("pipeline.workers", 3)
	_ = store.Set("paths.input_dir", "/data/in")

	settings, err := NewSettingsService(store, nil).Get()

	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderOpenAI, settings.Embedding.Provider)
	assert.Equal(t, "text-embedding-3-large", settings.Embedding.Model)
	assert.Equal(t, 256, settings.Embedding.Dimensions)
	assert.InDelta(t, 2.5, settings.Embedding.RateLimit, 1e-9)
	assert.Equal(t, 3, settings.Pipeline.Workers)
	assert.Equal(t, "/data/in", settings.Paths.InputDir)
	assert.Equal(t, domain.DefaultDocumentDir, settings.Paths.DocumentDir)
}

func TestSettingsService_Get_InvalidProviderReturnsDefault(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("embedding.provider", "invalid_provider")

	settings, err := NewSettingsService(store, nil).Get()

	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderOllama, settings.Embedding.Provider)
}

func TestSettingsService_SaveAndGet(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)

	want := domain.DefaultSettings()
	want.Embedding.Provider = domain.AIProviderHash
	want.Embedding.Model = "hash-384"
	want.Embedding.Dimensions = 384
	want.Pipeline.Workers = 2
	want.Paths.OutputDir = "results"

	require.NoError(t, service.Save(&want))

	got, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, want, *got)
	assert.Equal(t, "hash", store.GetString("embedding.provider"))
}

func TestSettingsService_Save_Nil(t *testing.T) {
	err := NewSettingsService(memory.NewConfigStore(), nil).Save(nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsService_Set(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		stored  any
		wantErr error
	}{
		{"provider", "embedding.provider", "openai", "openai", nil},
		{"bad provider", "embedding.provider", "cohere", nil, domain.ErrInvalidInput},
		{"model", "embedding.model", " nomic-embed-text ", "nomic-embed-text", nil},
		{"workers", "pipeline.workers", "4", 4, nil},
		{"negative workers", "pipeline.workers", "-1", nil, domain.ErrInvalidInput},
		{"non numeric dims", "embedding.dimensions", "many", nil, domain.ErrInvalidInput},
		{"rate limit", "embedding.rate_limit", "0.5", 0.5, nil},
		{"bad rate limit", "embedding.rate_limit", "fast", nil, domain.ErrInvalidInput},
		{"output file", "paths.output_file", "out.json", "out.json", nil},
		{"unknown key", "search.mode", "hybrid", nil, domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewConfigStore()
			err := NewSettingsService(store, nil).Set(tt.key, tt.value)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				_, ok := store.Get(tt.key)
				assert.False(t, ok)
				return
			}
			require.NoError(t, err)
			val, _ := store.Get(tt.key)
			assert.Equal(t, tt.stored, val)
		})
	}
}

func TestSettingsService_Keys(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	keys := service.Keys()
	assert.Contains(t, keys, "embedding.provider")
	assert.Contains(t, keys, "pipeline.workers")
	assert.Contains(t, keys, "paths.document_dir")

	keys[0] = "mutated"
	assert.Equal(t, "embedding.provider", service.Keys()[0])
}

func TestSettingsService_SetEmbeddingProvider(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("embedding.base_url", "http://gpu-box:11434")
	service := NewSettingsService(store, nil)

	require.NoError(t, service.SetEmbeddingProvider(domain.AIProviderOpenAI, ""))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderOpenAI, settings.Embedding.Provider)
	assert.Equal(t, "text-embedding-3-small", settings.Embedding.Model)
	assert.Empty(t, settings.Embedding.BaseURL)

	require.NoError(t, service.SetEmbeddingProvider(domain.AIProviderOllama, "nomic-embed-text"))
	settings, _ = service.Get()
	assert.Equal(t, "nomic-embed-text", settings.Embedding.Model)

	err = service.SetEmbeddingProvider(domain.AIProvider("bogus"), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsService_Validate(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, NewSettingsService(memory.NewConfigStore(), nil).Validate())
	})

	t.Run("openai requires key in environment", func(t *testing.T) {
		store := memory.NewConfigStore()
		_ = store.Set("embedding.provider", "openai")
		service := NewSettingsService(store, nil)
		service.getenv = func(string) string { return "" }

		err := service.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "OPENAI_API_KEY")

		service.getenv = func(key string) string {
			if key == "OPENAI_API_KEY" {
				return "sk-test"
			}
			return ""
		}
		assert.NoError(t, service.Validate())
	})

	t.Run("negative dimensions", func(t *testing.T) {
		store := memory.NewConfigStore()
		_ = store.Set("embedding.dimensions", -5)
		assert.ErrorIs(t, NewSettingsService(store, nil).Validate(), domain.ErrInvalidInput)
	})

	t.Run("reports every problem", func(t *testing.T) {
		store := memory.NewConfigStore()
		_ = store.Set("embedding.dimensions", -5)
		_ = store.Set("embedding.rate_limit", -1.0)
		_ = store.Set("pipeline.workers", -2)

		err := NewSettingsService(store, nil).Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "dimensions")
		assert.Contains(t, err.Error(), "rate limit")
		assert.Contains(t, err.Error(), "workers")
	})
}

func TestSettingsService_ValidateEmbeddingConfig(t *testing.T) {
	assert.NoError(t, NewSettingsService(memory.NewConfigStore(), nil).ValidateEmbeddingConfig())

	validator := &mockValidator{err: errors.New("connection refused")}
	service := NewSettingsService(memory.NewConfigStore(), validator)

	err := service.ValidateEmbeddingConfig()
	assert.True(t, validator.called)
	assert.EqualError(t, err, "connection refused")
}

func TestSettingsService_GetDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)
	assert.Equal(t, domain.DefaultSettings(), service.GetDefaults())
}
