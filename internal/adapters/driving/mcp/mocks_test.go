package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/personarank/internal/core/domain"
	"github.com/custodia-labs/personarank/internal/core/ports/driving"
)

// mockPipeline is a mock implementation of driving.PipelineService.
type mockPipeline struct {
	report *domain.RunReport
	err    error
	req    driving.RunRequest
	calls  int
}

func (m *mockPipeline) Run(_ context.Context, req driving.RunRequest) (*domain.RunReport, error) {
	m.calls++
	m.req = req
	return m.report, m.err
}

// mockSettings is a mock implementation of driving.SettingsService.
type mockSettings struct {
	settings *domain.Settings
	err      error
}

func (m *mockSettings) Get() (*domain.Settings, error)                       { return m.settings, m.err }
func (m *mockSettings) Save(*domain.Settings) error                          { return m.err }
func (m *mockSettings) Set(string, string) error                             { return m.err }
func (m *mockSettings) Keys() []string                                       { return nil }
func (m *mockSettings) SetEmbeddingProvider(domain.AIProvider, string) error { return m.err }
func (m *mockSettings) Validate() error                                      { return m.err }
func (m *mockSettings) GetDefaults() domain.Settings                         { return domain.DefaultSettings() }
func (m *mockSettings) ValidateEmbeddingConfig() error                       { return m.err }

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}
