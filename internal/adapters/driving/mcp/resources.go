package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// uriScheme is the custom URI scheme for personarank resources.
const uriScheme = "personarank://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "settings",
		Name:        "settings",
		Description: "Active embedding, path and pipeline settings",
		MIMEType:    "application/json",
	}, s.handleSettingsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "reports/last",
		Name:        "last-report",
		Description: "The most recent report produced by rank_documents",
		MIMEType:    "application/json",
	}, s.handleLastReportResource)
}

// settingsInfo is the JSON view of the active settings. API keys are
// never exposed, only the name of the variable holding one.
type settingsInfo struct {
	Provider    string  `json:"provider"`
	Model       string  `json:"model"`
	BaseURL     string  `json:"base_url,omitempty"`
	APIKeyEnv   string  `json:"api_key_env,omitempty"`
	Dimensions  int     `json:"dimensions,omitempty"`
	RateLimit   float64 `json:"rate_limit,omitempty"`
	Workers     int     `json:"workers"`
	InputDir    string  `json:"input_dir"`
	DocumentDir string  `json:"document_dir"`
	OutputDir   string  `json:"output_dir"`
	OutputFile  string  `json:"output_file"`
}

// handleSettingsResource returns the active settings.
func (s *Server) handleSettingsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Settings == nil {
		return jsonResource(req.Params.URI, struct{}{})
	}

	settings, err := s.ports.Settings.Get()
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	info := settingsInfo{
		Provider:    settings.Embedding.Provider.String(),
		Model:       settings.Embedding.Model,
		BaseURL:     settings.Embedding.BaseURL,
		Dimensions:  settings.Embedding.Dimensions,
		RateLimit:   settings.Embedding.RateLimit,
		Workers:     settings.Pipeline.Workers,
		InputDir:    settings.Paths.InputDir,
		DocumentDir: settings.Paths.DocumentDir,
		OutputDir:   settings.Paths.OutputDir,
		OutputFile:  settings.Paths.OutputFile,
	}
	if settings.Embedding.Provider.RequiresAPIKey() {
		info.APIKeyEnv = settings.Embedding.APIKeyEnv
	}
	return jsonResource(req.Params.URI, info)
}

// handleLastReportResource returns the last report, or an error when no
// ranking has run yet.
func (s *Server) handleLastReportResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	report := s.lastReport()
	if report == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	return jsonResource(req.Params.URI, toOutput(report, 0))
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
