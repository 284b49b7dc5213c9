// Package mcp provides an MCP (Model Context Protocol) server adapter for personarank.
// It lets AI assistants rank document sections for a persona and task.
package mcp

import "errors"

// ErrMissingPipeline is returned when the pipeline service is not provided.
var ErrMissingPipeline = errors.New("mcp: pipeline service is required")
