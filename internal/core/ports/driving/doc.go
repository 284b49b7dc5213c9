// Package driving defines what the CLI, TUI and MCP adapters may ask of
// the core: run the pipeline, rank chunks, and read or change settings.
//
// Implementations live in internal/core/services.
package driving
