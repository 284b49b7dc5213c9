// Package domain defines the core business entities for personarank.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Task: The persona, job-to-be-done and document list driving a run
//   - TextChunk: A rankable block of text with its provenance
//   - ScoredChunk: A chunk paired with its relevance score and rank
//   - RunReport: The assembled output of one pipeline run
//   - Settings: Provider, path and worker configuration
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
