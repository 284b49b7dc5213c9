// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - EmbeddingService: Turns text into vectors (Ollama, OpenAI, hashing)
//   - PageReader: Opens one document format as pages of text blocks
//   - ReaderRegistry: Selects the appropriate page reader
//   - TaskLoader: Reads and discovers task configuration files
//   - ReportWriter / ReportReader: Report persistence
//   - ConfigStore: Application configuration
//   - AIConfigValidator: Connectivity checks for configured providers
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
