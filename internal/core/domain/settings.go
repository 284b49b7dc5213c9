package domain

const unknownDescription = "Unknown"

// AIProvider identifies an embedding service provider.
type AIProvider string

// Available embedding providers.
const (
	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is the OpenAI cloud API or a compatible endpoint.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderHash is the offline feature-hashing embedder.
	AIProviderHash AIProvider = "hash"
)

// IsValid returns true if the provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderHash:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderHash:
		return "Feature hashing (offline)"
	default:
		return unknownDescription
	}
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider

	// Model is the embedding model name.
	Model string

	// BaseURL is the API endpoint.
	BaseURL string

	// APIKeyEnv names the environment variable holding the API key.
	APIKeyEnv string

	// Dimensions overrides the model's vector size when non-zero.
	Dimensions int

	// RateLimit caps remote requests per second. Zero means unlimited.
	RateLimit float64
}

// PathSettings holds input and output locations.
type PathSettings struct {
	// InputDir holds the task file.
	InputDir string

	// DocumentDir holds the documents, relative to InputDir unless absolute.
	DocumentDir string

	// OutputDir receives the report.
	OutputDir string

	// OutputFile is the report file name within OutputDir.
	OutputFile string
}

// PipelineSettings holds pipeline execution settings.
type PipelineSettings struct {
	// Workers bounds parallel extraction. Values below 1 mean one worker per CPU.
	Workers int
}

// Settings holds all application settings.
type Settings struct {
	Embedding EmbeddingSettings
	Paths     PathSettings
	Pipeline  PipelineSettings
}

// Default setting values.
const (
	DefaultEmbeddingModel = "all-minilm"
	DefaultInputDir       = "input"
	DefaultDocumentDir    = "pdfs"
	DefaultOutputDir      = "output"
	DefaultOutputFile     = "challenge1b_output.json"
	DefaultAPIKeyEnv      = "OPENAI_API_KEY"
)

// DefaultSettings returns settings with sensible defaults.
// The default model is all-MiniLM-L6-v2 served by Ollama.
func DefaultSettings() Settings {
	return Settings{
		Embedding: EmbeddingSettings{
			Provider:  AIProviderOllama,
			Model:     DefaultEmbeddingModel,
			APIKeyEnv: DefaultAPIKeyEnv,
		},
		Paths: PathSettings{
			InputDir:    DefaultInputDir,
			DocumentDir: DefaultDocumentDir,
			OutputDir:   DefaultOutputDir,
			OutputFile:  DefaultOutputFile,
		},
	}
}

// DefaultEmbeddingModels returns default models for each embedding provider.
func DefaultEmbeddingModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama: DefaultEmbeddingModel,
		AIProviderOpenAI: "text-embedding-3-small",
		AIProviderHash:   "hash-384",
	}
}

// EmbeddingDimensions returns the vector dimensions for known models.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		// Ollama models
		"nomic-embed-text":  768,
		"mxbai-embed-large": 1024,
		"all-minilm":        384,
		// OpenAI models
		"text-embedding-3-small": 1536,
		"text-embedding-3-large": 3072,
		"text-embedding-ada-002": 1536,
	}
}

// AllEmbeddingProviders returns providers that support embeddings.
func AllEmbeddingProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderHash,
	}
}
