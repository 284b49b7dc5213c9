package driven

// ConfigStore holds settings as flat dotted keys such as "embedding.model".
// Typed getters return the zero value for missing or mistyped keys.
type ConfigStore interface {
	Get(key string) (any, bool)
	GetString(key string) string
	GetInt(key string) int
	GetFloat(key string) float64

	// Set stores value under key and persists it. A store that fails to
	// persist leaves the previous value in place.
	Set(key string, value any) error

	// Save writes every value to the backing file.
	Save() error

	// Load replaces the in-memory values with the backing file's contents.
	Load() error

	// Path names the backing file, or a placeholder for in-memory stores.
	Path() string
}
