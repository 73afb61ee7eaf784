package driven

// ConfigStore holds settings as flat dot-separated keys such as
// "search.workers". Typed getters return the zero value when a key is
// missing or holds another type.
type ConfigStore interface {
	// Get returns the raw value and whether the key is set.
	Get(key string) (any, bool)

	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool

	// Set stores value and persists the whole configuration.
	Set(key string, value any) error

	// Keys lists every key currently set, sorted.
	Keys() []string

	// Save writes the configuration to its backing file.
	Save() error

	// Path identifies the backing file.
	Path() string
}
