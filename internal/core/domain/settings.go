package domain

const unknownDescription = "Unknown"

// StorageBackend selects the history persistence adapter.
type StorageBackend string

// Available storage backends.
const (
	// StorageBackendSQLite stores history in a SQLite database.
	StorageBackendSQLite StorageBackend = "sqlite"

	// StorageBackendTOML stores each history list as a TOML document.
	StorageBackendTOML StorageBackend = "toml"
)

// IsValid returns true if the backend is recognised.
func (b StorageBackend) IsValid() bool {
	switch b {
	case StorageBackendSQLite, StorageBackendTOML:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b StorageBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StorageBackend) Description() string {
	switch b {
	case StorageBackendSQLite:
		return "SQLite (single database file)"
	case StorageBackendTOML:
		return "TOML (one file per history list)"
	default:
		return unknownDescription
	}
}

// AllStorageBackends returns all available storage backends.
func AllStorageBackends() []StorageBackend {
	return []StorageBackend{StorageBackendSQLite, StorageBackendTOML}
}

// SearchSettings holds search behaviour configuration.
type SearchSettings struct {
	// Workers is the number of documents searched concurrently.
	// Zero means one worker per CPU.
	Workers int

	// SkipHidden excludes dot-prefixed files and directories.
	SkipHidden bool
}

// PDFSettings holds text extraction configuration.
type PDFSettings struct {
	// PdftotextPath is the pdftotext binary name or path.
	PdftotextPath string
}

// StorageSettings holds history persistence configuration.
type StorageSettings struct {
	// Backend selects the persistence adapter.
	Backend StorageBackend

	// DataDir is where history is stored. Empty means "data" under the
	// configuration directory.
	DataDir string
}

// AppSettings holds all application settings.
type AppSettings struct {
	Search  SearchSettings
	PDF     PDFSettings
	Storage StorageSettings
}

// DefaultPdftotextPath is the binary looked up on PATH when none is configured.
const DefaultPdftotextPath = "pdftotext"

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Search: SearchSettings{
			Workers:    0,
			SkipHidden: false,
		},
		PDF: PDFSettings{
			PdftotextPath: DefaultPdftotextPath,
		},
		Storage: StorageSettings{
			Backend: StorageBackendSQLite,
		},
	}
}
