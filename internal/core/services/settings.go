package services

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/custodia-labs/pdfseek/internal/core/domain"
	"github.com/custodia-labs/pdfseek/internal/core/ports/driven"
	"github.com/custodia-labs/pdfseek/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keySearchWorkers    = "search.workers"
	keySearchSkipHidden = "search.skip_hidden"
	keyPdftotextPath    = "pdf.pdftotext_path"
	keyStorageBackend   = "storage.backend"
	keyStorageDataDir   = "storage.data_dir"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Search: domain.SearchSettings{
			Workers:    s.getInt(keySearchWorkers, defaults.Search.Workers),
			SkipHidden: s.getBool(keySearchSkipHidden, defaults.Search.SkipHidden),
		},
		PDF: domain.PDFSettings{
			PdftotextPath: s.getString(keyPdftotextPath, defaults.PDF.PdftotextPath),
		},
		Storage: domain.StorageSettings{
			Backend: s.getBackend(defaults.Storage.Backend),
			DataDir: s.getString(keyStorageDataDir, defaults.Storage.DataDir),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := s.configStore.Set(keySearchWorkers, settings.Search.Workers); err != nil {
		return fmt.Errorf("save search workers: %w", err)
	}
	if err := s.configStore.Set(keySearchSkipHidden, settings.Search.SkipHidden); err != nil {
		return fmt.Errorf("save search skip_hidden: %w", err)
	}
	if err := s.configStore.Set(keyPdftotextPath, settings.PDF.PdftotextPath); err != nil {
		return fmt.Errorf("save pdftotext path: %w", err)
	}
	if err := s.configStore.Set(keyStorageBackend, settings.Storage.Backend.String()); err != nil {
		return fmt.Errorf("save storage backend: %w", err)
	}
	if settings.Storage.DataDir != "" {
		if err := s.configStore.Set(keyStorageDataDir, settings.Storage.DataDir); err != nil {
			return fmt.Errorf("save storage data_dir: %w", err)
		}
	}

	return nil
}

// Set updates a single setting from its string form.
func (s *SettingsService) Set(key, value string) error {
	value = strings.TrimSpace(value)

	switch key {
	case keySearchWorkers:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s must be a non-negative integer", domain.ErrInvalidInput, key)
		}
		return s.configStore.Set(key, n)
	case keySearchSkipHidden:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		return s.configStore.Set(key, b)
	case keyPdftotextPath:
		if value == "" {
			return fmt.Errorf("%w: %s cannot be empty", domain.ErrInvalidInput, key)
		}
		return s.configStore.Set(key, value)
	case keyStorageBackend:
		backend := domain.StorageBackend(strings.ToLower(value))
		if !backend.IsValid() {
			return fmt.Errorf("%w: invalid storage backend: %s", domain.ErrInvalidInput, value)
		}
		return s.configStore.Set(key, backend.String())
	case keyStorageDataDir:
		return s.configStore.Set(key, value)
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
}

// Keys returns every recognised setting key.
func (s *SettingsService) Keys() []string {
	return []string{
		keySearchWorkers,
		keySearchSkipHidden,
		keyPdftotextPath,
		keyStorageBackend,
		keyStorageDataDir,
	}
}

// Validate checks that current settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if settings.Search.Workers < 0 {
		return fmt.Errorf("invalid worker count: %d", settings.Search.Workers)
	}
	if !settings.Storage.Backend.IsValid() {
		return fmt.Errorf("invalid storage backend: %s", settings.Storage.Backend)
	}
	if settings.PDF.PdftotextPath == "" {
		return fmt.Errorf("pdftotext path is empty")
	}

	known := s.Keys()
	for _, key := range s.configStore.Keys() {
		if !slices.Contains(known, key) {
			return fmt.Errorf("unknown setting %q in %s", key, s.configStore.Path())
		}
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// getString returns a string config value or the default.
func (s *SettingsService) getString(key, defaultVal string) string {
	if val := s.configStore.GetString(key); val != "" {
		return val
	}
	return defaultVal
}

// getInt returns an int config value or the default.
func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

// getBool returns a bool config value or the default.
func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

// getBackend returns the storage backend or the default if unset or invalid.
func (s *SettingsService) getBackend(defaultVal domain.StorageBackend) domain.StorageBackend {
	backend := domain.StorageBackend(s.configStore.GetString(keyStorageBackend))
	if backend.IsValid() {
		return backend
	}
	return defaultVal
}
