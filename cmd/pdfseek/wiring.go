package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	configfile "github.com/custodia-labs/pdfseek/internal/adapters/driven/config/file"
	"github.com/custodia-labs/pdfseek/internal/adapters/driven/filesystem"
	"github.com/custodia-labs/pdfseek/internal/adapters/driven/opener"
	"github.com/custodia-labs/pdfseek/internal/adapters/driven/pdf"
	historyfile "github.com/custodia-labs/pdfseek/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/pdfseek/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/pdfseek/internal/adapters/driving/cli"
	"github.com/custodia-labs/pdfseek/internal/core/domain"
	"github.com/custodia-labs/pdfseek/internal/core/ports/driven"
	"github.com/custodia-labs/pdfseek/internal/core/services"
	"github.com/custodia-labs/pdfseek/internal/logger"
)

// extractingCommands need pdftotext; others skip the availability check.
var extractingCommands = map[string]bool{
	"search": true,
	"tui":    true,
	"serve":  true,
}

// bootstrap wires adapters to services for one command invocation.
func bootstrap(opts cli.RootOptions) (*cli.Services, error) {
	configDir := opts.ConfigDir
	if configDir == "" {
		dir, err := configfile.DefaultConfigDir()
		if err != nil {
			return nil, err
		}
		configDir = dir
	}

	configStore, err := configfile.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	var warnings []string
	if err := settingsService.Validate(); err != nil {
		warnings = append(warnings, err.Error())
	}

	dataDir := settings.Storage.DataDir
	if dataDir == "" {
		dataDir = filepath.Join(configDir, "data")
	}
	gateway, closeGateway, err := openHistory(settings.Storage.Backend, dataDir)
	if err != nil {
		return nil, fmt.Errorf("opening %s history: %w", settings.Storage.Backend, err)
	}
	logger.Debug("History backend %s in %s", settings.Storage.Backend, dataDir)

	historyService := services.NewHistoryService(gateway)
	if err := historyService.Load(context.Background()); err != nil {
		warnings = append(warnings, err.Error())
	}

	if extractingCommands[opts.Command] {
		if err := pdf.CheckAvailable(settings.PDF.PdftotextPath); err != nil {
			warnings = append(warnings, fmt.Sprintf("%v\n%s", err, pdf.InstallInstructions()))
		}
	}

	searchService := services.NewSearchService(
		filesystem.NewTree(),
		pdf.New(settings.PDF.PdftotextPath),
		historyService,
	)
	searchService.SetDefaultWorkers(settings.Search.Workers)

	return &cli.Services{
		Search:   searchService,
		History:  historyService,
		Actions:  services.NewResultActionService(opener.New(), historyService),
		Settings: settingsService,
		Warnings: warnings,
		Close:    closeGateway,
	}, nil
}

// openHistory returns the gateway for backend and a function releasing it.
func openHistory(backend domain.StorageBackend, dataDir string) (driven.HistoryGateway, func() error, error) {
	switch backend {
	case domain.StorageBackendTOML:
		gateway, err := historyfile.NewHistoryGateway(dataDir)
		if err != nil {
			return nil, nil, err
		}
		return gateway, func() error { return nil }, nil
	case domain.StorageBackendSQLite:
		store, err := sqlite.NewStore(dataDir)
		if err != nil {
			return nil, nil, err
		}
		return store.HistoryGateway(), store.Close, nil
	default:
		return nil, nil, errors.New("unknown storage backend")
	}
}
