package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/homicide-etl/internal/adapters/driven/config/file"
	"github.com/custodia-labs/homicide-etl/internal/adapters/driven/spreadsheet/excel"
	"github.com/custodia-labs/homicide-etl/internal/adapters/driven/storage/csvfile"
	"github.com/custodia-labs/homicide-etl/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/homicide-etl/internal/core/domain"
	"github.com/custodia-labs/homicide-etl/internal/core/ports/driven"
	"github.com/custodia-labs/homicide-etl/internal/core/ports/driving"
	"github.com/custodia-labs/homicide-etl/internal/core/services"
	"github.com/custodia-labs/homicide-etl/internal/logger"
	"github.com/custodia-labs/homicide-etl/internal/stages"
)

// app holds the services wired for one command invocation.
type app struct {
	settings        domain.Settings
	settingsService *services.SettingsService

	pipeline driving.Pipeline
	verifier driving.Verifier

	store     driven.TableStore
	analytics driven.AnalyticsStore
}

// newApp resolves settings from the config file and flags and wires the
// services over the default adapters.
func newApp() (*app, error) {
	configStore, err := file.NewConfigStore(configPath())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger.Debug("Config: %s", configStore.Path())

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, err
	}
	if flagDir != "" {
		settings.Sources.Dir = flagDir
	}

	registry := stages.NewRegistry()
	stages.RegisterDefaults(registry)
	normaliser, err := services.NewNormaliser(registry, settings.Normalise)
	if err != nil {
		return nil, err
	}

	analytics, err := sqlite.NewStore()
	if err != nil {
		return nil, err
	}

	dir := settings.Sources.Dir
	selector := services.NewSourceSelector(os.DirFS(dir), dir, settings.Sources)
	locator := services.NewTableLocator(settings.Locator)
	opener := excel.NewOpener()
	store := csvfile.NewStore()

	return &app{
		settings:        *settings,
		settingsService: settingsService,
		pipeline: services.NewPipelineService(selector, services.NewLoader(opener, locator),
			normaliser, store, *settings),
		verifier:  services.NewVerifierService(selector, opener, locator, store, analytics, *settings),
		store:     store,
		analytics: analytics,
	}, nil
}

// inspector returns an inspector over path, or over the clean output when
// path is empty.
func (a *app) inspector(path string) driving.Inspector {
	if path == "" {
		path = services.OutputPath(a.settings.Sources.Dir, a.settings.Output.Clean)
	}
	return services.NewInspectorService(a.store, a.analytics, path)
}

// Close releases the analytics store.
func (a *app) Close() error {
	return a.analytics.Close()
}

func configPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	if flagDir != "" {
		return filepath.Join(flagDir, file.DefaultFileName)
	}
	return file.DefaultFileName
}
