// Package app wires configuration, providers, storage and handlers together.
package app

import (
	"context"
	"fmt"

	"github.com/bobmcallan/vire-credit/internal/analysis"
	"github.com/bobmcallan/vire-credit/internal/cache"
	"github.com/bobmcallan/vire-credit/internal/common"
	"github.com/bobmcallan/vire-credit/internal/config"
	"github.com/bobmcallan/vire-credit/internal/credit"
	"github.com/bobmcallan/vire-credit/internal/disputes"
	"github.com/bobmcallan/vire-credit/internal/gateway"
	"github.com/bobmcallan/vire-credit/internal/handlers"
	"github.com/bobmcallan/vire-credit/internal/importer"
	"github.com/bobmcallan/vire-credit/internal/interfaces"
	"github.com/bobmcallan/vire-credit/internal/mcp"
	"github.com/bobmcallan/vire-credit/internal/providers"
	"github.com/bobmcallan/vire-credit/internal/providers/array"
	"github.com/bobmcallan/vire-credit/internal/providers/plaid"
	"github.com/bobmcallan/vire-credit/internal/storage"
)

// App holds all application components and dependencies.
type App struct {
	Config  *config.Config
	Logger  *common.Logger
	Storage interfaces.StorageManager
	Gateway *gateway.Gateway
	Service *credit.Service

	// HTTP handlers
	HealthHandler     *handlers.HealthHandler
	VersionHandler    *handlers.VersionHandler
	CreditHandler     *handlers.CreditHandler
	DisputeHandler    *handlers.DisputeHandler
	MonitoringHandler *handlers.MonitoringHandler
	MCPHandler        *mcp.Handler
}

// New initializes the application with all dependencies.
func New(cfg *config.Config, logger *common.Logger) (*App, error) {
	a := &App{
		Config: cfg,
		Logger: logger,
	}

	store, err := storage.NewStorageManager(logger, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	a.Storage = store

	primary := array.New(a.transport(config.ProviderArray), logger)
	var fallback providers.LinkFlowProvider
	if cfg.Providers.Fallback == config.ProviderPlaid {
		fallback = plaid.New(a.transport(config.ProviderPlaid), logger)
	}
	a.Gateway = gateway.New(primary, fallback, logger)

	engine := analysis.NewEngine(cfg.Analysis.Policy())
	orchestrator := disputes.New(a.Gateway, cfg.Disputes.ResolutionDays, logger)
	analysisCache := cache.New(cfg.Cache.TTLDuration(), cfg.Cache.MaxEntries)
	a.Service = credit.NewService(a.Gateway, orchestrator, engine, store, analysisCache, logger)

	a.initHandlers()

	logger.Info().
		Str("environment", cfg.Providers.Environment).
		Str("primary", a.Gateway.PrimaryName()).
		Str("fallback", a.Gateway.FallbackName()).
		Msg("application initialization complete")

	return a, nil
}

// transport builds the transport for a named provider. The mock environment,
// or a provider with no API key, gets the offline mock transport.
func (a *App) transport(name string) providers.Transport {
	pc, _ := a.Config.Providers.Provider(name)
	env := providers.Environment(a.Config.Providers.Environment)

	if env == providers.EnvironmentMock || pc.APIKey == "" {
		if env != providers.EnvironmentMock {
			a.Logger.Warn().
				Str("provider", name).
				Str("environment", string(env)).
				Msg("no API key configured, using offline mock transport")
		}
		switch name {
		case config.ProviderPlaid:
			return plaid.NewMockTransport()
		default:
			return array.NewMockTransport()
		}
	}

	return providers.NewHTTPTransport(name, pc.BaseURL(string(env)), pc.APIKey, pc.TimeoutDuration(), a.Logger)
}

// initHandlers initializes all HTTP handlers.
func (a *App) initHandlers() {
	a.HealthHandler = handlers.NewHealthHandler(a.Logger, a.Config.Providers.Environment, a.Gateway.PrimaryName(), a.Gateway.FallbackName())
	a.VersionHandler = handlers.NewVersionHandler(a.Logger)
	a.CreditHandler = handlers.NewCreditHandler(a.Logger, a.Service)
	a.DisputeHandler = handlers.NewDisputeHandler(a.Logger, a.Service)
	a.MonitoringHandler = handlers.NewMonitoringHandler(a.Logger, a.Service)
	a.MCPHandler = mcp.NewHandler(a.Service, a.Logger)

	a.Logger.Debug().Msg("HTTP handlers initialized")
}

// ImportReports loads fixture reports from a JSON file into storage.
func (a *App) ImportReports(ctx context.Context, path string) (int, error) {
	return importer.ImportReports(ctx, a.Storage.ReportStorage(), a.Logger, path)
}

// Close closes all application resources.
func (a *App) Close() error {
	if a.Storage == nil {
		return nil
	}
	return a.Storage.Close()
}
