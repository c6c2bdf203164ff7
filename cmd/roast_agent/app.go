package main

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"roast_agent/internal/app/port"
	"roast_agent/internal/app/provider"
	"roast_agent/internal/app/service"
	llmclient "roast_agent/internal/client"
	"roast_agent/internal/config"
	"roast_agent/internal/infrastructure/configloader"
	suiclient "roast_agent/internal/infrastructure/network/client"
	networkdefinition "roast_agent/internal/infrastructure/network/definition"
	"roast_agent/internal/pkg/logger"
)

// application holds the wired components shared by the commands.
type application struct {
	cfg          *config.Config
	zapLogger    *zap.Logger
	logger       port.Logger
	clients      *suiclient.SuiClientProvider
	roastService port.RoastService
}

// newApplication loads configuration and wires the roast pipeline.
// logLevel overrides the configured level when non-empty.
func newApplication(configPath, logLevel string) (*application, error) {
	cfg, err := configloader.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	zapLogger, err := logger.New(cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.SetGlobal(zapLogger)
	suiclient.RouteRPCLogs(logger.NewSlogHandler(zapLogger.Named("sui-rpc"), zapcore.WarnLevel))
	appLogger := logger.NewAdapter(zapLogger)

	if err := cfg.Validate(); err != nil {
		zapLogger.Warn("Configuration incomplete; roast requests will fail until it is fixed", zap.Error(err))
	}

	networks, err := networkdefinition.NewNetworkDefinitionProvider(appLogger, networkdefinition.Options{
		Enabled:        cfg.Sui.EnabledNetworks,
		Default:        cfg.Sui.Network,
		RPCURLOverride: cfg.Sui.RPCURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize networks: %w", err)
	}

	clients := suiclient.NewSuiClientProvider(cfg, appLogger)
	fetcher := provider.NewWalletDataProvider(networks, clients, appLogger)
	generator := llmclient.NewOpenRouterClient(cfg.OpenRouter, cfg.OpenRouterTimeout(), zapLogger)
	roastService := service.NewRoastService(networks, fetcher, generator, appLogger, cfg.FetchTimeout(), cfg.GenerateTimeout())

	zapLogger.Info("Roast pipeline initialized",
		zap.String("default_network", networks.DefaultNetwork().Identifier),
		zap.Strings("networks", networkIDs(networks)),
		zap.String("model", cfg.OpenRouter.Model),
		zap.Duration("fetch_timeout", cfg.FetchTimeout()),
		zap.Duration("generate_timeout", cfg.GenerateTimeout()),
	)

	return &application{
		cfg:          cfg,
		zapLogger:    zapLogger,
		logger:       appLogger,
		clients:      clients,
		roastService: roastService,
	}, nil
}

func networkIDs(np port.NetworkDefinitionProvider) []string {
	defs := np.GetAllNetworkDefinitions()
	ids := make([]string, 0, len(defs))
	for _, def := range defs {
		ids = append(ids, def.Identifier)
	}
	return ids
}

// Close releases network clients and flushes logs.
func (a *application) Close() {
	a.clients.Close()
	_ = a.zapLogger.Sync()
}
