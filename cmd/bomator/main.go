package main

import (
	"github.com/raphalinka/bomator/internal/config"
	"github.com/raphalinka/bomator/internal/handlers"
	"github.com/raphalinka/bomator/internal/llm"
	"github.com/raphalinka/bomator/internal/logging"
	"github.com/raphalinka/bomator/internal/monitoring"
	"github.com/raphalinka/bomator/internal/resolver"
	"github.com/raphalinka/bomator/internal/search"
	"github.com/raphalinka/bomator/internal/server"
	"github.com/raphalinka/bomator/internal/version"
)

func main() {
	logger := logging.NewLoggerWithService("bomator")

	config.LoadEnv(logger)

	logger.Info("Starting Bomator (BOM generation and link resolution API)")

	cfg := config.LoadConfig()

	healthChecker := monitoring.NewHealthChecker("bomator", version.Version)
	metricsCollector := monitoring.NewMetricsCollector("bomator", version.Version, version.GitCommit)

	healthChecker.AddCheck("llm", monitoring.OptionalConfigurationHealthCheck("BOM generation", map[string]string{
		"LLM_MODEL": cfg.LLMModel,
	}))
	healthChecker.AddCheck("catalog", monitoring.OptionalConfigurationHealthCheck("catalog resolution", map[string]string{
		"NEXAR_CLIENT_ID":     cfg.CatalogClientID,
		"NEXAR_CLIENT_SECRET": cfg.CatalogClientSecret,
	}))

	llmProvider, err := llm.NewProvider(llm.Config{
		Provider:  cfg.LLMProvider,
		Model:     cfg.LLMModel,
		APIKey:    cfg.LLMAPIKey,
		APIURL:    cfg.LLMAPIURL,
		MaxTokens: cfg.LLMMaxTokens,
	})
	if err != nil {
		logger.WithError(err).Warn("Failed to initialize LLM provider - BOM generation disabled")
		llmProvider = nil
	}

	searchProvider, err := search.NewProvider(search.Config{
		Provider: cfg.SearchProvider,
		APIKey:   cfg.SearchAPIKey,
		EngineID: cfg.SearchEngineID,
		APIURL:   cfg.SearchAPIURL,
		Timeout:  cfg.SearchTimeout,
	})
	if err != nil {
		logger.WithError(err).Warn("Failed to initialize search provider - web search fallback disabled")
		searchProvider = nil
	}

	catalog := resolver.NewCatalogResolver(resolver.CatalogResolverConfig{
		ClientID:     cfg.CatalogClientID,
		ClientSecret: cfg.CatalogClientSecret,
		Scope:        cfg.CatalogScope,
		TokenURL:     cfg.CatalogTokenURL,
		APIURL:       cfg.CatalogAPIURL,
		Logger:       logger,
	})
	if !catalog.Enabled() {
		logger.Warn("Catalog credentials not set - catalog resolution disabled")
	}

	prober := resolver.NewProber(cfg.ProbeTimeout)
	prices := resolver.NewPriceScraper(cfg.PriceFetchTimeout, nil)

	orchestrator := resolver.NewOrchestrator(resolver.OrchestratorConfig{
		Catalog:              catalog,
		Search:               searchProvider,
		Prober:               prober,
		Prices:               prices,
		EnableSearchFallback: cfg.EnableSearchFallback,
		Logger:               logger,
	})

	generator := llm.NewGenerator(llmProvider, logger)

	handler := handlers.NewHandler(handlers.HandlerConfig{
		Config:       cfg,
		Generator:    generator,
		Orchestrator: orchestrator,
		Catalog:      catalog,
		Search:       searchProvider,
		Logger:       logger,
	})

	router := server.SetupServiceRouter(logger, "bomator", healthChecker, metricsCollector)
	handler.RegisterRoutes(router.Group("/api"))

	serverConfig := server.DefaultConfig("bomator", cfg.Port)
	if err := server.Start(serverConfig, router, logger); err != nil {
		logger.WithError(err).Fatal("Server startup failed")
	}
}
