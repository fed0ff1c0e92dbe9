package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/alexanderramin/bazaar/internal/api"
	"github.com/alexanderramin/bazaar/internal/assistant"
	"github.com/alexanderramin/bazaar/internal/catalog"
	"github.com/alexanderramin/bazaar/internal/cli"
	"github.com/alexanderramin/bazaar/internal/config"
	"github.com/alexanderramin/bazaar/internal/db"
	"github.com/alexanderramin/bazaar/internal/features"
	"github.com/alexanderramin/bazaar/internal/llm"
	"github.com/alexanderramin/bazaar/internal/logging"
	"github.com/alexanderramin/bazaar/internal/negotiation"
	"github.com/alexanderramin/bazaar/internal/recommend"
	"github.com/alexanderramin/bazaar/internal/repository"
	"github.com/alexanderramin/bazaar/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load("")
	if err != nil {
		return err
	}
	logger := logging.Init(cfg.Log)

	database, err := db.OpenDB(cfg.Catalog.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	productRepo := repository.NewSQLiteProductRepo(database)
	importRepo := repository.NewSQLiteImportRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	extractor := features.NewExtractor()
	store := service.NewStore(productRepo, extractor, features.DefaultWeights(), recommend.DefaultConfig())
	ctx := context.Background()
	if err := store.Load(ctx); err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	observer := service.NewLogUseCaseObserver(logging.Component("service"))
	importSvc := service.NewImportService(catalog.NewLoader(extractor, nil), store, uow, observer)

	// First run: seed an empty catalog from the data directory when present.
	if len(store.Products()) == 0 && cfg.Catalog.DataDir != "" {
		if info, err := os.Stat(cfg.Catalog.DataDir); err == nil && info.IsDir() {
			if _, err := importSvc.ImportDir(ctx, cfg.Catalog.DataDir); err != nil {
				logger.Warn().Err(err).Str("dir", cfg.Catalog.DataDir).Msg("initial catalog import failed")
			}
		}
	}

	// The LLM bridge is optional; the assistant falls back to canned replies.
	var client llm.LLMClient
	if cfg.LLM.Enabled {
		llmLogger := logging.Component("llm")
		var llmObserver llm.Observer = llm.NoopObserver{}
		if cfg.LLM.LogCalls {
			llmObserver = llm.NewLogObserver(llmLogger)
		}
		client = llm.WithBreaker(llm.NewOllamaClient(cfg.LLM, llmObserver), cfg.LLM.Breaker, llmLogger)
	}
	bot := assistant.New(store, client, logging.Component("assistant"))

	// Wire services
	services := api.Services{
		Catalog:     service.NewCatalogService(store, productRepo, importRepo),
		Negotiation: service.NewNegotiationService(store, negotiation.NewEngine(cfg.Negotiation, nil), observer),
		Recommend:   service.NewRecommendationService(store, observer),
		Cart:        service.NewCartService(store, observer),
		Chat:        service.NewChatService(bot, observer),
	}

	app := &cli.App{
		Catalog:     services.Catalog,
		Import:      importSvc,
		Negotiation: services.Negotiation,
		Recommend:   services.Recommend,
		Cart:        services.Cart,
		Chat:        services.Chat,
		DataDir:     cfg.Catalog.DataDir,
		Serve: func(ctx context.Context) error {
			return api.NewServer(cfg.Server, services, logger).ListenAndServe(ctx)
		},
	}

	// Detect interactive terminal for prompts and the chat view.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
