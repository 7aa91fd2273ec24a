package main

import (
	"time"

	"go.uber.org/zap"

	"honeypot-backend/internal/config"
	"honeypot-backend/internal/extractor"
	"honeypot-backend/internal/pipeline"
	"honeypot-backend/internal/repository"
	"honeypot-backend/internal/server"
	"honeypot-backend/internal/service"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err) // Should not happen in development
	}
	defer func() {
		_ = logger.Sync() // Flushes buffer, if any
	}()

	// Load configuration
	cfgPath := "configs/config.yml"
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// Initialize repositories
	var (
		convRepo  repository.ConversationRepository
		msgRepo   repository.MessageRepository
		intelRepo repository.IntelligenceRepository
		keyRepo   repository.APIKeyRepository
	)

	if cfg.Database.Driver == "memory" {
		logger.Info("Using in-memory store")
		mem := repository.NewMemoryRepositories()
		convRepo = mem.Conversations
		msgRepo = mem.Messages
		intelRepo = mem.Intelligence
		keyRepo = mem.APIKeys
	} else {
		db, err := repository.NewPostgresDB(cfg.Database.URL, logger)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		// Run migrations
		repository.MigrateDB(db, logger)

		convRepo = repository.NewConversationRepository(db, logger)
		msgRepo = repository.NewMessageRepository(db, logger)
		intelRepo = repository.NewIntelligenceRepository(db, logger)
		keyRepo = repository.NewAPIKeyRepository(db, logger)
	}

	// Seed the default API key and, if configured, the demo conversations
	if err := repository.SeedAPIKey(keyRepo, logger); err != nil {
		logger.Fatal("Failed to seed API key", zap.Error(err))
	}
	if cfg.Seed.DemoData {
		if err := repository.SeedDemoData(convRepo, msgRepo, intelRepo, logger); err != nil {
			logger.Fatal("Failed to seed demo data", zap.Error(err))
		}
	}

	// Initialize the extractor
	var ext extractor.Extractor
	if cfg.Extractor.Provider == "openai" {
		ext = extractor.NewOpenAI(extractor.OpenAIConfig{
			APIKey:  cfg.Extractor.APIKey,
			BaseURL: cfg.Extractor.BaseURL,
			Model:   cfg.Extractor.Model,
		}, logger)
	} else {
		logger.Info("Using mock extractor")
		ext = extractor.NewMock()
	}

	// Initialize the ingest pipeline
	resolver := pipeline.NewSessionResolver(convRepo, logger)
	pipe := pipeline.NewPipeline(
		resolver,
		convRepo,
		msgRepo,
		intelRepo,
		ext,
		logger,
		time.Duration(cfg.Extractor.TimeoutSeconds)*time.Second,
		cfg.Extractor.DefaultConfidence,
	)

	stats := service.NewStatsAggregator(convRepo, intelRepo, logger)

	// Initialize and run the server
	srv := server.NewServer(server.Deps{
		Conversations: convRepo,
		Messages:      msgRepo,
		Intelligence:  intelRepo,
		APIKeys:       keyRepo,
		Pipeline:      pipe,
		Stats:         stats,
	}, logger)
	srv.Run(cfg.Server.Port)
}
