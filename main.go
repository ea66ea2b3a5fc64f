package main

import (
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"

	"rockfall-backend/internal/config"
	"rockfall-backend/internal/engine"
	"rockfall-backend/internal/notifier"
	"rockfall-backend/internal/predictor"
	"rockfall-backend/internal/repository"
	"rockfall-backend/internal/server"
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

	// Database connection
	db, err := repository.NewPostgresDB(cfg.Database.URL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	repository.MigrateDB(db, logger)

	// Initialize repository
	predictionRepo := repository.NewPredictionRepository(db, logger)

	// Initialize the scoring engine
	eng := engine.NewProcessEngine(cfg.Engine.Command, cfg.Engine.ScriptPath, logger)
	logger.Info("Scoring engine configured",
		zap.String("command", cfg.Engine.Command),
		zap.String("script_path", cfg.Engine.ScriptPath))

	// Initialize Telegram alert notifier (optional)
	tgNotifier, err := notifier.NewTelegramNotifier(cfg.Alerts.TelegramBotToken, cfg.Alerts.TelegramChatID, logger)
	if err != nil {
		logger.Warn("Failed to initialize Telegram notifier, continuing without it", zap.Error(err))
		tgNotifier = nil
	}

	// A nil *TelegramNotifier must not end up inside the interface value.
	var alertNotifier predictor.AlertNotifier
	if tgNotifier != nil {
		alertNotifier = tgNotifier
	}

	// Initialize the risk pipeline processor
	processor := predictor.NewProcessor(eng, predictionRepo, alertNotifier, logger)

	// Initialize and run the server
	srv := server.NewServer(processor, predictionRepo, logger, logrus.New())
	srv.Run(cfg.Server.Port)
}
