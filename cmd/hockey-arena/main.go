package main

import (
	"os"

	"github.com/agorshkov/hockey-arena/internal/api"
	"github.com/agorshkov/hockey-arena/internal/config"
	"github.com/agorshkov/hockey-arena/internal/constants"
	"github.com/agorshkov/hockey-arena/internal/logging"
	"github.com/agorshkov/hockey-arena/internal/service"
	"github.com/agorshkov/hockey-arena/internal/storage"

	"github.com/joho/godotenv"
)

func main() {
	// Optional .env for local development; real deployments set env vars.
	_ = godotenv.Load()

	// Path may be provided via ARENA_CONFIG or defaults to
	// ./arena_config.json in the current working directory.
	configPath := os.Getenv(constants.EnvArenaConfig)
	if configPath == "" {
		configPath = "./arena_config.json"
	}
	cfg := loadConfigOrExit(configPath)
	applyEngineSettings(cfg)

	dbPath := os.Getenv(constants.EnvArenaDB)
	if dbPath == "" {
		dbPath = "./data/arena.db"
	}
	repo := createRepositoryOrExit(dbPath, cfg)

	arena := service.NewArena()
	handler := api.NewMatchHandler(repo, arena, cfg.ActionTimeout)

	startTimeoutScanner(repo, arena, cfg.ActionTimeout)

	router := buildRouter(handler)

	addr := cfg.ServerAddress
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}

func createRepositoryOrExit(dbPath string, cfg *config.LoadedConfig) storage.Repository {
	db, err := storage.OpenAndMigrate(dbPath, cfg.Cards)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, logging.Fields{"db_path": dbPath})
	}
	return storage.NewSQLiteRepository(db)
}
