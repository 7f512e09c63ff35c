package main

import (
	"github.com/agorshkov/hockey-arena/internal/config"
	"github.com/agorshkov/hockey-arena/internal/engine"
	"github.com/agorshkov/hockey-arena/internal/logging"
)

func loadConfigOrExit(path string) *config.LoadedConfig {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("Missing or invalid arena configuration", err, logging.Fields{"config_path": path, "hint": "create an arena_config.json with a 'card_list' array of card objects (card_id,name,pos,country,born,weight,rarity,points) and optional keys: server.address, season_year, action_timeout_seconds, event_templates"})
	}
	return cfg
}

// applyEngineSettings pushes config overrides into the engine: the season
// anchor for age calculation and any replacement flavor-text pools.
func applyEngineSettings(cfg *config.LoadedConfig) {
	if cfg == nil {
		return
	}
	if cfg.SeasonYear > 0 {
		engine.SetSeasonYear(cfg.SeasonYear)
	}
	for kind, lines := range cfg.EventTemplates {
		engine.SetTemplates(kind, lines)
	}
}
