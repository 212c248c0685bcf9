package main

import (
	"github.com/duddn2012/GameServer/internal/config"
	"github.com/duddn2012/GameServer/internal/logging"
	"github.com/duddn2012/GameServer/internal/storage"
)

func loadConfigOrExit(path string) *config.LoadedConfig {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("Missing or invalid game configuration", err, logging.Fields{"config_path": path, "hint": "create a gameserver_config.json with a 'skill_list' array of skills (name, effects[{type,amount}]) and an 'item_list' array of items (name, bonus{hp,atk,def,spd}); optional key: server.address"})
	}
	return cfg
}

func createRepositoryOrExit(dbPath string, cfg *config.LoadedConfig) storage.Repository {
	db, err := storage.OpenAndMigrate(dbPath, cfg.Skills, cfg.Items)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}
	return storage.NewSQLiteRepository(db)
}
