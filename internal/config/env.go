package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Env holds process configuration read from environment variables.
// A `.env` file, when present, is loaded by main before parsing.
type Env struct {
	ConfigPath   string        `env:"GAMESERVER_CONFIG" envDefault:"./gameserver_config.json"`
	DBPath       string        `env:"GAMESERVER_DB" envDefault:"./data/gameserver.db"`
	JWTSecret    string        `env:"JWT_SECRET"`
	SessionTTL   time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	RoomStaleTTL time.Duration `env:"ROOM_STALE_TTL" envDefault:"30m"`
	SweepEvery   time.Duration `env:"ROOM_SWEEP_INTERVAL" envDefault:"1m"`
}

// ParseEnv reads the environment into an Env struct.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, err
	}
	return e, nil
}
