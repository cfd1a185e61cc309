package config

import (
	"errors"
	"fmt"
	"hazard-server/internal/domain"
	"hazard-server/internal/engine"
	"hazard-server/pkg/logger"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config - настройки процесса. Читаются из окружения (и .env, если он есть).
type Config struct {
	Port string `env:"HZ_PORT" envDefault:"8080"`

	Seed          int64         `env:"HZ_SEED" envDefault:"0"`
	TickRate      int           `env:"HZ_TICK_RATE" envDefault:"20"`
	RoundDuration time.Duration `env:"HZ_ROUND_DURATION" envDefault:"300s"`
	StartingHints int           `env:"HZ_STARTING_HINTS" envDefault:"3"`

	LeaderboardSize   int               `env:"HZ_LEADERBOARD_SIZE" envDefault:"10"`
	DefaultDifficulty domain.Difficulty `env:"HZ_DEFAULT_DIFFICULTY" envDefault:"easy"`

	RandomizeObjectSpawn  bool `env:"HZ_RANDOMIZE_OBJECT_SPAWN" envDefault:"true"`
	RandomizePlayerSpawn  bool `env:"HZ_RANDOMIZE_PLAYER_SPAWN" envDefault:"false"`
	CheckObjectProperties bool `env:"HZ_CHECK_OBJECT_PROPERTIES" envDefault:"false"`

	SceneFile string `env:"HZ_SCENE_FILE"` // Пусто - встроенный каталог дома
	ReplayDir string `env:"HZ_REPLAY_DIR"` // Пусто - реплеи не пишутся
}

// Load читает .env (если есть) и переменные окружения.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	logger.Component("config").WithField("port", cfg.Port).Debug("Configuration loaded")
	return cfg, nil
}

// Validate отсекает значения, с которыми сервер не запустится.
func (c Config) Validate() error {
	switch {
	case c.TickRate <= 0:
		return fmt.Errorf("HZ_TICK_RATE must be positive, got %d", c.TickRate)
	case c.RoundDuration <= 0:
		return fmt.Errorf("HZ_ROUND_DURATION must be positive, got %s", c.RoundDuration)
	case c.LeaderboardSize <= 0:
		return fmt.Errorf("HZ_LEADERBOARD_SIZE must be positive, got %d", c.LeaderboardSize)
	case c.StartingHints < 0:
		return fmt.Errorf("HZ_STARTING_HINTS must not be negative, got %d", c.StartingHints)
	}
	return nil
}

// Engine переносит игровые настройки в конфиг движка.
func (c Config) Engine() engine.Config {
	return engine.Config{
		Seed:                  c.Seed,
		TickRate:              c.TickRate,
		RoundDuration:         c.RoundDuration,
		StartingHints:         c.StartingHints,
		RandomizeObjectSpawn:  c.RandomizeObjectSpawn,
		RandomizePlayerSpawn:  c.RandomizePlayerSpawn,
		CheckObjectProperties: c.CheckObjectProperties,
	}
}
