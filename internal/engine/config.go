package engine

import (
	"hazard-server/internal/domain"
	"time"
)

// Config хранит параметры запуска движка
type Config struct {
	// Seed - мастер-зерно. От него зависят все раунды:
	// Round N Seed = MasterSeed + N. 0 - случайный сид на каждый раунд.
	Seed int64

	TickRate      int // Тиков в секунду
	RoundDuration time.Duration
	StartingHints int

	RandomizeObjectSpawn  bool
	RandomizePlayerSpawn  bool
	CheckObjectProperties bool
}

// NewConfig создает конфиг по умолчанию (случайный сид)
func NewConfig() Config {
	return Config{
		Seed:                 0,
		TickRate:             20,
		RoundDuration:        domain.DefaultRoundDuration,
		StartingHints:        3,
		RandomizeObjectSpawn: true,
	}
}

// TickDuration - шаг симуляции.
func (c Config) TickDuration() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 20
	}
	return time.Second / time.Duration(c.TickRate)
}
