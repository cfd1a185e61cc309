package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Difficulty - уровень сложности раунда. Значения совпадают с порядковыми
// номерами меню выбора (1..3), 0 - неизвестная сложность.
type Difficulty uint8

const (
	DifficultyUnknown Difficulty = iota
	DifficultyEasy
	DifficultyMedium
	DifficultyHard
)

// Difficulties - все допустимые сложности в порядке меню.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

var difficultyNames = map[Difficulty]string{
	DifficultyEasy:   "easy",
	DifficultyMedium: "medium",
	DifficultyHard:   "hard",
}

// ParseDifficulty принимает имя ("hard") или номер ("3").
func ParseDifficulty(s string) Difficulty {
	s = strings.ToLower(strings.TrimSpace(s))
	for d, name := range difficultyNames {
		if name == s {
			return d
		}
	}
	if n, err := strconv.Atoi(s); err == nil {
		d := Difficulty(n)
		if d.Valid() {
			return d
		}
	}
	return DifficultyUnknown
}

func (d Difficulty) String() string {
	if name, ok := difficultyNames[d]; ok {
		return name
	}
	return "unknown"
}

// Valid сообщает, что значение входит в перечисление.
func (d Difficulty) Valid() bool {
	return d >= DifficultyEasy && d <= DifficultyHard
}

// MarshalText позволяет писать сложность в JSON строкой.
func (d Difficulty) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText принимает и имя, и номер.
func (d *Difficulty) UnmarshalText(data []byte) error {
	parsed := ParseDifficulty(string(data))
	if parsed == DifficultyUnknown {
		return fmt.Errorf("%w: %q", ErrUnknownDifficulty, string(data))
	}
	*d = parsed
	return nil
}

// DifficultyProfile - фиксированная настройка сложности.
type DifficultyProfile struct {
	// Множитель очков: на сложных уровнях награда меньше, а штраф больше.
	PointMultiplier float64 `json:"pointMultiplier"`
	// Максимум объектов, которые можно отключить в одной категории.
	MaxDisabledItems int `json:"maxDisabledItems"`
	// Вероятность, что hazard/safety останется на сцене.
	HazardSafetySpawnRate float64 `json:"hazardSafetySpawnRate"`
	// Вероятность, что innocuous останется на сцене.
	InnocuousSpawnRate float64 `json:"innocuousSpawnRate"`
}

// Чем сложнее, тем меньше опасностей/средств защиты и больше приманок.
var profiles = map[Difficulty]DifficultyProfile{
	DifficultyEasy: {
		PointMultiplier:       1,
		MaxDisabledItems:      10,
		HazardSafetySpawnRate: 0.8,
		InnocuousSpawnRate:    0.2,
	},
	DifficultyMedium: {
		PointMultiplier:       0.75,
		MaxDisabledItems:      15,
		HazardSafetySpawnRate: 0.5,
		InnocuousSpawnRate:    0.5,
	},
	DifficultyHard: {
		PointMultiplier:       0.5,
		MaxDisabledItems:      20,
		HazardSafetySpawnRate: 0.2,
		InnocuousSpawnRate:    0.8,
	},
}

// Profile возвращает профиль сложности или ErrUnknownDifficulty.
func (d Difficulty) Profile() (DifficultyProfile, error) {
	p, ok := profiles[d]
	if !ok {
		return DifficultyProfile{}, fmt.Errorf("%w: %d", ErrUnknownDifficulty, d)
	}
	return p, nil
}

// BoardKind - таблица рекордов: одна на каждую сложность плюс общая.
type BoardKind uint8

const (
	BoardEasy     = BoardKind(DifficultyEasy)
	BoardMedium   = BoardKind(DifficultyMedium)
	BoardHard     = BoardKind(DifficultyHard)
	BoardCombined = BoardKind(DifficultyHard + 1)
)

// BoardKinds - все таблицы в порядке отображения.
var BoardKinds = []BoardKind{BoardEasy, BoardMedium, BoardHard, BoardCombined}

// BoardFor возвращает таблицу конкретной сложности.
func BoardFor(d Difficulty) BoardKind {
	return BoardKind(d)
}

// ParseBoardKind принимает "combined" или имя/номер сложности.
func ParseBoardKind(s string) (BoardKind, bool) {
	if strings.EqualFold(strings.TrimSpace(s), "combined") {
		return BoardCombined, true
	}
	d := ParseDifficulty(s)
	if d == DifficultyUnknown {
		return 0, false
	}
	return BoardFor(d), true
}

func (k BoardKind) String() string {
	if k == BoardCombined {
		return "combined"
	}
	return Difficulty(k).String()
}
