package domain

import "encoding/json"

// ReplayAction - это запись одной команды хоста, примененной в тике Tick
type ReplayAction struct {
	Tick    int             `json:"tick"`
	Action  ActionType      `json:"action"`  // Что сделал
	Payload json.RawMessage `json:"payload"` // С какими параметрами
}

// ReplaySession - полная запись раунда. Сид, сложность и частота тиков
// однозначно восстанавливают сцену и таймер.
type ReplaySession struct {
	RoundID    string         `json:"roundId"`
	Seed       int64          `json:"seed"` // Зерно выбора объектов
	Difficulty Difficulty     `json:"difficulty"`
	TickRate   int            `json:"tickRate"`
	Timestamp  int64          `json:"timestamp"`
	FinalScore int            `json:"finalScore"`
	Actions    []ReplayAction `json:"actions"`
}
