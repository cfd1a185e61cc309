package domain

import "time"

// DefaultRoundDuration - бюджет времени раунда.
const DefaultRoundDuration = 300 * time.Second

// RoundState - состояние одного раунда. Живет ровно один раунд.
type RoundState struct {
	Score          int           `json:"score"`
	HintsRemaining int           `json:"hintsRemaining"`
	HazardMode     bool          `json:"hazardMode"` // true - ищем опасности, false - средства безопасности
	TimeLeft       time.Duration `json:"timeLeft"`
	Active         bool          `json:"active"`
}

// NewRoundState создает состояние в начале раунда.
func NewRoundState(duration time.Duration, hints int) RoundState {
	if duration <= 0 {
		duration = DefaultRoundDuration
	}
	return RoundState{
		HintsRemaining: hints,
		HazardMode:     false,
		TimeLeft:       duration,
		Active:         true,
	}
}

// Expired - время вышло.
func (s RoundState) Expired() bool {
	return s.TimeLeft <= 0
}

// TargetedAction - INTERACT или HINT, привязанный к объекту, который был
// в прицеле в момент команды.
type TargetedAction struct {
	Kind   ActionType
	Target *SceneObject
}

// TickInput - ввод хоста, накопленный между двумя тиками.
// Сбрасывается после каждого тика.
// Interact и Hint действуют на текущую цель прицела, Targeted - каждое
// на свой объект в порядке прихода.
type TickInput struct {
	Toggle   bool             `json:"toggle,omitempty"`
	Interact bool             `json:"interact,omitempty"`
	Hint     bool             `json:"hint,omitempty"`
	Targeted []TargetedAction `json:"-"`
	End      bool             `json:"end,omitempty"`
}

// Empty - за тик ничего не пришло.
func (in TickInput) Empty() bool {
	return !in.Toggle && !in.Interact && !in.Hint && len(in.Targeted) == 0 && !in.End
}
