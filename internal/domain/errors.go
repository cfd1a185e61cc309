package domain

import "errors"

// InvalidInteraction: цель не интерактивна или уже обработана.
// Политика - лог и no-op, никогда не фатально.
var (
	ErrNotInteractable   = errors.New("object has no interaction state")
	ErrAlreadyInteracted = errors.New("object already interacted with")
	ErrAlreadyHinted     = errors.New("object already hinted")
	ErrRoundEnded        = errors.New("round has ended")
	ErrNoTarget          = errors.New("nothing is targeted")
)

// ConfigurationError: лог уровня error и безопасное значение по умолчанию.
var (
	ErrUnknownDifficulty = errors.New("unknown difficulty")
	ErrEmptySpawnGroup   = errors.New("spawn group has no children")
)

// Ошибки сессии (слой хоста).
var (
	ErrRoundInProgress = errors.New("round already in progress")
	ErrNoActiveRound   = errors.New("no active round")
	ErrNoPendingScore  = errors.New("no finished round awaiting a name")
	ErrEmptyName       = errors.New("player name is empty")
)

// IsInvalidInteraction сообщает, что ошибка относится к категории
// "недопустимое взаимодействие" и должна просто игнорироваться.
func IsInvalidInteraction(err error) bool {
	return errors.Is(err, ErrNotInteractable) ||
		errors.Is(err, ErrAlreadyInteracted) ||
		errors.Is(err, ErrAlreadyHinted) ||
		errors.Is(err, ErrRoundEnded) ||
		errors.Is(err, ErrNoTarget)
}
