package domain

import "strings"

// ActionType - Внутренний числовой идентификатор команды хоста
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionInit
	ActionSetDifficulty
	ActionStartRound
	ActionAim
	ActionInteract
	ActionHint
	ActionToggleMode
	ActionEndRound
	ActionSubmitName
	ActionLeaderboard
)

// Маппинг для конвертации JSON -> Domain
var actionStringToCmd = map[string]ActionType{
	"INIT":           ActionInit,
	"SET_DIFFICULTY": ActionSetDifficulty,
	"START_ROUND":    ActionStartRound,
	"AIM":            ActionAim,
	"INTERACT":       ActionInteract,
	"HINT":           ActionHint,
	"TOGGLE_MODE":    ActionToggleMode,
	"END_ROUND":      ActionEndRound,
	"SUBMIT_NAME":    ActionSubmitName,
	"LEADERBOARD":    ActionLeaderboard,
}

// Маппинг для логов Domain -> String
var actionCmdToString = map[ActionType]string{
	ActionInit:          "INIT",
	ActionSetDifficulty: "SET_DIFFICULTY",
	ActionStartRound:    "START_ROUND",
	ActionAim:           "AIM",
	ActionInteract:      "INTERACT",
	ActionHint:          "HINT",
	ActionToggleMode:    "TOGGLE_MODE",
	ActionEndRound:      "END_ROUND",
	ActionSubmitName:    "SUBMIT_NAME",
	ActionLeaderboard:   "LEADERBOARD",
}

// ParseAction конвертирует строку из JSON в ActionType
func ParseAction(s string) ActionType {
	// Делаем нечувствительным к регистру для надежности
	upper := strings.ToUpper(strings.TrimSpace(s))
	if val, ok := actionStringToCmd[upper]; ok {
		return val
	}
	return ActionUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (a ActionType) String() string {
	if val, ok := actionCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}

// IsRoundAction сообщает, что команда исполняется внутри тика раунда,
// а не сервисом напрямую.
func (a ActionType) IsRoundAction() bool {
	switch a {
	case ActionAim, ActionInteract, ActionHint, ActionToggleMode, ActionEndRound:
		return true
	}
	return false
}
