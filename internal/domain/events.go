package domain

// EventType - Внутренний числовой идентификатор события, которое ядро
// отдает хосту (подсветка, звук, текст интерфейса).
type EventType uint8

const (
	EventUnknown EventType = iota
	EventOutline
	EventSound
	EventHint
	EventScoreDelta
	EventPhase
	EventRoundUI
)

// Маппинг для логов Domain -> String
var eventCmdToString = map[EventType]string{
	EventOutline:    "OUTLINE",
	EventSound:      "SOUND",
	EventHint:       "HINT",
	EventScoreDelta: "SCORE_DELTA",
	EventPhase:      "PHASE",
	EventRoundUI:    "ROUND_UI",
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (a EventType) String() string {
	if val, ok := eventCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}

// OutlineColor - цвет обводки объекта после действия игрока.
type OutlineColor string

const (
	OutlineGreen  OutlineColor = "green"  // верно
	OutlineRed    OutlineColor = "red"    // ошибка
	OutlineOrange OutlineColor = "orange" // подсказка
)

// Sound - звуковой сигнал.
type Sound string

const (
	SoundSuccess Sound = "success"
	SoundFail    Sound = "fail"
	SoundHint    Sound = "hint"
)

// Phase - экран, на который хост должен перейти.
type Phase string

const (
	PhaseRound     Phase = "ROUND"
	PhaseNameEntry Phase = "NAME_ENTRY"
)
