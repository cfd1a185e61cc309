package engine

import "hazard-server/internal/domain"

// Внешние соседи раунда. Раунд только вызывает их и не ждет результата:
// все вызовы синхронные и завершаются внутри тика.

// Targeting сообщает, на какой объект сейчас смотрит игрок (nil - ни на какой).
type Targeting interface {
	CurrentTarget() *domain.SceneObject
}

// Outliner подсвечивает объект цветом результата.
type Outliner interface {
	ApplyOutline(obj *domain.SceneObject, color domain.OutlineColor)
}

// Audio проигрывает звуковой сигнал.
type Audio interface {
	Play(sound domain.Sound)
}

// UI - тексты интерфейса раунда.
type UI interface {
	DisplayHint(text string)
	DisplayScoreDelta(delta int)
	UpdateScoreText(score int)
	UpdateTimerText(seconds float64)
	UpdateModeText(hazardMode bool)
	UpdateHintsText(remaining int)
	DisableRoundUI()
}

// ReviewList - панель разбора после раунда.
type ReviewList interface {
	Add(obj *domain.SceneObject)
}

// Transition переводит хост на экран ввода имени.
type Transition interface {
	GoToNameEntry()
}

// ScoreSink принимает итог раунда (реестр сессии).
type ScoreSink interface {
	RecordPlayerScore(score int)
}

// Collaborators - все соседи раунда разом. Любое поле может быть nil,
// тогда соответствующий вызов пропускается.
type Collaborators struct {
	Targeting  Targeting
	Outliner   Outliner
	Audio      Audio
	UI         UI
	Review     ReviewList
	Transition Transition
	Scores     ScoreSink
}
