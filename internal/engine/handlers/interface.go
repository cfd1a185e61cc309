package handlers

import (
	"encoding/json"
	"hazard-server/internal/domain"
)

// TargetSelector описывает прицел хоста: то, на что сейчас смотрит игрок.
// Мост хоста в engine неявно реализует этот интерфейс.
type TargetSelector interface {
	Aim(id domain.ObjectID) error
	CurrentTarget() *domain.SceneObject
}

// Context передает хендлеру ввод текущего тика.
// Хендлер не трогает раунд напрямую: он только выставляет флаги ввода,
// а раунд применяет их в Step в фиксированном порядке.
type Context struct {
	RoundID string
	Tick    int
	Input   *domain.TickInput // Ввод, накопленный за тик
	Targets TargetSelector
}

// Result - возвращает результат выполнения команды.
// Хендлер НЕ пишет в логи сервиса напрямую, он возвращает данные.
type Result struct {
	Msg     string // Текст лога
	MsgType string // Тип лога (INFO, ERROR)
}

// HandlerFunc - это контракт для любой команды раунда (AIM, INTERACT, etc).
type HandlerFunc func(ctx Context, payload json.RawMessage) (Result, error)

// EmptyResult - вспомогательная функция для пустого успешного ответа
func EmptyResult() Result {
	return Result{}
}
