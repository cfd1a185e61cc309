package api

import (
	"encoding/json"
	"hazard-server/internal/domain"
)

// Типы сообщений сервера
const (
	TypeState       = "STATE"       // Полный снимок раунда (INIT, START_ROUND)
	TypeUpdate      = "UPDATE"      // Результат тика: события и состояние раунда
	TypeRoundEnd    = "ROUND_END"   // Раунд завершен, ждем имя игрока
	TypeLeaderboard = "LEADERBOARD" // Таблица рекордов
	TypeError       = "ERROR"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// ServerResponse это корневой объект, который сервер отправляет хосту.
// Хост (VR-клиент, браузер или бот) рисует по нему сцену и интерфейс.
type ServerResponse struct {
	// Type тип сообщения, см. константы Type*.
	Type string `json:"type"`

	// Tick номер тика раунда, после которого собрано сообщение.
	Tick int `json:"tick"`

	// SessionID сессия хоста, которой адресовано сообщение.
	SessionID string `json:"sessionId,omitempty"`

	// Round состояние текущего раунда.
	Round *RoundView `json:"round,omitempty"`

	// Events события тика в порядке возникновения: подсветка, звук, подсказка, очки.
	Events []EventView `json:"events,omitempty"`

	// Objects объекты сцены. Категория не раскрывается, пока объект не отмечен.
	Objects []ObjectView `json:"objects,omitempty"`

	// Review панель разбора: отмеченные и подсказанные объекты.
	Review []ReviewView `json:"review,omitempty"`

	// Leaderboard таблица рекордов (ответ на LEADERBOARD и после SUBMIT_NAME).
	Leaderboard *LeaderboardView `json:"leaderboard,omitempty"`

	// Entry запись игрока после SUBMIT_NAME.
	Entry *domain.PlayerEntry `json:"entry,omitempty"`

	// Error текст ошибки для Type=ERROR.
	Error string `json:"error,omitempty"`
}

// RoundView это DTO состояния раунда и текстов интерфейса.
type RoundView struct {
	ID             string  `json:"id"`
	Difficulty     string  `json:"difficulty"`
	Score          int     `json:"score"`
	HintsRemaining int     `json:"hintsRemaining"`
	HazardMode     bool    `json:"hazardMode"`
	TimeLeft       float64 `json:"timeLeft"` // секунды
	Active         bool    `json:"active"`
	UIEnabled      bool    `json:"uiEnabled"`
	Target         string  `json:"target,omitempty"` // ID объекта в прицеле
	SpawnPoint     string  `json:"spawnPoint,omitempty"`
}

// EventView это DTO одного события для хоста.
type EventView struct {
	Type     string          `json:"type"` // OUTLINE, SOUND, HINT, SCORE_DELTA, PHASE, ROUND_UI
	ObjectID domain.ObjectID `json:"objectId,omitempty"`
	Color    string          `json:"color,omitempty"`
	Sound    string          `json:"sound,omitempty"`
	Text     string          `json:"text,omitempty"`
	Delta    int             `json:"delta,omitempty"`
	Phase    string          `json:"phase,omitempty"`
}

// ObjectView это DTO объекта сцены.
type ObjectView struct {
	ID         domain.ObjectID `json:"id"`
	Name       string          `json:"name"`
	Active     bool            `json:"active"`
	Interacted bool            `json:"interacted"`
	Hinted     bool            `json:"hinted"`
}

// ReviewView это DTO строки панели разбора.
type ReviewView struct {
	ID         domain.ObjectID `json:"id"`
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	Text       string          `json:"text,omitempty"`
	Interacted bool            `json:"interacted"`
	Hinted     bool            `json:"hinted"`
}

// LeaderboardView это DTO таблицы рекордов.
type LeaderboardView struct {
	Board   string               `json:"board"`
	Entries []domain.PlayerEntry `json:"entries"`
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от хоста к серверу.
type ClientCommand struct {
	// Token ID сессии. Сервер подставляет его сам для WebSocket-клиентов.
	Token string `json:"token,omitempty"`

	// Action название действия, которое нужно выполнить.
	Action string `json:"action"`

	// Payload JSON-объект с данными для действия. Его структура зависит от Action.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// --- Payloads ---

// TargetPayload используется для AIM: объект, на который смотрит игрок.
// Пустой TargetID снимает прицел.
type TargetPayload struct {
	TargetID string `json:"targetId"`
}

// ActionPayload используется для INTERACT и HINT. Если TargetID задан,
// он сначала наводит прицел, иначе действие идет по текущей цели.
type ActionPayload struct {
	TargetID string `json:"targetId,omitempty"`
}

// DifficultyPayload используется для SET_DIFFICULTY ("easy" или "1").
type DifficultyPayload struct {
	Difficulty string `json:"difficulty"`
}

// NamePayload используется для SUBMIT_NAME.
type NamePayload struct {
	Name string `json:"name"`
}

// BoardPayload используется для LEADERBOARD ("easy", "medium", "hard", "combined").
type BoardPayload struct {
	Board string `json:"board"`
}
