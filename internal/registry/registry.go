package registry

import (
	"errors"
	"hazard-server/internal/domain"
	"hazard-server/internal/leaderboard"
	"hazard-server/pkg/logger"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrClosed - реестр уже закрыт.
var ErrClosed = errors.New("registry is closed")

// Registry - общее состояние процесса между раундами: текущая сложность,
// результат последнего раунда и таблицы рекордов. Создается явно в main
// и передается раундам по ссылке.
//
// Пишут в реестр только раунды и выбор сложности, читают еще и HTTP
// обработчики из других горутин, поэтому все под RWMutex.
type Registry struct {
	mu sync.RWMutex

	difficulty domain.Difficulty
	boards     map[domain.BoardKind]*leaderboard.Board

	// Результат завершенного раунда, ждущий имени игрока
	pendingScore      int
	pendingDifficulty domain.Difficulty
	hasPending        bool

	closed bool
	now    func() time.Time
}

// New создает реестр с пустыми таблицами. Сложность по умолчанию - Easy.
func New(capacity int) *Registry {
	r := &Registry{
		difficulty: domain.DifficultyEasy,
		boards:     make(map[domain.BoardKind]*leaderboard.Board, len(domain.BoardKinds)),
		now:        time.Now,
	}
	for _, kind := range domain.BoardKinds {
		r.boards[kind] = leaderboard.New(kind.String(), capacity)
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "registry",
		"capacity":  r.boards[domain.BoardCombined].Cap(),
	}).Info("Session registry initialized.")
	return r
}

// Close очищает таблицы. После закрытия запись запрещена, чтение отдает пустоту.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	for _, b := range r.boards {
		b.Reset()
	}
	r.hasPending = false
	r.closed = true

	logger.Log.WithField("component", "registry").Info("Session registry closed.")
}

// Difficulty - текущая сложность для следующего раунда.
func (r *Registry) Difficulty() domain.Difficulty {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.difficulty
}

// SetDifficulty выбирает сложность. Неизвестное значение - ошибка
// конфигурации: логируем и оставляем прежнюю.
func (r *Registry) SetDifficulty(d domain.Difficulty) error {
	if !d.Valid() {
		logger.Log.WithFields(logrus.Fields{
			"component":  "registry",
			"difficulty": int(d),
			"keeping":    r.Difficulty().String(),
		}).Error("Unknown difficulty requested.")
		return domain.ErrUnknownDifficulty
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}
	r.difficulty = d
	return nil
}

// RecordPlayerScore запоминает итог раунда до ввода имени.
// Сложность фиксируется здесь же: смена сложности на экране ввода имени
// не должна перенести результат в чужую таблицу.
func (r *Registry) RecordPlayerScore(score int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.pendingScore = score
	r.pendingDifficulty = r.difficulty
	r.hasPending = true

	logger.Log.WithFields(logrus.Fields{
		"component":  "registry",
		"score":      score,
		"difficulty": r.difficulty.String(),
	}).Info("Player score recorded.")
}

// PendingScore возвращает ожидающий имени результат.
func (r *Registry) PendingScore() (int, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.pendingScore, r.hasPending
}

// RecordPlayerName создает запись игрока и вставляет ее в таблицу его
// сложности и в общую. Обе таблицы держат один и тот же указатель.
func (r *Registry) RecordPlayerName(name string) (*domain.PlayerEntry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrEmptyName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrClosed
	}
	if !r.hasPending {
		return nil, domain.ErrNoPendingScore
	}

	entry := &domain.PlayerEntry{
		ID:         uuid.NewString(),
		Name:       name,
		Score:      r.pendingScore,
		Difficulty: r.pendingDifficulty,
		RecordedAt: r.now(),
	}
	r.hasPending = false

	ranked := r.boards[domain.BoardFor(entry.Difficulty)].Insert(entry)
	rankedCombined := r.boards[domain.BoardCombined].Insert(entry)

	logger.Log.WithFields(logrus.Fields{
		"component":  "registry",
		"player":     entry.Name,
		"score":      entry.Score,
		"difficulty": entry.Difficulty.String(),
		"ranked":     ranked,
		"combined":   rankedCombined,
	}).Info("Player entry recorded.")
	return entry, nil
}

// Leaderboard возвращает копию таблицы по порядку мест.
func (r *Registry) Leaderboard(kind domain.BoardKind) []domain.PlayerEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.boards[kind]
	if !ok {
		return nil
	}
	entries := b.Entries()
	res := make([]domain.PlayerEntry, len(entries))
	for i, e := range entries {
		res[i] = *e
	}
	return res
}

// Snapshot - состояние реестра для отладочного API.
type Snapshot struct {
	Difficulty   domain.Difficulty               `json:"difficulty"`
	PendingScore *int                            `json:"pendingScore,omitempty"`
	Boards       map[string][]domain.PlayerEntry `json:"boards"`
	Capacity     int                             `json:"capacity"`
	Closed       bool                            `json:"closed"`
}

// Snapshot собирает копию всего состояния.
func (r *Registry) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snap := Snapshot{
		Difficulty: r.difficulty,
		Boards:     make(map[string][]domain.PlayerEntry, len(r.boards)),
		Capacity:   r.boards[domain.BoardCombined].Cap(),
		Closed:     r.closed,
	}
	if r.hasPending {
		score := r.pendingScore
		snap.PendingScore = &score
	}
	for _, b := range r.boards {
		entries := b.Entries()
		list := make([]domain.PlayerEntry, len(entries))
		for i, e := range entries {
			list[i] = *e
		}
		snap.Boards[b.Name()] = list
	}
	return snap
}
