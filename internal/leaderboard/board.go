package leaderboard

import (
	"hazard-server/internal/domain"
	"hazard-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// DefaultCapacity - сколько игроков помещается в таблицу.
const DefaultCapacity = 10

// Board - таблица рекордов фиксированной емкости, по убыванию очков.
// Пустые слоты только в конце (плотный префикс). При равенстве выше
// остается тот, кто попал в таблицу раньше.
type Board struct {
	name  string
	slots []*domain.PlayerEntry
}

// New создает пустую таблицу. capacity <= 0 означает DefaultCapacity.
func New(name string, capacity int) *Board {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Board{
		name:  name,
		slots: make([]*domain.PlayerEntry, capacity),
	}
}

// Insert вставляет запись на ее место. Возвращает false, если таблица
// заполнена и запись не лучше ни одной из имеющихся (запись отбрасывается).
func (b *Board) Insert(entry *domain.PlayerEntry) bool {
	for i := range b.slots {
		// Первый пустой слот до любого более слабого результата
		if b.slots[i] == nil {
			b.slots[i] = entry
			b.logInsert(entry, i)
			return true
		}

		// Строго больше: при равенстве ранний игрок остается выше
		if entry.Score > b.slots[i].Score {
			// Сдвигаем хвост на один слот, последний выпадает за емкость
			copy(b.slots[i+1:], b.slots[i:len(b.slots)-1])
			b.slots[i] = entry
			b.logInsert(entry, i)
			return true
		}
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "leaderboard",
		"board":     b.name,
		"player":    entry.Name,
		"score":     entry.Score,
	}).Debug("Entry did not make the board.")
	return false
}

func (b *Board) logInsert(entry *domain.PlayerEntry, rank int) {
	logger.Log.WithFields(logrus.Fields{
		"component": "leaderboard",
		"board":     b.name,
		"player":    entry.Name,
		"score":     entry.Score,
		"rank":      rank + 1,
	}).Debug("Entry inserted.")
}

// Entries возвращает занятые слоты по порядку. Записи общие с таблицей,
// копируется только срез.
func (b *Board) Entries() []*domain.PlayerEntry {
	res := make([]*domain.PlayerEntry, 0, len(b.slots))
	for _, e := range b.slots {
		if e == nil {
			break
		}
		res = append(res, e)
	}
	return res
}

// At возвращает запись в слоте i или nil.
func (b *Board) At(i int) *domain.PlayerEntry {
	if i < 0 || i >= len(b.slots) {
		return nil
	}
	return b.slots[i]
}

// Len - число занятых слотов.
func (b *Board) Len() int {
	return len(b.Entries())
}

// Cap - емкость таблицы.
func (b *Board) Cap() int {
	return len(b.slots)
}

// Name - имя таблицы для логов и API.
func (b *Board) Name() string {
	return b.name
}

// Reset очищает таблицу.
func (b *Board) Reset() {
	for i := range b.slots {
		b.slots[i] = nil
	}
}
