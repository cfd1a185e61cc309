package utils

import (
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// GenerateID создает уникальный ID сессии или записи таблицы рекордов.
func GenerateID() string {
	return uuid.NewString()
}

// GenerateDeterministicID создает ID, зависящий только от состояния rng.
// Нужен для реплеев: при одинаковом сиде объекты сцены получают те же ID.
func GenerateDeterministicID(rng *rand.Rand, prefix string) string {
	var b [16]byte
	for i := range b {
		b[i] = byte(rng.Intn(256))
	}
	id, err := uuid.FromBytes(b[:])
	if err != nil {
		// FromBytes падает только на длине, отличной от 16
		return prefix + "invalid"
	}
	return prefix + id.String()[:8]
}

// StringToSeed превращает строку (токен сессии) в сид для rand.
func StringToSeed(s string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return int64(h.Sum64())
}

// NewSeed возвращает сид, если явный не задан (0).
func NewSeed(explicit int64) int64 {
	if explicit != 0 {
		return explicit
	}
	return time.Now().UnixNano()
}
