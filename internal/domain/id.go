package domain

import (
	"fmt"
	"strconv"
)

// ObjectID - упакованный идентификатор объекта сцены (Category + Group + Index)
//
// Формат битов (от старших к младшим):
//
//	[ Category (8) | Group (16) | Index (40) ]
//
// Group = 0 для самостоятельных объектов, иначе номер группы-родителя (с 1).
type ObjectID uint64

// NilObjectID - отсутствие объекта (ничего не в прицеле).
const NilObjectID ObjectID = 0

// Конфигурация битов
const (
	bitsIndex    = 40
	bitsGroup    = 16
	bitsCategory = 8

	// Сдвиги
	shiftGroup    = bitsIndex
	shiftCategory = bitsIndex + bitsGroup

	// Маски (для извлечения значений)
	maskIndex    = (1 << bitsIndex) - 1 // 0x000000FFFFFFFFFF
	maskGroup    = (1 << bitsGroup) - 1 // 0xFFFF
	maskCategory = (1 << bitsCategory) - 1
)

// --- КОНСТРУКТОР ---

// PackObjectID создает ID из компонентов. Индекс начинается с 1,
// чтобы ни один объект не совпал с NilObjectID.
func PackObjectID(category Category, group uint16, index uint64) ObjectID {
	id := index & maskIndex
	id |= (uint64(group) & maskGroup) << shiftGroup
	id |= (uint64(category) & maskCategory) << shiftCategory
	return ObjectID(id)
}

// --- МЕТОДЫ ДОСТУПА ---

func (id ObjectID) Category() Category {
	return Category((id >> shiftCategory) & maskCategory)
}

func (id ObjectID) Group() uint16 {
	return uint16((id >> shiftGroup) & maskGroup)
}

func (id ObjectID) Index() uint64 {
	return uint64(id & maskIndex)
}

func (id ObjectID) IsNil() bool {
	return id == NilObjectID
}

// ParseObjectID читает ID из десятичной строки (формат JSON).
func ParseObjectID(s string) (ObjectID, error) {
	if s == "" {
		return NilObjectID, nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return NilObjectID, fmt.Errorf("invalid object id %q: %w", s, err)
	}
	return ObjectID(v), nil
}

// --- СЕРИАЛИЗАЦИЯ (Для фронтенда) ---

// MarshalJSON сериализует ID в строку, так как JS теряет точность для больших int64
func (id ObjectID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + strconv.FormatUint(uint64(id), 10) + `"`), nil
}

func (id *ObjectID) UnmarshalJSON(data []byte) error {
	// Удаляем кавычки, если есть
	if len(data) > 1 && data[0] == '"' && data[len(data)-1] == '"' {
		data = data[1 : len(data)-1]
	}
	parsed, err := ParseObjectID(string(data))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// String для логов: [category:group:index]
func (id ObjectID) String() string {
	if id.IsNil() {
		return "<nil>"
	}
	return fmt.Sprintf("[%s:%d:%d]", id.Category(), id.Group(), id.Index())
}
