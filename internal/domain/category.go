package domain

import "strings"

// Category - категория объекта сцены.
// Hazard и Safety оцениваются, Innocuous - нейтральная приманка.
type Category uint8

const (
	CategoryUnknown Category = iota
	CategoryHazard
	CategorySafety
	CategoryInnocuous
)

// Теги объектов в сцене. "parent" помечает группу взаимоисключающих вариантов.
const (
	TagHazard    = "hazard"
	TagSafety    = "safety"
	TagInnocuous = "innoc"
	TagParent    = "parent"
)

var categoryByTag = map[string]Category{
	TagHazard:    CategoryHazard,
	TagSafety:    CategorySafety,
	TagInnocuous: CategoryInnocuous,
}

var tagByCategory = map[Category]string{
	CategoryHazard:    TagHazard,
	CategorySafety:    TagSafety,
	CategoryInnocuous: TagInnocuous,
}

// ParseCategory конвертирует тег сцены в Category
func ParseCategory(tag string) Category {
	if c, ok := categoryByTag[strings.ToLower(strings.TrimSpace(tag))]; ok {
		return c
	}
	return CategoryUnknown
}

func (c Category) String() string {
	if tag, ok := tagByCategory[c]; ok {
		return tag
	}
	return "unknown"
}

// IsGraded - hazard или safety.
func (c Category) IsGraded() bool {
	return c == CategoryHazard || c == CategorySafety
}

// ModeCategory возвращает категорию, которую игрок ищет в текущем режиме.
// true - режим опасностей, false - режим безопасности.
func ModeCategory(hazardMode bool) Category {
	if hazardMode {
		return CategoryHazard
	}
	return CategorySafety
}

// Opposite возвращает противоположную оцениваемую категорию.
// Для Innocuous противоположной нет.
func (c Category) Opposite() Category {
	switch c {
	case CategoryHazard:
		return CategorySafety
	case CategorySafety:
		return CategoryHazard
	}
	return CategoryUnknown
}
