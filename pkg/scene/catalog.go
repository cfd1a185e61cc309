package scene

import (
	"encoding/json"
	"fmt"
	"hazard-server/internal/domain"
	"os"
	"strings"
)

// ObjectTemplate определяет шаблон объекта сцены
type ObjectTemplate struct {
	Name      string `json:"name"`
	Tag       string `json:"tag"` // hazard / safety / innoc
	Room      string `json:"room,omitempty"`
	BaseScore int    `json:"baseScore,omitempty"` // Для innoc игнорируется
	Hint      string `json:"hint,omitempty"`
	Review    string `json:"review,omitempty"`
}

// Category возвращает категорию по тегу
func (t ObjectTemplate) Category() domain.Category {
	return domain.ParseCategory(t.Tag)
}

// GroupTemplate - "родитель" с взаимоисключающими вариантами
type GroupTemplate struct {
	Name     string           `json:"name"`
	Room     string           `json:"room,omitempty"`
	Children []ObjectTemplate `json:"children"`
}

// SpawnPoint - точка появления игрока
type SpawnPoint struct {
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Z    float64 `json:"z"`
}

// Catalog - описание сцены: из него для каждого раунда собирается свежая Scene.
type Catalog struct {
	Name        string           `json:"name"`
	Objects     []ObjectTemplate `json:"objects"`
	Groups      []GroupTemplate  `json:"groups"`
	SpawnPoints []SpawnPoint     `json:"spawnPoints"`
}

// Parse читает каталог из JSON.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode scene catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadFile читает каталог с диска.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// validate отсекает то, из чего сцену не собрать вообще (неизвестные теги).
// Неполные свойства объектов - это Check, а не ошибка загрузки.
func (c *Catalog) validate() error {
	for i, o := range c.Objects {
		if o.Category() == domain.CategoryUnknown {
			return fmt.Errorf("object #%d %q: unknown tag %q", i, o.Name, o.Tag)
		}
	}
	for i, g := range c.Groups {
		for j, o := range g.Children {
			if o.Category() == domain.CategoryUnknown {
				return fmt.Errorf("group #%d %q child #%d %q: unknown tag %q", i, g.Name, j, o.Name, o.Tag)
			}
		}
	}
	return nil
}

// Problem - замечание к свойствам объекта каталога.
type Problem struct {
	Object string `json:"object"`
	Tag    string `json:"tag"`
	Issue  string `json:"issue"`
}

func (p Problem) String() string {
	return fmt.Sprintf("the %s named %s %s", p.Tag, p.Object, p.Issue)
}

// Check проверяет, что у объектов заполнены свойства, нужные для игры:
// базовая ценность у оцениваемых, тексты подсказки и разбора.
// Группы проверяются как обычные объекты, плюс пустые группы.
func (c *Catalog) Check() []Problem {
	var problems []Problem

	check := func(o ObjectTemplate) {
		if strings.TrimSpace(o.Name) == "" {
			problems = append(problems, Problem{Object: "<unnamed>", Tag: o.Tag, Issue: "has no name"})
		}
		if !o.Category().IsGraded() {
			// Базовая ценность нейтральных объектов выставляется при сборке
			return
		}
		if o.BaseScore == 0 {
			problems = append(problems, Problem{Object: o.Name, Tag: o.Tag, Issue: "has no base score set"})
		}
		if o.BaseScore < 0 || o.BaseScore > 100 {
			problems = append(problems, Problem{Object: o.Name, Tag: o.Tag, Issue: "has a base score outside [0, 100]"})
		}
		if strings.TrimSpace(o.Review) == "" {
			problems = append(problems, Problem{Object: o.Name, Tag: o.Tag, Issue: "has no review information text"})
		}
		if strings.TrimSpace(o.Hint) == "" {
			problems = append(problems, Problem{Object: o.Name, Tag: o.Tag, Issue: "has no hint information text"})
		}
	}

	for _, o := range c.Objects {
		check(o)
	}
	for _, g := range c.Groups {
		if len(g.Children) == 0 {
			problems = append(problems, Problem{Object: g.Name, Tag: domain.TagParent, Issue: "has no children"})
		}
		for _, o := range g.Children {
			check(o)
		}
	}
	return problems
}

// Count возвращает число шаблонов объектов в категории, включая детей групп.
func (c *Catalog) Count(cat domain.Category) int {
	n := 0
	for _, o := range c.Objects {
		if o.Category() == cat {
			n++
		}
	}
	for _, g := range c.Groups {
		for _, o := range g.Children {
			if o.Category() == cat {
				n++
			}
		}
	}
	return n
}
