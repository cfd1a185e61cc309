package domain

// InnocuousBaseScore - у всех нейтральных объектов одинаковая базовая ценность.
const InnocuousBaseScore = 25

// ObjectState - флаги взаимодействия и подсказки объекта.
// Оба флага выставляются один раз и никогда не сбрасываются.
type ObjectState struct {
	Interacted bool     `json:"interacted"`
	Hinted     bool     `json:"hinted"`
	BaseScore  int      `json:"baseScore"` // Чем сложнее заметить объект, тем выше
	Category   Category `json:"-"`
	HintText   string   `json:"-"` // Пусто у Innocuous
	ReviewText string   `json:"-"` // Текст для панели разбора после раунда
}

// Interact отмечает объект. Возвращает false, если он уже был отмечен.
func (s *ObjectState) Interact() bool {
	if s.Interacted {
		return false
	}
	s.Interacted = true
	return true
}

// Hint отмечает подсказку. Возвращает false, если подсказка уже была.
func (s *ObjectState) Hint() bool {
	if s.Hinted {
		return false
	}
	s.Hinted = true
	return true
}

// HasHint - у объекта есть собственный текст подсказки.
func (s *ObjectState) HasHint() bool {
	return s.Category.IsGraded() && s.HintText != ""
}

// SceneObject - объект сцены, как его видит ядро.
type SceneObject struct {
	ID       ObjectID     `json:"id"`
	Name     string       `json:"name"`
	Category Category     `json:"-"`
	Active   bool         `json:"active"`
	State    *ObjectState `json:"state,omitempty"` // nil - объект не интерактивен
}

// SetActive включает/выключает объект в сцене.
func (o *SceneObject) SetActive(active bool) {
	o.Active = active
}

// SpawnGroup - "родитель" с взаимоисключающими вариантами объекта.
// После выбора активен ровно один ребенок.
type SpawnGroup struct {
	ID       uint16         `json:"id"`
	Name     string         `json:"name"`
	Children []*SceneObject `json:"children"`
}

// ActiveChildren возвращает включенных детей.
func (g *SpawnGroup) ActiveChildren() []*SceneObject {
	var res []*SceneObject
	for _, c := range g.Children {
		if c.Active {
			res = append(res, c)
		}
	}
	return res
}
