package scene

import (
	"fmt"
	"hazard-server/internal/domain"
	"hazard-server/pkg/logger"
	"hazard-server/pkg/utils"
	"math/rand"

	"github.com/sirupsen/logrus"
)

// Scene - набор объектов одного раунда. Собирается из каталога заново
// для каждого раунда, все объекты изначально активны.
type Scene struct {
	ID   string
	Name string

	byCategory  map[domain.Category][]*domain.SceneObject
	groups      []*domain.SpawnGroup
	index       map[domain.ObjectID]*domain.SceneObject
	order       []*domain.SceneObject // Порядок каталога, для стабильного вывода
	spawnPoints []SpawnPoint
}

// Build создает сцену из каталога. rng нужен только для ID сцены,
// чтобы реплей с тем же сидом давал ту же сцену.
func (c *Catalog) Build(rng *rand.Rand) *Scene {
	s := &Scene{
		ID:          utils.GenerateDeterministicID(rng, "s_"),
		Name:        c.Name,
		byCategory:  make(map[domain.Category][]*domain.SceneObject),
		index:       make(map[domain.ObjectID]*domain.SceneObject),
		spawnPoints: append([]SpawnPoint(nil), c.SpawnPoints...),
	}

	counters := make(map[domain.Category]uint64)
	next := func(cat domain.Category) uint64 {
		counters[cat]++
		return counters[cat]
	}

	// Самостоятельные объекты
	for _, t := range c.Objects {
		cat := t.Category()
		obj := newObject(t, domain.PackObjectID(cat, 0, next(cat)))
		s.byCategory[cat] = append(s.byCategory[cat], obj)
		s.add(obj)
	}

	// Группы: дети в списки категорий не попадают, ими управляет выбор одного варианта
	for i, g := range c.Groups {
		groupID := uint16(i + 1)
		group := &domain.SpawnGroup{ID: groupID, Name: g.Name}
		for _, t := range g.Children {
			cat := t.Category()
			obj := newObject(t, domain.PackObjectID(cat, groupID, next(cat)))
			group.Children = append(group.Children, obj)
			s.add(obj)
		}
		s.groups = append(s.groups, group)
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "scene",
		"scene":     s.ID,
		"catalog":   c.Name,
		"hazards":   len(s.byCategory[domain.CategoryHazard]),
		"safeties":  len(s.byCategory[domain.CategorySafety]),
		"innocuous": len(s.byCategory[domain.CategoryInnocuous]),
		"groups":    len(s.groups),
	}).Debug("Scene built.")
	return s
}

func newObject(t ObjectTemplate, id domain.ObjectID) *domain.SceneObject {
	cat := t.Category()
	state := &domain.ObjectState{
		BaseScore:  t.BaseScore,
		Category:   cat,
		HintText:   t.Hint,
		ReviewText: t.Review,
	}
	// Все нейтральные объекты стоят одинаково и подсказок не имеют
	if cat == domain.CategoryInnocuous {
		state.BaseScore = domain.InnocuousBaseScore
		state.HintText = ""
	}
	return &domain.SceneObject{
		ID:       id,
		Name:     t.Name,
		Category: cat,
		Active:   true,
		State:    state,
	}
}

func (s *Scene) add(obj *domain.SceneObject) {
	s.index[obj.ID] = obj
	s.order = append(s.order, obj)
}

// Objects - самостоятельные объекты категории (без детей групп).
func (s *Scene) Objects(c domain.Category) []*domain.SceneObject {
	return s.byCategory[c]
}

// Groups - группы взаимоисключающих вариантов.
func (s *Scene) Groups() []*domain.SpawnGroup {
	return s.groups
}

// Find ищет объект по ID. Неактивные объекты тоже находятся.
func (s *Scene) Find(id domain.ObjectID) (*domain.SceneObject, bool) {
	obj, ok := s.index[id]
	return obj, ok
}

// SetActive включает/выключает объект.
func (s *Scene) SetActive(id domain.ObjectID, active bool) error {
	obj, ok := s.index[id]
	if !ok {
		return fmt.Errorf("scene %s: object %s not found", s.ID, id)
	}
	obj.SetActive(active)
	return nil
}

// Active возвращает объекты, видимые в раунде.
func (s *Scene) Active() []*domain.SceneObject {
	res := make([]*domain.SceneObject, 0, len(s.order))
	for _, obj := range s.order {
		if obj.Active {
			res = append(res, obj)
		}
	}
	return res
}

// SpawnPoints возвращает точки появления игрока.
func (s *Scene) SpawnPoints() []SpawnPoint {
	return s.spawnPoints
}

// SelectSpawnPoint выбирает точку появления равновероятно.
// Без точек возвращает false.
func (s *Scene) SelectSpawnPoint(rng *rand.Rand) (SpawnPoint, bool) {
	if len(s.spawnPoints) == 0 {
		logger.Log.WithFields(logrus.Fields{
			"component": "scene",
			"scene":     s.ID,
		}).Error("No spawn points defined for scene.")
		return SpawnPoint{}, false
	}
	return s.spawnPoints[rng.Intn(len(s.spawnPoints))], true
}
