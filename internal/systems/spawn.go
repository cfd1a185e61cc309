package systems

import (
	"fmt"
	"hazard-server/internal/domain"
	"hazard-server/pkg/logger"
	"math/rand"

	"github.com/sirupsen/logrus"
)

// SpawnSet - то, что выдает провайдер сцены: самостоятельные объекты
// по категориям и группы-родители.
type SpawnSet interface {
	Objects(c domain.Category) []*domain.SceneObject
	Groups() []*domain.SpawnGroup
}

// SpawnReport - сколько объектов было отключено при подготовке раунда
// и какие варианты групп попали в сцену.
type SpawnReport struct {
	Hazards       int      `json:"hazards"`
	Safeties      int      `json:"safeties"`
	Innocuous     int      `json:"innocuous"`
	GroupsSkipped int      `json:"groupsSkipped"`
	Variants      []string `json:"variants,omitempty"`
}

// Total - суммарно отключенные объекты.
func (r SpawnReport) Total() int {
	return r.Hazards + r.Safeties + r.Innocuous
}

// RandomDisable отключает каждый объект с вероятностью (1 - spawnRate).
// Обход начинается со случайного смещения, чтобы порядок массива не давал
// преимущества первым объектам. Предел maxDisabled*spawnRate проверяется
// после каждого объекта, поэтому первый объект разыгрывается всегда.
// Остановка после одного полного прохода или на пределе. Возвращает число
// отключенных.
func RandomDisable(objects []*domain.SceneObject, spawnRate float64, maxDisabled int, rng *rand.Rand) int {
	n := len(objects)
	if n == 0 || maxDisabled <= 0 {
		return 0
	}

	limit := float64(maxDisabled) * spawnRate
	start := rng.Intn(n)
	disabled := 0

	for visited := 0; ; {
		obj := objects[(start+visited)%n]
		// Float64 в [0,1): при spawnRate=1 не отключается никогда, при 0 - всегда
		if rng.Float64() >= spawnRate {
			obj.SetActive(false)
			disabled++
		}
		visited++
		if visited >= n || float64(disabled) >= limit {
			break
		}
	}

	return disabled
}

// SelectSingleChild выключает всех детей группы и включает одного случайного.
// Пустая группа - ошибка конфигурации: лог, выбор не выполняется.
func SelectSingleChild(group *domain.SpawnGroup, rng *rand.Rand) error {
	if len(group.Children) == 0 {
		logger.Log.WithFields(logrus.Fields{
			"component": "spawn_selector",
			"group_id":  group.ID,
			"group":     group.Name,
		}).Error("Spawn group has no children, skipping selection.")
		return fmt.Errorf("%w: %q", domain.ErrEmptySpawnGroup, group.Name)
	}

	for _, child := range group.Children {
		child.SetActive(false)
	}

	// Intn: включительно снизу и исключительно сверху
	group.Children[rng.Intn(len(group.Children))].SetActive(true)
	return nil
}

// RandomizeScene применяет выбор объектов для профиля сложности:
// hazard и safety по одной вероятности, innocuous по другой, затем по одному
// ребенку в каждой группе.
func RandomizeScene(set SpawnSet, profile domain.DifficultyProfile, rng *rand.Rand) SpawnReport {
	report := SpawnReport{
		Hazards:   RandomDisable(set.Objects(domain.CategoryHazard), profile.HazardSafetySpawnRate, profile.MaxDisabledItems, rng),
		Safeties:  RandomDisable(set.Objects(domain.CategorySafety), profile.HazardSafetySpawnRate, profile.MaxDisabledItems, rng),
		Innocuous: RandomDisable(set.Objects(domain.CategoryInnocuous), profile.InnocuousSpawnRate, profile.MaxDisabledItems, rng),
	}

	for _, group := range set.Groups() {
		if err := SelectSingleChild(group, rng); err != nil {
			report.GroupsSkipped++
			continue
		}
		for _, child := range group.ActiveChildren() {
			report.Variants = append(report.Variants, child.Name)
		}
	}

	logger.Log.WithFields(logrus.Fields{
		"component":      "spawn_selector",
		"hazards_off":    report.Hazards,
		"safeties_off":   report.Safeties,
		"innocuous_off":  report.Innocuous,
		"groups_skipped": report.GroupsSkipped,
		"variants":       report.Variants,
	}).Debug("Scene randomized.")

	return report
}
