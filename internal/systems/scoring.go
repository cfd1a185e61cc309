package systems

import (
	"hazard-server/internal/domain"

	"github.com/shopspring/decimal"
)

// PointsScale - очки всегда кратны сотне.
const PointsScale = 100

var (
	decOne     = decimal.NewFromInt(1)
	decHundred = decimal.NewFromInt(100)
)

// Reward = ceil(base * multiplier) * 100.
// Чем сложнее заметить объект, тем больше награда; на сложных уровнях множитель меньше.
func Reward(baseScore int, multiplier float64) int {
	points := decimal.NewFromInt(int64(baseScore)).
		Mul(decimal.NewFromFloat(multiplier)).
		Ceil()
	return int(points.IntPart()) * PointsScale
}

// Penalty = ceil((100 - base) * (1 - multiplier)) * 100.
// Для незаметных объектов (высокий base) штраф меньше, на сложных уровнях - больше.
func Penalty(baseScore int, multiplier float64) int {
	remainder := decHundred.Sub(decimal.NewFromInt(int64(baseScore)))
	if remainder.IsNegative() {
		remainder = decimal.Zero
	}
	factor := decOne.Sub(decimal.NewFromFloat(multiplier))
	if factor.IsNegative() {
		factor = decimal.Zero
	}
	return int(remainder.Mul(factor).Ceil().IntPart()) * PointsScale
}

// ShouldPenalize решает, штрафовать ли ошибку:
// Easy - никогда, Medium - только если объект противоположной оцениваемой
// категории, Hard - всегда.
func ShouldPenalize(d domain.Difficulty, guessed, actual domain.Category) bool {
	switch d {
	case domain.DifficultyMedium:
		return actual.IsGraded() && actual == guessed.Opposite()
	case domain.DifficultyHard:
		return true
	default:
		return false
	}
}

// Scoring - стратегия подсчета очков раунда.
type Scoring interface {
	Reward(baseScore int) int
	Penalty(baseScore int) int
	// Penalize - применять ли штраф, если игрок искал guessed, а объект actual.
	Penalize(guessed, actual domain.Category) bool
}

// FlatScoring - базовый вариант без сложности: базовая ценность как есть,
// штраф за любую ошибку.
type FlatScoring struct{}

func (FlatScoring) Reward(baseScore int) int { return baseScore }

func (FlatScoring) Penalty(baseScore int) int { return baseScore }

func (FlatScoring) Penalize(_, _ domain.Category) bool { return true }

// DifficultyScoring - вариант с множителем сложности и правилами штрафа.
type DifficultyScoring struct {
	Difficulty domain.Difficulty
	Profile    domain.DifficultyProfile
}

// NewDifficultyScoring собирает стратегию по сложности.
func NewDifficultyScoring(d domain.Difficulty) (DifficultyScoring, error) {
	p, err := d.Profile()
	if err != nil {
		return DifficultyScoring{}, err
	}
	return DifficultyScoring{Difficulty: d, Profile: p}, nil
}

func (s DifficultyScoring) Reward(baseScore int) int {
	return Reward(baseScore, s.Profile.PointMultiplier)
}

func (s DifficultyScoring) Penalty(baseScore int) int {
	return Penalty(baseScore, s.Profile.PointMultiplier)
}

func (s DifficultyScoring) Penalize(guessed, actual domain.Category) bool {
	return ShouldPenalize(s.Difficulty, guessed, actual)
}
