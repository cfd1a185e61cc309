package engine

import (
	"fmt"
	"hazard-server/internal/domain"
	"hazard-server/internal/systems"
	"hazard-server/pkg/logger"
	"time"

	"github.com/sirupsen/logrus"
)

// Текст подсказки
const (
	HintPrefix        = "Hint: "
	InnocuousHintText = "This object seems strangely normal..."
)

// RoundConfig - параметры одного раунда.
type RoundConfig struct {
	Difficulty    domain.Difficulty
	Duration      time.Duration
	StartingHints int
	// Scoring - стратегия очков. nil - по профилю сложности.
	Scoring systems.Scoring
}

// Round - раунд игры, автомат Running -> Ended.
// Все методы вызываются из одной горутины (цикл инстанса).
type Round struct {
	ID         string
	Difficulty domain.Difficulty

	state   domain.RoundState
	scoring systems.Scoring
	c       Collaborators

	ticks    int
	stepping bool // защита от повторного входа в Step
	ended    bool
}

// NewRound создает раунд в состоянии Running.
// Неизвестная сложность - ошибка конфигурации: лог и Easy.
func NewRound(id string, cfg RoundConfig, c Collaborators) *Round {
	d := cfg.Difficulty
	if !d.Valid() {
		logger.Log.WithFields(logrus.Fields{
			"component":  "round",
			"round_id":   id,
			"difficulty": int(d),
		}).Error("Unknown difficulty, falling back to easy.")
		d = domain.DifficultyEasy
	}

	scoring := cfg.Scoring
	if scoring == nil {
		// Для валидной сложности ошибки быть не может
		scoring, _ = systems.NewDifficultyScoring(d)
	}

	r := &Round{
		ID:         id,
		Difficulty: d,
		state:      domain.NewRoundState(cfg.Duration, cfg.StartingHints),
		scoring:    scoring,
		c:          c,
	}

	logger.Log.WithFields(logrus.Fields{
		"component":  "round",
		"round_id":   id,
		"difficulty": d.String(),
		"time_left":  r.state.TimeLeft.Seconds(),
		"hints":      r.state.HintsRemaining,
	}).Info("Round started.")

	r.refreshUI()
	return r
}

// State возвращает копию состояния.
func (r *Round) State() domain.RoundState {
	return r.state
}

// Ended - раунд завершен.
func (r *Round) Ended() bool {
	return r.ended
}

// Ticks - сколько тиков выполнено.
func (r *Round) Ticks() int {
	return r.ticks
}

// Step выполняет ровно один тик: таймер, переключение режима,
// взаимодействие и подсказка по текущей цели, обновление интерфейса,
// затем явный запрос завершения.
func (r *Round) Step(dt time.Duration, in domain.TickInput) {
	if r.ended {
		return
	}
	if r.stepping {
		logger.Log.WithFields(logrus.Fields{
			"component": "round",
			"round_id":  r.ID,
			"tick":      r.ticks,
		}).Warn("Reentrant tick rejected.")
		return
	}
	r.stepping = true
	defer func() { r.stepping = false }()

	r.ticks++

	// 1. Время
	r.state.TimeLeft -= dt
	if r.state.Expired() {
		r.state.TimeLeft = 0
		r.End()
		return
	}

	// 2. Режим
	if in.Toggle {
		r.ToggleMode()
	}

	// 3. Действия по цели
	if in.Interact || in.Hint {
		target := r.currentTarget()
		if in.Interact {
			_ = r.Interact(target)
		}
		if in.Hint {
			_ = r.Hint(target)
		}
	}
	for _, a := range in.Targeted {
		switch a.Kind {
		case domain.ActionInteract:
			_ = r.Interact(a.Target)
		case domain.ActionHint:
			_ = r.Hint(a.Target)
		}
	}

	// 4. Интерфейс
	r.refreshUI()

	if in.End {
		r.End()
	}
}

// ToggleMode переключает режим поиска hazard/safety.
func (r *Round) ToggleMode() {
	if r.ended {
		return
	}
	r.state.HazardMode = !r.state.HazardMode
	if r.c.UI != nil {
		r.c.UI.UpdateModeText(r.state.HazardMode)
	}
}

// Interact отмечает объект как найденный в текущем режиме и начисляет очки.
// Недопустимое взаимодействие пишется в лог, ничего не меняет и возвращается
// как ошибка.
func (r *Round) Interact(obj *domain.SceneObject) error {
	err := r.interact(obj)
	r.logRejected("interact", obj, err)
	return err
}

func (r *Round) interact(obj *domain.SceneObject) error {
	if err := r.checkTarget(obj); err != nil {
		return err
	}
	if !obj.State.Interact() {
		return fmt.Errorf("%w: %s", domain.ErrAlreadyInteracted, obj.ID)
	}

	guessed := domain.ModeCategory(r.state.HazardMode)
	actual := obj.State.Category
	correct := actual == guessed

	fields := logrus.Fields{
		"component": "round",
		"round_id":  r.ID,
		"object":    obj.Name,
		"guessed":   guessed.String(),
		"actual":    actual.String(),
	}

	if correct {
		r.outline(obj, domain.OutlineGreen)
		r.play(domain.SoundSuccess)
		r.applyDelta(r.scoring.Reward(obj.State.BaseScore))
	} else {
		r.outline(obj, domain.OutlineRed)
		r.play(domain.SoundFail)
		if r.scoring.Penalize(guessed, actual) {
			r.applyDelta(-r.scoring.Penalty(obj.State.BaseScore))
		}
	}

	if r.c.Review != nil {
		r.c.Review.Add(obj)
	}

	fields["correct"] = correct
	fields["score"] = r.state.Score
	logger.Log.WithFields(fields).Debug("Object interacted.")
	return nil
}

// Hint показывает подсказку по объекту и тратит одну подсказку.
// Счетчик может уйти в минус: лимит проверяет хост, ядро только предупреждает.
func (r *Round) Hint(obj *domain.SceneObject) error {
	err := r.hint(obj)
	r.logRejected("hint", obj, err)
	return err
}

func (r *Round) hint(obj *domain.SceneObject) error {
	if err := r.checkTarget(obj); err != nil {
		return err
	}
	if !obj.State.Hint() {
		return fmt.Errorf("%w: %s", domain.ErrAlreadyHinted, obj.ID)
	}

	r.state.HintsRemaining--
	if r.state.HintsRemaining < 0 {
		logger.Log.WithFields(logrus.Fields{
			"component":       "round",
			"round_id":        r.ID,
			"hints_remaining": r.state.HintsRemaining,
		}).Warn("Hint counter went negative.")
	}

	if obj.State.Category.IsGraded() && !obj.State.HasHint() {
		logger.Log.WithFields(logrus.Fields{
			"component": "round",
			"round_id":  r.ID,
			"object":    obj.Name,
		}).Warn("Graded object has no hint text.")
	}

	if r.c.UI != nil {
		r.c.UI.DisplayHint(HintText(obj.State))
		r.c.UI.UpdateHintsText(r.state.HintsRemaining)
	}
	if r.c.Review != nil {
		r.c.Review.Add(obj)
	}
	r.outline(obj, domain.OutlineOrange)
	r.play(domain.SoundHint)

	logger.Log.WithFields(logrus.Fields{
		"component": "round",
		"round_id":  r.ID,
		"object":    obj.Name,
	}).Debug("Object hinted.")
	return nil
}

// End завершает раунд. Повторный вызов ничего не делает.
func (r *Round) End() {
	if r.ended {
		return
	}
	r.ended = true
	r.state.Active = false

	// Последнее обновление текстов перед отключением интерфейса
	r.refreshUI()
	if r.c.UI != nil {
		r.c.UI.DisableRoundUI()
	}
	if r.c.Scores != nil {
		r.c.Scores.RecordPlayerScore(r.state.Score)
	}
	if r.c.Transition != nil {
		r.c.Transition.GoToNameEntry()
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "round",
		"round_id":  r.ID,
		"score":     r.state.Score,
		"ticks":     r.ticks,
		"time_left": r.state.TimeLeft.Seconds(),
	}).Info("Round ended.")
}

// HintText - текст подсказки для объекта.
func HintText(s *domain.ObjectState) string {
	if s.Category == domain.CategoryInnocuous {
		return HintPrefix + InnocuousHintText
	}
	return HintPrefix + s.HintText
}

func (r *Round) checkTarget(obj *domain.SceneObject) error {
	switch {
	case r.ended:
		return domain.ErrRoundEnded
	case obj == nil:
		return domain.ErrNoTarget
	case obj.State == nil || !obj.Active:
		return fmt.Errorf("%w: %s", domain.ErrNotInteractable, obj.ID)
	}
	return nil
}

func (r *Round) currentTarget() *domain.SceneObject {
	if r.c.Targeting == nil {
		return nil
	}
	return r.c.Targeting.CurrentTarget()
}

// applyDelta меняет счет и сообщает интерфейсу изменение со знаком.
func (r *Round) applyDelta(delta int) {
	r.state.Score += delta
	if r.c.UI != nil {
		r.c.UI.DisplayScoreDelta(delta)
		r.c.UI.UpdateScoreText(r.state.Score)
	}
}

func (r *Round) outline(obj *domain.SceneObject, color domain.OutlineColor) {
	if r.c.Outliner != nil {
		r.c.Outliner.ApplyOutline(obj, color)
	}
}

func (r *Round) play(sound domain.Sound) {
	if r.c.Audio != nil {
		r.c.Audio.Play(sound)
	}
}

func (r *Round) refreshUI() {
	if r.c.UI == nil {
		return
	}
	r.c.UI.UpdateScoreText(r.state.Score)
	r.c.UI.UpdateTimerText(r.state.TimeLeft.Seconds())
	r.c.UI.UpdateModeText(r.state.HazardMode)
	r.c.UI.UpdateHintsText(r.state.HintsRemaining)
}

// logRejected пишет недопустимое действие в лог. Это не ошибка игры.
func (r *Round) logRejected(action string, obj *domain.SceneObject, err error) {
	if err == nil {
		return
	}
	fields := logrus.Fields{
		"component": "round",
		"round_id":  r.ID,
		"action":    action,
		"reason":    err.Error(),
	}
	if obj != nil {
		fields["object"] = obj.Name
	}
	logger.Log.WithFields(fields).Info("Interaction ignored.")
}
