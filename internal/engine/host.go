package engine

import (
	"fmt"
	"hazard-server/internal/domain"
	"hazard-server/pkg/api"
	"hazard-server/pkg/scene"
)

// hostBridge играет роль внешних соседей раунда для удаленного хоста:
// прицел задается командой AIM, а подсветка, звук и тексты копятся
// событиями и уходят хосту пачкой после тика.
type hostBridge struct {
	scene  *scene.Scene
	target *domain.SceneObject

	events []api.EventView
	review []*domain.SceneObject
	inList map[domain.ObjectID]bool

	// Последние тексты интерфейса
	score      int
	timeLeft   float64
	hazardMode bool
	hints      int
	uiEnabled  bool
	nameEntry  bool
}

func newHostBridge(s *scene.Scene) *hostBridge {
	return &hostBridge{
		scene:     s,
		inList:    make(map[domain.ObjectID]bool),
		uiEnabled: true,
	}
}

// Aim наводит прицел на объект сцены. NilObjectID снимает прицел.
func (h *hostBridge) Aim(id domain.ObjectID) error {
	if id.IsNil() {
		h.target = nil
		return nil
	}
	obj, ok := h.scene.Find(id)
	if !ok || !obj.Active {
		return fmt.Errorf("object %s is not in the scene", id)
	}
	h.target = obj
	return nil
}

// --- Targeting ---

func (h *hostBridge) CurrentTarget() *domain.SceneObject {
	return h.target
}

// --- Outliner ---

func (h *hostBridge) ApplyOutline(obj *domain.SceneObject, color domain.OutlineColor) {
	h.emit(api.EventView{Type: domain.EventOutline.String(), ObjectID: obj.ID, Color: string(color)})
}

// --- Audio ---

func (h *hostBridge) Play(sound domain.Sound) {
	h.emit(api.EventView{Type: domain.EventSound.String(), Sound: string(sound)})
}

// --- UI ---

func (h *hostBridge) DisplayHint(text string) {
	h.emit(api.EventView{Type: domain.EventHint.String(), Text: text})
}

func (h *hostBridge) DisplayScoreDelta(delta int) {
	h.emit(api.EventView{Type: domain.EventScoreDelta.String(), Delta: delta})
}

func (h *hostBridge) UpdateScoreText(score int) { h.score = score }
func (h *hostBridge) UpdateTimerText(seconds float64) { h.timeLeft = seconds }
func (h *hostBridge) UpdateModeText(hazardMode bool) { h.hazardMode = hazardMode }
func (h *hostBridge) UpdateHintsText(remaining int) { h.hints = remaining }

func (h *hostBridge) DisableRoundUI() {
	h.uiEnabled = false
	h.emit(api.EventView{Type: domain.EventRoundUI.String(), Text: "disabled"})
}

// --- ReviewList ---

// Add добавляет объект в разбор один раз, даже если его и подсказали, и отметили.
func (h *hostBridge) Add(obj *domain.SceneObject) {
	if h.inList[obj.ID] {
		return
	}
	h.inList[obj.ID] = true
	h.review = append(h.review, obj)
}

// --- Transition ---

func (h *hostBridge) GoToNameEntry() {
	h.nameEntry = true
	h.emit(api.EventView{Type: domain.EventPhase.String(), Phase: string(domain.PhaseNameEntry)})
}

func (h *hostBridge) emit(ev api.EventView) {
	h.events = append(h.events, ev)
}

// drain забирает накопленные за тик события.
func (h *hostBridge) drain() []api.EventView {
	events := h.events
	h.events = nil
	return events
}

// reviewViews - панель разбора в порядке добавления.
func (h *hostBridge) reviewViews() []api.ReviewView {
	res := make([]api.ReviewView, 0, len(h.review))
	for _, obj := range h.review {
		res = append(res, api.ReviewView{
			ID:         obj.ID,
			Name:       obj.Name,
			Category:   obj.Category.String(),
			Text:       obj.State.ReviewText,
			Interacted: obj.State.Interacted,
			Hinted:     obj.State.Hinted,
		})
	}
	return res
}

// objectViews - активные объекты сцены без раскрытия категорий.
func (h *hostBridge) objectViews() []api.ObjectView {
	active := h.scene.Active()
	res := make([]api.ObjectView, 0, len(active))
	for _, obj := range active {
		v := api.ObjectView{ID: obj.ID, Name: obj.Name, Active: obj.Active}
		if obj.State != nil {
			v.Interacted = obj.State.Interacted
			v.Hinted = obj.State.Hinted
		}
		res = append(res, v)
	}
	return res
}

// collaborators собирает набор соседей раунда. Очки уходят в sink.
func (h *hostBridge) collaborators(sink ScoreSink) Collaborators {
	return Collaborators{
		Targeting:  h,
		Outliner:   h,
		Audio:      h,
		UI:         h,
		Review:     h,
		Transition: h,
		Scores:     sink,
	}
}
