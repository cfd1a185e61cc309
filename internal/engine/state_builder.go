package engine

import (
	"hazard-server/pkg/api"
	"math"
	"strconv"
)

// publish рассылает хосту результат тика. Пустые тики уходят только
// раз в секунду, чтобы хост обновил таймер.
func (i *Instance) publish() {
	view := i.updateView()
	events := i.host.drain()

	if i.Round.Ended() {
		i.Service.Hub.SendTo(i.SessionID, api.ServerResponse{
			Type:      api.TypeRoundEnd,
			Tick:      i.CurrentTick,
			SessionID: i.SessionID,
			Round:     &view,
			Events:    events,
			Review:    i.host.reviewViews(),
		})
		return
	}

	second := int(math.Ceil(view.TimeLeft))
	if len(events) == 0 && second == i.lastSecond {
		return
	}
	i.lastSecond = second

	i.Service.Hub.SendTo(i.SessionID, api.ServerResponse{
		Type:      api.TypeUpdate,
		Tick:      i.CurrentTick,
		SessionID: i.SessionID,
		Round:     &view,
		Events:    events,
	})
}

// BuildState создает полный снимок раунда для хоста (INIT, START_ROUND).
func (i *Instance) BuildState() api.ServerResponse {
	view := i.updateView()
	return api.ServerResponse{
		Type:      api.TypeState,
		Tick:      i.CurrentTick,
		SessionID: i.SessionID,
		Round:     &view,
		Objects:   i.host.objectViews(),
		Review:    i.host.reviewViews(),
	}
}

// updateView пересобирает снимок раунда из состояния и текстов интерфейса.
// Вызывается только из горутины раунда.
func (i *Instance) updateView() api.RoundView {
	state := i.Round.State()
	view := api.RoundView{
		ID:             i.ID,
		Difficulty:     i.Round.Difficulty.String(),
		Score:          i.host.score,
		HintsRemaining: i.host.hints,
		HazardMode:     i.host.hazardMode,
		TimeLeft:       i.host.timeLeft,
		Active:         state.Active,
		UIEnabled:      i.host.uiEnabled,
	}
	if t := i.host.CurrentTarget(); t != nil {
		view.Target = strconv.FormatUint(uint64(t.ID), 10)
	}
	if i.SpawnPoint != nil {
		view.SpawnPoint = i.SpawnPoint.Name
	}

	i.mu.Lock()
	i.view = view
	i.mu.Unlock()
	return view
}

// View - последний снимок раунда. Безопасно читать из любой горутины.
func (i *Instance) View() api.RoundView {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.view
}
