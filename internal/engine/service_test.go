package engine

import (
	"encoding/json"
	"hazard-server/internal/domain"
	"hazard-server/internal/engine/handlers"
	"hazard-server/internal/registry"
	"hazard-server/pkg/api"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const host = "host-1"

func newTestService(t *testing.T) (*GameService, chan api.ServerResponse) {
	t.Helper()
	cfg := Config{
		Seed:                 7,
		TickRate:             10,
		RoundDuration:        2 * time.Second,
		StartingHints:        3,
		RandomizeObjectSpawn: true,
	}
	s := NewService(cfg, registry.New(10), nil, nil)
	// Шагаем вручную, без горутины
	s.launch = func(*Instance) {}
	return s, s.Hub.Register(host)
}

// waitFor читает сообщения хоста до первого сообщения нужного типа.
func waitFor(t *testing.T, ch chan api.ServerResponse, msgType string) api.ServerResponse {
	t.Helper()
	for {
		select {
		case msg := <-ch:
			if msg.Type == msgType {
				return msg
			}
		default:
			t.Fatalf("no %s message for host", msgType)
			return api.ServerResponse{}
		}
	}
}

func command(action string, payload any) api.ClientCommand {
	cmd := api.ClientCommand{Token: host, Action: action}
	if payload != nil {
		raw, _ := json.Marshal(payload)
		cmd.Payload = raw
	}
	return cmd
}

func firstActive(inst *Instance, c domain.Category) *domain.SceneObject {
	for _, obj := range inst.Scene.Objects(c) {
		if obj.Active {
			return obj
		}
	}
	return nil
}

func idOf(obj *domain.SceneObject) string {
	return strconv.FormatUint(uint64(obj.ID), 10)
}

func activeObjects(inst *Instance, c domain.Category, n int) []*domain.SceneObject {
	var res []*domain.SceneObject
	for _, obj := range inst.Scene.Objects(c) {
		if obj.Active && len(res) < n {
			res = append(res, obj)
		}
	}
	return res
}

func TestService_FullRound(t *testing.T) {
	s, ch := newTestService(t)

	s.ProcessCommand(command("START_ROUND", nil))
	state := waitFor(t, ch, api.TypeState)
	require.NotNil(t, state.Round)
	assert.Equal(t, "easy", state.Round.Difficulty)
	assert.NotEmpty(t, state.Objects)

	inst := s.ActiveInstance()
	require.NotNil(t, inst)
	hazard := firstActive(inst, domain.CategoryHazard)
	require.NotNil(t, hazard, "easy scene must keep some hazards")

	s.ProcessCommand(command("TOGGLE_MODE", nil))
	s.ProcessCommand(command("INTERACT", api.ActionPayload{TargetID: idOf(hazard)}))
	inst.Step(inst.Service.Config.TickDuration())

	update := waitFor(t, ch, api.TypeUpdate)
	want := hazard.State.BaseScore * 100
	assert.Equal(t, want, update.Round.Score)
	assert.True(t, update.Round.HazardMode)
	assert.NotEmpty(t, update.Events)

	s.ProcessCommand(command("END_ROUND", nil))
	inst.Step(inst.Service.Config.TickDuration())

	end := waitFor(t, ch, api.TypeRoundEnd)
	assert.False(t, end.Round.Active)
	require.Len(t, end.Review, 1)
	assert.Equal(t, "hazard", end.Review[0].Category)

	pending, ok := s.Registry.PendingScore()
	require.True(t, ok)
	assert.Equal(t, want, pending)

	inst.finish()
	assert.Nil(t, s.ActiveInstance())

	s.ProcessCommand(command("SUBMIT_NAME", api.NamePayload{Name: "ALICE"}))
	board := waitFor(t, ch, api.TypeLeaderboard)
	require.NotNil(t, board.Entry)
	assert.Equal(t, "ALICE", board.Entry.Name)
	assert.Equal(t, "easy", board.Leaderboard.Board)
	require.Len(t, board.Leaderboard.Entries, 1)
	assert.Equal(t, want, board.Leaderboard.Entries[0].Score)

	rounds := s.Rounds()
	require.Len(t, rounds, 1)
	assert.Equal(t, inst.ID, rounds[0].ID)
	assert.False(t, rounds[0].Active)
}

func TestService_TargetedCommandsInOneTickKeepTheirObjects(t *testing.T) {
	s, ch := newTestService(t)

	s.ProcessCommand(command("START_ROUND", nil))
	waitFor(t, ch, api.TypeState)
	inst := s.ActiveInstance()
	require.NotNil(t, inst)

	hazards := activeObjects(inst, domain.CategoryHazard, 2)
	require.Len(t, hazards, 2, "easy scene must keep two hazards")
	a, b := hazards[0], hazards[1]

	s.ProcessCommand(command("TOGGLE_MODE", nil))
	s.ProcessCommand(command("INTERACT", api.ActionPayload{TargetID: idOf(a)}))
	s.ProcessCommand(command("HINT", api.ActionPayload{TargetID: idOf(b)}))
	inst.Step(inst.Service.Config.TickDuration())

	assert.True(t, a.State.Interacted)
	assert.False(t, a.State.Hinted)
	assert.True(t, b.State.Hinted)
	assert.False(t, b.State.Interacted)
	assert.Equal(t, a.State.BaseScore*100, inst.Round.State().Score)
	assert.Len(t, inst.Replay.Actions, 3)
}

func TestService_TwoInteractsInOneTickScoreBoth(t *testing.T) {
	s, ch := newTestService(t)

	s.ProcessCommand(command("START_ROUND", nil))
	waitFor(t, ch, api.TypeState)
	inst := s.ActiveInstance()
	require.NotNil(t, inst)

	hazards := activeObjects(inst, domain.CategoryHazard, 2)
	require.Len(t, hazards, 2)
	a, b := hazards[0], hazards[1]

	s.ProcessCommand(command("TOGGLE_MODE", nil))
	s.ProcessCommand(command("INTERACT", api.ActionPayload{TargetID: idOf(a)}))
	s.ProcessCommand(command("INTERACT", api.ActionPayload{TargetID: idOf(b)}))
	inst.Step(inst.Service.Config.TickDuration())

	assert.True(t, a.State.Interacted)
	assert.True(t, b.State.Interacted)
	want := (a.State.BaseScore + b.State.BaseScore) * 100
	assert.Equal(t, want, inst.Round.State().Score)

	// Реплей повторяет тот же тик с теми же целями
	s.ProcessCommand(command("END_ROUND", nil))
	inst.Step(inst.Service.Config.TickDuration())
	inst.finish()

	res, err := s.PlayReplay(inst.Replay)
	require.NoError(t, err)
	assert.True(t, res.Match)
	assert.Equal(t, want, res.Score)
}

func TestService_SubmitNameBroadcastsBoard(t *testing.T) {
	s, ch := newTestService(t)
	watcher := s.Hub.Register("watcher")

	s.Registry.RecordPlayerScore(3300)
	s.ProcessCommand(command("SUBMIT_NAME", api.NamePayload{Name: "CARA"}))

	own := waitFor(t, ch, api.TypeLeaderboard)
	require.NotNil(t, own.Entry)
	assert.Equal(t, "CARA", own.Entry.Name)

	seen := waitFor(t, watcher, api.TypeLeaderboard)
	assert.Nil(t, seen.Entry)
	require.Len(t, seen.Leaderboard.Entries, 1)
	assert.Equal(t, 3300, seen.Leaderboard.Entries[0].Score)
	assert.Empty(t, ch, "submitter gets the board once")
}

func TestService_RoutingErrors(t *testing.T) {
	s, ch := newTestService(t)

	s.ProcessCommand(command("INTERACT", nil))
	msg := waitFor(t, ch, api.TypeError)
	assert.Equal(t, domain.ErrNoActiveRound.Error(), msg.Error)

	s.ProcessCommand(command("DANCE", nil))
	waitFor(t, ch, api.TypeError)

	s.ProcessCommand(command("START_ROUND", nil))
	waitFor(t, ch, api.TypeState)

	s.ProcessCommand(command("START_ROUND", nil))
	msg = waitFor(t, ch, api.TypeError)
	assert.Equal(t, domain.ErrRoundInProgress.Error(), msg.Error)

	s.ProcessCommand(command("SET_DIFFICULTY", api.DifficultyPayload{Difficulty: "hard"}))
	msg = waitFor(t, ch, api.TypeError)
	assert.Equal(t, domain.ErrRoundInProgress.Error(), msg.Error)

	other := s.Hub.Register("host-2")
	s.ProcessCommand(api.ClientCommand{Token: "host-2", Action: "TOGGLE_MODE"})
	msg = waitFor(t, other, api.TypeError)
	assert.Equal(t, ErrForeignRound.Error(), msg.Error)

	s.ProcessCommand(command("SUBMIT_NAME", api.NamePayload{Name: "BOB"}))
	msg = waitFor(t, ch, api.TypeError)
	assert.Equal(t, domain.ErrNoPendingScore.Error(), msg.Error)
}

func TestService_SetDifficultyAndLeaderboard(t *testing.T) {
	s, ch := newTestService(t)

	s.ProcessCommand(command("SET_DIFFICULTY", api.DifficultyPayload{Difficulty: "3"}))
	msg := waitFor(t, ch, api.TypeLeaderboard)
	assert.Equal(t, "hard", msg.Leaderboard.Board)
	assert.Equal(t, domain.DifficultyHard, s.Registry.Difficulty())

	s.ProcessCommand(command("SET_DIFFICULTY", api.DifficultyPayload{Difficulty: "nightmare"}))
	waitFor(t, ch, api.TypeError)
	assert.Equal(t, domain.DifficultyHard, s.Registry.Difficulty())

	s.ProcessCommand(command("LEADERBOARD", api.BoardPayload{Board: "combined"}))
	msg = waitFor(t, ch, api.TypeLeaderboard)
	assert.Equal(t, "combined", msg.Leaderboard.Board)
	assert.Empty(t, msg.Leaderboard.Entries)

	s.ProcessCommand(command("INIT", nil))
	msg = waitFor(t, ch, api.TypeState)
	assert.Nil(t, msg.Round)
	assert.Equal(t, "hard", msg.Leaderboard.Board)
}

func TestInstance_TimerEndsRound(t *testing.T) {
	s, ch := newTestService(t)
	inst, err := s.StartRound(host)
	require.NoError(t, err)

	dt := s.Config.TickDuration()
	for i := 0; i < 19; i++ {
		inst.Step(dt)
	}
	require.False(t, inst.Round.Ended())

	inst.Step(dt)
	assert.True(t, inst.Round.Ended())
	assert.Equal(t, 20, inst.CurrentTick)

	end := waitFor(t, ch, api.TypeRoundEnd)
	assert.False(t, end.Round.UIEnabled)
	assert.Equal(t, 0.0, end.Round.TimeLeft)
}

func TestInstance_BadPayloadIsNotRecorded(t *testing.T) {
	s, ch := newTestService(t)
	inst, err := s.StartRound(host)
	require.NoError(t, err)

	s.ProcessCommand(command("AIM", api.TargetPayload{TargetID: "not-a-number"}))
	inst.Step(s.Config.TickDuration())

	waitFor(t, ch, api.TypeError)
	assert.Empty(t, inst.Replay.Actions)
}

func TestInstance_PanicEndsRound(t *testing.T) {
	s, ch := newTestService(t)
	inst, err := s.StartRound(host)
	require.NoError(t, err)

	s.handlers[domain.ActionAim] = func(handlers.Context, json.RawMessage) (handlers.Result, error) {
		panic("broken handler")
	}
	s.ProcessCommand(command("AIM", nil))

	assert.NotPanics(t, func() { inst.safeStep(s.Config.TickDuration()) })
	assert.True(t, inst.Round.Ended())
	waitFor(t, ch, api.TypeRoundEnd)
}

func TestService_DisconnectEndsRound(t *testing.T) {
	s, _ := newTestService(t)
	inst, err := s.StartRound(host)
	require.NoError(t, err)

	s.Disconnect("someone-else")
	s.Disconnect(host)
	inst.Step(s.Config.TickDuration())

	assert.True(t, inst.Round.Ended())
}

func TestService_RunLoopFinishesRound(t *testing.T) {
	s, _ := newTestService(t)
	s.Config.TickRate = 100
	s.Config.RoundDuration = 50 * time.Millisecond
	s.launch = func(i *Instance) { go i.Run(s.ctx) }

	inst, err := s.StartRound(host)
	require.NoError(t, err)

	select {
	case <-inst.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("round loop did not stop")
	}
	assert.Nil(t, s.ActiveInstance())
	assert.Equal(t, 5, inst.CurrentTick)
}

func TestService_ReplayReproducesScore(t *testing.T) {
	s, _ := newTestService(t)
	inst, err := s.StartRound(host)
	require.NoError(t, err)
	dt := s.Config.TickDuration()

	hazard := firstActive(inst, domain.CategoryHazard)
	safety := firstActive(inst, domain.CategorySafety)
	require.NotNil(t, hazard)
	require.NotNil(t, safety)

	// Тик 1: отмечаем средство безопасности в режиме безопасности
	s.ProcessCommand(command("AIM", api.TargetPayload{TargetID: idOf(safety)}))
	s.ProcessCommand(command("INTERACT", nil))
	inst.Step(dt)
	// Тик 2: пусто. Тик 3: подсказка и опасность
	inst.Step(dt)
	s.ProcessCommand(command("HINT", api.ActionPayload{TargetID: idOf(hazard)}))
	s.ProcessCommand(command("TOGGLE_MODE", nil))
	s.ProcessCommand(command("INTERACT", nil))
	inst.Step(dt)
	s.ProcessCommand(command("END_ROUND", nil))
	inst.Step(dt)
	require.True(t, inst.Round.Ended())
	inst.finish()

	assert.Len(t, inst.Replay.Actions, 6)
	live := inst.Replay.FinalScore
	assert.Equal(t, (hazard.State.BaseScore+safety.State.BaseScore)*100, live)

	res, err := s.PlayReplay(inst.Replay)
	require.NoError(t, err)
	assert.Equal(t, inst.ID, res.RoundID)
	assert.Equal(t, live, res.Score)
	assert.True(t, res.Match)
	assert.Equal(t, 4, res.Ticks)

	// Реплей не пишет в таблицы
	_, ok := s.Registry.PendingScore()
	assert.True(t, ok)
	assert.Empty(t, s.Registry.Leaderboard(domain.BoardCombined))
}
