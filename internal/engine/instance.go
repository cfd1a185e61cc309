package engine

import (
	"context"
	"hazard-server/internal/domain"
	"hazard-server/internal/engine/handlers"
	"hazard-server/pkg/api"
	"hazard-server/pkg/logger"
	"hazard-server/pkg/scene"
	"math/rand"
	"runtime/debug"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Instance представляет собой один изолированный запущенный раунд.
// Раунд, сцена и мост хоста принадлежат горутине Run; снаружи доступны
// только канал команд и снимок View.
type Instance struct {
	ID        string
	SessionID string // Хост, который запустил раунд

	Round      *Round
	Scene      *scene.Scene
	SpawnPoint *scene.SpawnPoint
	host       *hostBridge

	// Команды от хоста, применяются в ближайшем тике
	CommandChan chan domain.InternalCommand

	// Ссылка на Service для доступа к Hub и реестру
	Service *GameService

	TickRate    int
	CurrentTick int // Локальное время раунда

	Rng    *rand.Rand            // Локальный генератор
	Seed   int64                 // Сид, с которого начался раунд
	Replay *domain.ReplaySession // Лента команд

	StartedAt time.Time

	handlers   map[domain.ActionType]handlers.HandlerFunc
	lastSecond int

	mu   sync.RWMutex
	view api.RoundView
	done chan struct{}
}

// NewInstance собирает инстанс вокруг готовой сцены. Раунд создается
// отдельно через startRound, когда известны все соседи.
func NewInstance(id, sessionID string, sc *scene.Scene, service *GameService, seed int64, rng *rand.Rand, tickRate int) *Instance {
	return &Instance{
		ID:          id,
		SessionID:   sessionID,
		Scene:       sc,
		host:        newHostBridge(sc),
		CommandChan: make(chan domain.InternalCommand, 100),
		Service:     service,
		TickRate:    tickRate,
		Rng:         rng,
		Seed:        seed,
		StartedAt:   time.Now(),
		handlers:    service.handlers,
		lastSecond:  -1,
		done:        make(chan struct{}),
		Replay: &domain.ReplaySession{
			RoundID:   id,
			Seed:      seed,
			TickRate:  tickRate,
			Timestamp: time.Now().Unix(),
			Actions:   make([]domain.ReplayAction, 0),
		},
	}
}

// startRound создает раунд. Очки уходят в sink (реестр или заглушка реплея).
func (i *Instance) startRound(cfg RoundConfig, sink ScoreSink) {
	i.Round = NewRound(i.ID, cfg, i.host.collaborators(sink))
	i.Replay.Difficulty = i.Round.Difficulty
	i.updateView()
}

// Run запускает игровой цикл ЭТОГО раунда с фиксированным шагом.
// Выходит, когда раунд завершен или отменен ctx.
func (i *Instance) Run(ctx context.Context) {
	dt := time.Second / time.Duration(i.TickRate)
	ticker := time.NewTicker(dt)
	defer ticker.Stop()
	defer i.finish()

	logger.Log.WithFields(logrus.Fields{
		"component": "instance",
		"round_id":  i.ID,
		"tick_rate": i.TickRate,
	}).Info("Instance loop started")

	for !i.Round.Ended() {
		select {
		case <-ctx.Done():
			i.Round.End()
			i.publish()
			return
		case <-ticker.C:
			i.safeStep(dt)
		}
	}
}

// Done закрывается, когда цикл раунда завершился.
func (i *Instance) Done() <-chan struct{} {
	return i.done
}

// Enqueue кладет команду в очередь раунда. Переполненная очередь
// отбрасывает команду.
func (i *Instance) Enqueue(cmd domain.InternalCommand) bool {
	select {
	case i.CommandChan <- cmd:
		return true
	default:
		logger.Log.WithFields(logrus.Fields{
			"component": "instance",
			"round_id":  i.ID,
			"action":    cmd.Action.String(),
		}).Warn("Command inbox full, command dropped")
		return false
	}
}

// safeStep не дает панике в тике уронить процесс: раунд завершается.
func (i *Instance) safeStep(dt time.Duration) {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.WithFields(logrus.Fields{
				"component": "instance",
				"round_id":  i.ID,
				"tick":      i.CurrentTick,
				"panic":     r,
				"stack":     string(debug.Stack()),
			}).Error("Tick panicked, ending round")
			i.Round.End()
			i.publish()
		}
	}()
	i.Step(dt)
}

// Step выполняет один тик: забирает накопленные команды, применяет их
// к вводу тика, двигает раунд и рассылает результат хосту.
func (i *Instance) Step(dt time.Duration) {
	if i.Round.Ended() {
		return
	}
	i.CurrentTick++

	var input domain.TickInput
	for drained := false; !drained; {
		select {
		case cmd := <-i.CommandChan:
			i.executeCommand(cmd, &input)
		default:
			drained = true
		}
	}

	i.Round.Step(dt, input)
	i.publish()
}

// executeCommand выполняет команду в контексте тика
func (i *Instance) executeCommand(cmd domain.InternalCommand, input *domain.TickInput) {
	handler, ok := i.handlers[cmd.Action]
	if !ok {
		return
	}

	ctx := handlers.Context{
		RoundID: i.ID,
		Tick:    i.CurrentTick,
		Input:   input,
		Targets: i.host,
	}

	result, err := handler(ctx, cmd.Payload)
	if err != nil {
		i.AddLog(err.Error(), "ERROR")
		i.Service.sendError(cmd.Token, err)
		return
	}
	i.recordAction(cmd, i.CurrentTick)

	if result.Msg != "" {
		i.AddLog(result.Msg, result.MsgType)
		if result.MsgType == "ERROR" {
			i.Service.sendErrorText(cmd.Token, result.Msg)
		}
	}
}

func (i *Instance) recordAction(cmd domain.InternalCommand, tick int) {
	i.Replay.Actions = append(i.Replay.Actions, domain.ReplayAction{
		Tick:    tick,
		Action:  cmd.Action,
		Payload: cmd.Payload,
	})
}

// finish закрывает раунд: итог в реплей и сервису.
func (i *Instance) finish() {
	i.Replay.FinalScore = i.Round.State().Score
	i.Service.onRoundFinished(i)
	close(i.done)

	logger.Log.WithFields(logrus.Fields{
		"component": "instance",
		"round_id":  i.ID,
		"ticks":     i.CurrentTick,
		"actions":   len(i.Replay.Actions),
	}).Info("Instance loop stopped")
}
