package engine

import (
	"context"
	"errors"
	"hazard-server/internal/domain"
	"hazard-server/internal/engine/handlers"
	"hazard-server/internal/engine/handlers/actions"
	"hazard-server/internal/infrastructure/storage"
	"hazard-server/internal/network"
	"hazard-server/internal/registry"
	"hazard-server/internal/systems"
	"hazard-server/pkg/api"
	"hazard-server/pkg/logger"
	"hazard-server/pkg/scene"
	"hazard-server/pkg/utils"
	"math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrForeignRound - команда раунда пришла не от хоста, который его запустил.
var ErrForeignRound = errors.New("round belongs to another session")

// historySize - сколько завершенных раундов помнит сервис для /debug.
const historySize = 20

// RoundSummary - краткая сводка раунда для отладки.
type RoundSummary struct {
	ID         string         `json:"id"`
	SessionID  string         `json:"sessionId"`
	Seed       int64          `json:"seed"`
	Difficulty string         `json:"difficulty"`
	Ticks      int            `json:"ticks"`
	Score      int            `json:"score"`
	Active     bool           `json:"active"`
	StartedAt  time.Time      `json:"startedAt"`
	Round      *api.RoundView `json:"round,omitempty"`
}

type GameService struct {
	Config   Config
	Registry *registry.Registry
	Hub      *network.Broadcaster
	Catalog  *scene.Catalog
	Replays  *storage.ReplayService // nil - реплеи не пишутся

	mu       sync.RWMutex
	active   *Instance
	history  []RoundSummary
	roundSeq int64
	ctx      context.Context

	handlers map[domain.ActionType]handlers.HandlerFunc

	// launch запускает цикл раунда. Тесты подменяют его, чтобы шагать вручную.
	launch func(i *Instance)
}

func NewService(cfg Config, reg *registry.Registry, catalog *scene.Catalog, replays *storage.ReplayService) *GameService {
	if cfg.TickRate <= 0 {
		cfg.TickRate = NewConfig().TickRate
	}
	if catalog == nil {
		catalog = scene.Default()
	}

	s := &GameService{
		Config:   cfg,
		Registry: reg,
		Hub:      network.NewBroadcaster(),
		Catalog:  catalog,
		Replays:  replays,
		ctx:      context.Background(),
		handlers: make(map[domain.ActionType]handlers.HandlerFunc),
	}
	s.launch = func(i *Instance) { go i.Run(s.ctx) }

	s.registerHandlers()
	return s
}

func (s *GameService) registerHandlers() {
	s.handlers[domain.ActionAim] = handlers.WithPayload(actions.HandleAim)
	s.handlers[domain.ActionInteract] = handlers.WithPayload(actions.HandleInteract)
	s.handlers[domain.ActionHint] = handlers.WithPayload(actions.HandleHint)
	s.handlers[domain.ActionToggleMode] = handlers.WithEmptyPayload(actions.HandleToggleMode)
	s.handlers[domain.ActionEndRound] = handlers.WithEmptyPayload(actions.HandleEndRound)
}

// Start привязывает циклы раундов к ctx: отмена завершает активный раунд.
func (s *GameService) Start(ctx context.Context) {
	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()

	if s.Config.CheckObjectProperties {
		s.checkCatalog()
	}
}

// ProcessCommand принимает команду от внешнего мира (WebSocket, бот).
// Команды раунда уходят в очередь инстанса, остальные выполняются сразу.
func (s *GameService) ProcessCommand(externalCmd api.ClientCommand) {
	actionType := domain.ParseAction(externalCmd.Action)
	if actionType == domain.ActionUnknown {
		logger.Log.WithFields(logrus.Fields{
			"component": "service",
			"action":    externalCmd.Action,
		}).Warn("Unknown action")
		s.sendErrorText(externalCmd.Token, "unknown action: "+externalCmd.Action)
		return
	}

	cmd := domain.InternalCommand{
		Action:  actionType,
		Token:   externalCmd.Token,
		Payload: externalCmd.Payload,
	}

	if actionType.IsRoundAction() {
		s.routeToRound(cmd)
		return
	}

	var err error
	switch actionType {
	case domain.ActionInit:
		s.handleInit(cmd)
	case domain.ActionSetDifficulty:
		err = s.handleSetDifficulty(cmd)
	case domain.ActionStartRound:
		_, err = s.StartRound(cmd.Token)
	case domain.ActionSubmitName:
		err = s.handleSubmitName(cmd)
	case domain.ActionLeaderboard:
		err = s.handleLeaderboard(cmd)
	}

	if err != nil {
		logger.Log.WithFields(logrus.Fields{
			"component":  "service",
			"action":     actionType.String(),
			"session_id": cmd.Token,
		}).WithError(err).Info("Command rejected")
		s.sendError(cmd.Token, err)
	}
}

func (s *GameService) routeToRound(cmd domain.InternalCommand) {
	inst := s.ActiveInstance()
	switch {
	case inst == nil:
		s.sendError(cmd.Token, domain.ErrNoActiveRound)
	case inst.SessionID != cmd.Token:
		s.sendError(cmd.Token, ErrForeignRound)
	default:
		inst.Enqueue(cmd)
	}
}

// --- Команды сессии ---

func (s *GameService) handleInit(cmd domain.InternalCommand) {
	msg := api.ServerResponse{
		Type:        api.TypeState,
		SessionID:   cmd.Token,
		Leaderboard: s.leaderboardView(domain.BoardFor(s.Registry.Difficulty())),
	}
	if inst := s.ActiveInstance(); inst != nil && inst.SessionID == cmd.Token {
		view := inst.View()
		msg.Round = &view
	}
	s.Hub.SendTo(cmd.Token, msg)
}

func (s *GameService) handleSetDifficulty(cmd domain.InternalCommand) error {
	p, err := handlers.Decode[api.DifficultyPayload](cmd.Payload)
	if err != nil {
		return err
	}
	// Сложность меняется только между раундами: итог пишется в таблицу
	// той сложности, что была при завершении.
	if s.ActiveInstance() != nil {
		return domain.ErrRoundInProgress
	}
	d := domain.ParseDifficulty(p.Difficulty)
	if err := s.Registry.SetDifficulty(d); err != nil {
		return err
	}
	s.Hub.SendTo(cmd.Token, api.ServerResponse{
		Type:        api.TypeLeaderboard,
		SessionID:   cmd.Token,
		Leaderboard: s.leaderboardView(domain.BoardFor(d)),
	})
	return nil
}

func (s *GameService) handleSubmitName(cmd domain.InternalCommand) error {
	p, err := handlers.Decode[api.NamePayload](cmd.Payload)
	if err != nil {
		return err
	}
	entry, err := s.Registry.RecordPlayerName(p.Name)
	if err != nil {
		return err
	}
	board := s.leaderboardView(domain.BoardFor(entry.Difficulty))
	s.Hub.SendTo(cmd.Token, api.ServerResponse{
		Type:        api.TypeLeaderboard,
		SessionID:   cmd.Token,
		Entry:       entry,
		Leaderboard: board,
	})
	// Остальные подключенные хосты видят новую таблицу без записи игрока
	s.Hub.Broadcast(api.ServerResponse{
		Type:        api.TypeLeaderboard,
		Leaderboard: board,
	}, cmd.Token)
	return nil
}

func (s *GameService) handleLeaderboard(cmd domain.InternalCommand) error {
	p, err := handlers.Decode[api.BoardPayload](cmd.Payload)
	if err != nil {
		return err
	}
	kind, _ := domain.ParseBoardKind(p.Board) // проверено Validate
	s.Hub.SendTo(cmd.Token, api.ServerResponse{
		Type:        api.TypeLeaderboard,
		SessionID:   cmd.Token,
		Leaderboard: s.leaderboardView(kind),
	})
	return nil
}

func (s *GameService) leaderboardView(kind domain.BoardKind) *api.LeaderboardView {
	return &api.LeaderboardView{Board: kind.String(), Entries: s.Registry.Leaderboard(kind)}
}

// --- Жизненный цикл раунда ---

// StartRound готовит сцену по сложности реестра и запускает раунд для сессии.
// Одновременно идет не больше одного раунда.
func (s *GameService) StartRound(sessionID string) (*Instance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active != nil {
		return nil, domain.ErrRoundInProgress
	}
	if pending, ok := s.Registry.PendingScore(); ok {
		logger.Log.WithFields(logrus.Fields{
			"component":  "service",
			"session_id": sessionID,
			"score":      pending,
		}).Warn("Starting a round over an unsubmitted score")
	}

	s.roundSeq++
	seed := utils.NewSeed(0)
	if s.Config.Seed != 0 {
		seed = s.Config.Seed + s.roundSeq
	}

	inst, err := s.buildInstance(sessionID, seed, s.Registry.Difficulty(), s.Config.TickRate, s.Registry)
	if err != nil {
		return nil, err
	}

	s.active = inst
	s.Hub.SendTo(sessionID, inst.BuildState())
	s.launch(inst)
	return inst, nil
}

// buildInstance повторяет подготовку раунда: сцена из каталога, случайное
// отключение объектов, точка появления, затем сам раунд. Все зависит
// только от seed, поэтому реплей собирает ту же сцену.
func (s *GameService) buildInstance(sessionID string, seed int64, d domain.Difficulty, tickRate int, sink ScoreSink) (*Instance, error) {
	profile, err := d.Profile()
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seed))
	sc := s.Catalog.Build(rng)
	roundID := utils.GenerateDeterministicID(rng, "r_")

	var report systems.SpawnReport
	if s.Config.RandomizeObjectSpawn {
		report = systems.RandomizeScene(sc, profile, rng)
	}

	inst := NewInstance(roundID, sessionID, sc, s, seed, rng, tickRate)

	if s.Config.RandomizePlayerSpawn {
		if sp, ok := sc.SelectSpawnPoint(rng); ok {
			inst.SpawnPoint = &sp
		}
	}

	inst.startRound(RoundConfig{
		Difficulty:    d,
		Duration:      s.Config.RoundDuration,
		StartingHints: s.Config.StartingHints,
	}, sink)

	logger.Log.WithFields(logrus.Fields{
		"component":      "service",
		"round_id":       roundID,
		"session_id":     sessionID,
		"seed":           seed,
		"difficulty":     d.String(),
		"active_objects": len(sc.Active()),
		"disabled":       report.Total(),
	}).Info("Round prepared")
	return inst, nil
}

// onRoundFinished вызывается из цикла раунда после его завершения.
func (s *GameService) onRoundFinished(i *Instance) {
	s.mu.Lock()
	if s.active == i {
		s.active = nil
	}
	view := i.View()
	s.history = append(s.history, RoundSummary{
		ID:         i.ID,
		SessionID:  i.SessionID,
		Seed:       i.Seed,
		Difficulty: i.Round.Difficulty.String(),
		Ticks:      i.CurrentTick,
		Score:      i.Replay.FinalScore,
		StartedAt:  i.StartedAt,
		Round:      &view,
	})
	if len(s.history) > historySize {
		s.history = s.history[len(s.history)-historySize:]
	}
	s.mu.Unlock()

	if s.Replays == nil {
		return
	}
	path, err := s.Replays.Save(i.Replay)
	if err != nil {
		logger.Log.WithFields(logrus.Fields{
			"component": "service",
			"round_id":  i.ID,
		}).WithError(err).Error("Failed to save replay")
		return
	}
	logger.Log.WithFields(logrus.Fields{
		"component": "service",
		"round_id":  i.ID,
		"path":      path,
	}).Info("Replay saved")
}

// Disconnect вызывается, когда хост ушел: его раунд завершается досрочно.
func (s *GameService) Disconnect(sessionID string) {
	inst := s.ActiveInstance()
	if inst == nil || inst.SessionID != sessionID {
		return
	}
	inst.Enqueue(domain.InternalCommand{Action: domain.ActionEndRound, Token: sessionID})
}

// --- Доступ для отладки ---

// ActiveInstance - текущий раунд или nil.
func (s *GameService) ActiveInstance() *Instance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// Rounds возвращает активный раунд (если есть) и последние завершенные.
func (s *GameService) Rounds() []RoundSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]RoundSummary, 0, len(s.history)+1)
	if s.active != nil {
		view := s.active.View()
		res = append(res, RoundSummary{
			ID:         s.active.ID,
			SessionID:  s.active.SessionID,
			Seed:       s.active.Seed,
			Difficulty: view.Difficulty,
			Score:      view.Score,
			Active:     true,
			StartedAt:  s.active.StartedAt,
			Round:      &view,
		})
	}
	for idx := len(s.history) - 1; idx >= 0; idx-- {
		res = append(res, s.history[idx])
	}
	return res
}

// checkCatalog пишет в лог все проблемы свойств объектов каталога.
func (s *GameService) checkCatalog() {
	for _, p := range s.Catalog.Check() {
		logger.Log.WithFields(logrus.Fields{
			"component": "scene",
			"object":    p.Object,
			"tag":       p.Tag,
		}).Error(p.String())
	}
}

// --- Ответы об ошибках ---

func (s *GameService) sendError(sessionID string, err error) {
	s.sendErrorText(sessionID, err.Error())
}

func (s *GameService) sendErrorText(sessionID, text string) {
	if sessionID == "" {
		return
	}
	s.Hub.SendTo(sessionID, api.ServerResponse{
		Type:      api.TypeError,
		SessionID: sessionID,
		Error:     text,
	})
}
