package agent

import (
	"context"
	"encoding/json"
	"hazard-server/internal/domain"
	"hazard-server/internal/engine"
	"hazard-server/pkg/api"
	"hazard-server/pkg/logger"
	"hazard-server/pkg/utils"
	"math/rand"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

// Bot представляет собой "Игрока-компьютера" (Headless Agent).
// Этот код является примером ВНЕШНЕГО хоста: он подписывается на хаб
// так же, как WebSocket-клиент, и шлет те же команды.
//
// Жизненный цикл:
//  1. NewBot -> Регистрация в хабе сервера, получение личного канала (Inbox).
//  2. Run -> START_ROUND, затем по одному объекту за "раздумье": прицел,
//     иногда подсказка или смена режима, отметка.
//  3. После ROUND_END бот вводит имя и выходит, когда запись попала в таблицу.
type Bot struct {
	SessionID string
	Name      string
	Service   *engine.GameService // Прямая ссылка на движок (для простоты в этом проекте)
	Inbox     chan api.ServerResponse
	Think     time.Duration // Пауза между действиями

	Rng *rand.Rand

	queue      []domain.ObjectID
	round      *api.RoundView
	requested  bool
	ended      bool
	submitted  bool
	hintedLast bool

	// Result - запись бота в таблице рекордов после раунда
	Result *domain.PlayerEntry
}

func NewBot(name string, service *engine.GameService, seed int64) *Bot {
	sessionID := "bot_" + name
	if seed == 0 {
		// Без явного сида бот с тем же именем играет одинаково
		seed = utils.StringToSeed(name)
	}
	logger.Log.WithFields(logrus.Fields{
		"component":  "bot",
		"session_id": sessionID,
	}).Info("Creating agent")

	return &Bot{
		SessionID: sessionID,
		Name:      name,
		Service:   service,
		// Бот регистрируется в хабе как обычный клиент и получает свой канал для обновлений.
		Inbox: service.Hub.Register(sessionID),
		Think: 250 * time.Millisecond,
		Rng:   rand.New(rand.NewSource(seed)),
	}
}

// Run запускает цикл жизни бота. Должен быть запущен в горутине.
func (b *Bot) Run(ctx context.Context) {
	defer b.Service.Hub.Unregister(b.SessionID, b.Inbox)

	ticker := time.NewTicker(b.Think)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-b.Inbox:
			if !ok {
				return
			}
			if b.observe(msg) {
				logger.Log.WithFields(logrus.Fields{
					"component":  "bot",
					"session_id": b.SessionID,
					"score":      b.Result.Score,
				}).Info("Agent finished round")
				return
			}
		case <-ticker.C:
			b.act()
		}
	}
}

// observe обновляет картину раунда. Возвращает true, когда бот закончил.
func (b *Bot) observe(msg api.ServerResponse) bool {
	switch msg.Type {
	case api.TypeState:
		if msg.Round != nil {
			b.round = msg.Round
			b.queue = b.queue[:0]
			for _, obj := range msg.Objects {
				b.queue = append(b.queue, obj.ID)
			}
			b.Rng.Shuffle(len(b.queue), func(i, j int) { b.queue[i], b.queue[j] = b.queue[j], b.queue[i] })
		}
	case api.TypeUpdate:
		b.round = msg.Round
	case api.TypeRoundEnd:
		b.round = msg.Round
		b.ended = true
	case api.TypeLeaderboard:
		if msg.Entry != nil {
			b.Result = msg.Entry
			return true
		}
	case api.TypeError:
		logger.Log.WithFields(logrus.Fields{
			"component":  "bot",
			"session_id": b.SessionID,
		}).Debug("Agent command rejected: " + msg.Error)
		if !b.ended && b.round == nil {
			// Раунд не стартовал (занят другим хостом), попробуем позже
			b.requested = false
		}
	}
	return false
}

// act - мозг бота: одно действие за раздумье.
func (b *Bot) act() {
	switch {
	case b.ended && !b.submitted:
		b.submitted = true
		b.send("SUBMIT_NAME", api.NamePayload{Name: b.Name})
	case b.ended:
		return
	case b.round == nil && !b.requested:
		b.requested = true
		b.send("START_ROUND", nil)
	case b.round == nil:
		return
	case len(b.queue) == 0:
		b.send("END_ROUND", nil)
	default:
		b.playNext()
	}
}

// playNext берет следующий объект. Категорию бот не знает: режим выбирается
// монеткой, подсказка берется, пока они есть.
func (b *Bot) playNext() {
	target := b.queue[0]
	payload := api.ActionPayload{TargetID: formatID(target)}

	if b.round.HintsRemaining > 0 && !b.hintedLast && b.Rng.Intn(4) == 0 {
		b.hintedLast = true
		b.send("HINT", payload)
		return
	}
	b.hintedLast = false
	b.queue = b.queue[1:]

	if b.Rng.Intn(2) == 0 {
		b.send("TOGGLE_MODE", nil)
	}
	b.send("INTERACT", payload)
}

func (b *Bot) send(action string, payload any) {
	cmd := api.ClientCommand{Token: b.SessionID, Action: action}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			logger.Log.WithError(err).Error("Failed to marshal bot payload")
			return
		}
		cmd.Payload = raw
	}
	b.Service.ProcessCommand(cmd)
}

func formatID(id domain.ObjectID) string {
	return strconv.FormatUint(uint64(id), 10)
}
