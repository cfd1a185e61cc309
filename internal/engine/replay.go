package engine

import (
	"errors"
	"hazard-server/internal/domain"
	"hazard-server/pkg/logger"
	"time"

	"github.com/sirupsen/logrus"
)

// ReplayResult - итог воспроизведения записи раунда.
type ReplayResult struct {
	RoundID  string `json:"roundId"`
	Ticks    int    `json:"ticks"`
	Score    int    `json:"score"`
	Expected int    `json:"expected"`
	Match    bool   `json:"match"`
}

// replaySink принимает итог вместо реестра: таблицы рекордов не трогаем.
type replaySink struct {
	score    int
	recorded bool
}

func (r *replaySink) RecordPlayerScore(score int) {
	r.score = score
	r.recorded = true
}

// PlayReplay заново проигрывает раунд по записи: та же сцена из сида,
// те же команды в тех же тиках. Воспроизведение верно при той же
// конфигурации движка (длительность, подсказки, флаги спавна).
func (s *GameService) PlayReplay(session *domain.ReplaySession) (ReplayResult, error) {
	if session.TickRate <= 0 {
		return ReplayResult{}, errors.New("replay has no tick rate")
	}

	sink := &replaySink{}
	inst, err := s.buildInstance("", session.Seed, session.Difficulty, session.TickRate, sink)
	if err != nil {
		return ReplayResult{}, err
	}

	log := logger.Log.WithFields(logrus.Fields{
		"component": "replay",
		"round_id":  inst.ID,
		"seed":      session.Seed,
	})
	if session.RoundID != "" && session.RoundID != inst.ID {
		log.WithField("recorded_id", session.RoundID).Warn("Replay round id differs, scene may not match")
	}

	dt := time.Second / time.Duration(session.TickRate)
	budget := domain.NewRoundState(s.Config.RoundDuration, 0).TimeLeft
	maxTicks := int(budget/dt) + 1

	next := 0
	for !inst.Round.Ended() && inst.CurrentTick < maxTicks {
		tick := inst.CurrentTick + 1
		for next < len(session.Actions) && session.Actions[next].Tick <= tick {
			act := session.Actions[next]
			inst.Enqueue(domain.InternalCommand{Action: act.Action, Payload: act.Payload})
			next++
		}
		inst.Step(dt)
	}

	res := ReplayResult{
		RoundID:  inst.ID,
		Ticks:    inst.CurrentTick,
		Score:    sink.score,
		Expected: session.FinalScore,
	}
	res.Match = sink.recorded && res.Score == res.Expected

	log.WithFields(logrus.Fields{
		"ticks":    res.Ticks,
		"score":    res.Score,
		"expected": res.Expected,
		"match":    res.Match,
	}).Info("Replay finished")
	return res, nil
}
