package actions

import (
	"hazard-server/internal/engine/handlers"
)

func HandleEndRound(ctx handlers.Context) (handlers.Result, error) {
	ctx.Input.End = true
	return handlers.Result{Msg: "Раунд завершен игроком.", MsgType: "INFO"}, nil
}
