package actions

import (
	"hazard-server/internal/domain"
	"hazard-server/internal/engine/handlers"
	"hazard-server/pkg/api"
)

// HandleAim наводит прицел на объект. Пустой TargetID снимает прицел.
func HandleAim(ctx handlers.Context, p api.TargetPayload) (handlers.Result, error) {
	id, _ := domain.ParseObjectID(p.TargetID) // формат уже проверен Validate
	if err := ctx.Targets.Aim(id); err != nil {
		return handlers.Result{Msg: err.Error(), MsgType: "ERROR"}, nil
	}
	return handlers.EmptyResult(), nil
}

// aimIfSet используется INTERACT и HINT: если хост прислал цель вместе
// с действием, сначала наводимся на нее.
func aimIfSet(ctx handlers.Context, targetID string) (handlers.Result, bool) {
	if targetID == "" {
		return handlers.Result{}, true
	}
	res, _ := HandleAim(ctx, api.TargetPayload{TargetID: targetID})
	return res, res.MsgType != "ERROR"
}

// queueTargeted наводится на цель команды (если она задана) и запоминает
// объект в прицеле. Раунд применит действие к нему, даже если до тика
// придет другая команда с другой целью.
func queueTargeted(ctx handlers.Context, kind domain.ActionType, targetID string) (handlers.Result, error) {
	if res, ok := aimIfSet(ctx, targetID); !ok {
		return res, nil
	}
	ctx.Input.Targeted = append(ctx.Input.Targeted, domain.TargetedAction{
		Kind:   kind,
		Target: ctx.Targets.CurrentTarget(),
	})
	return handlers.EmptyResult(), nil
}
