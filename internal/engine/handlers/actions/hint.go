package actions

import (
	"hazard-server/internal/domain"
	"hazard-server/internal/engine/handlers"
	"hazard-server/pkg/api"
)

// HandleHint просит раунд показать подсказку по объекту в прицеле.
func HandleHint(ctx handlers.Context, p api.ActionPayload) (handlers.Result, error) {
	return queueTargeted(ctx, domain.ActionHint, p.TargetID)
}
