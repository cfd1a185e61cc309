package actions

import (
	"hazard-server/internal/domain"
	"hazard-server/internal/engine/handlers"
	"hazard-server/pkg/api"
)

// HandleInteract просит раунд отметить объект в прицеле в этом тике.
func HandleInteract(ctx handlers.Context, p api.ActionPayload) (handlers.Result, error) {
	return queueTargeted(ctx, domain.ActionInteract, p.TargetID)
}
