package actions

import (
	"hazard-server/internal/engine/handlers"
)

// HandleToggleMode переключает режим. Два нажатия за тик гасят друг друга.
func HandleToggleMode(ctx handlers.Context) (handlers.Result, error) {
	ctx.Input.Toggle = !ctx.Input.Toggle
	return handlers.EmptyResult(), nil
}
