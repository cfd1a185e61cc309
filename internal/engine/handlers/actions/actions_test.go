package actions

import (
	"encoding/json"
	"errors"
	"hazard-server/internal/domain"
	"hazard-server/internal/engine/handlers"
	"hazard-server/pkg/api"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSelector struct {
	known map[domain.ObjectID]*domain.SceneObject
	aimed domain.ObjectID
}

func (f *fakeSelector) Aim(id domain.ObjectID) error {
	if !id.IsNil() && f.known[id] == nil {
		return errors.New("object is not in the scene")
	}
	f.aimed = id
	return nil
}

func (f *fakeSelector) CurrentTarget() *domain.SceneObject {
	return f.known[f.aimed]
}

var (
	hazardID = domain.PackObjectID(domain.CategoryHazard, 0, 1)
	safetyID = domain.PackObjectID(domain.CategorySafety, 0, 2)
)

func newCtx() (handlers.Context, *fakeSelector) {
	sel := &fakeSelector{known: map[domain.ObjectID]*domain.SceneObject{
		hazardID: {ID: hazardID, Name: "Frayed Cord", Active: true},
		safetyID: {ID: safetyID, Name: "Smoke Alarm", Active: true},
	}}
	return handlers.Context{RoundID: "r_test", Input: &domain.TickInput{}, Targets: sel}, sel
}

func idString(id domain.ObjectID) string {
	return strconv.FormatUint(uint64(id), 10)
}

func TestHandleAim(t *testing.T) {
	ctx, sel := newCtx()

	res, err := HandleAim(ctx, api.TargetPayload{TargetID: idString(hazardID)})
	require.NoError(t, err)
	assert.Empty(t, res.MsgType)
	assert.Equal(t, hazardID, sel.aimed)

	// Пустая цель снимает прицел
	_, err = HandleAim(ctx, api.TargetPayload{})
	require.NoError(t, err)
	assert.True(t, sel.aimed.IsNil())

	// Неизвестный объект - ответ с ошибкой, но не ошибка хендлера
	res, err = HandleAim(ctx, api.TargetPayload{TargetID: "12345"})
	require.NoError(t, err)
	assert.Equal(t, "ERROR", res.MsgType)
	assert.True(t, ctx.Input.Empty())
}

func TestHandleInteractAndHint(t *testing.T) {
	ctx, sel := newCtx()

	_, err := HandleInteract(ctx, api.ActionPayload{TargetID: idString(hazardID)})
	require.NoError(t, err)
	assert.Equal(t, hazardID, sel.aimed)

	// Без цели подсказка идет по текущему прицелу
	_, err = HandleHint(ctx, api.ActionPayload{})
	require.NoError(t, err)

	require.Len(t, ctx.Input.Targeted, 2)
	assert.Equal(t, domain.ActionInteract, ctx.Input.Targeted[0].Kind)
	assert.Equal(t, hazardID, ctx.Input.Targeted[0].Target.ID)
	assert.Equal(t, domain.ActionHint, ctx.Input.Targeted[1].Kind)
	assert.Equal(t, hazardID, ctx.Input.Targeted[1].Target.ID)
}

func TestHandleTargetedActionsKeepTheirObjects(t *testing.T) {
	ctx, sel := newCtx()

	_, err := HandleInteract(ctx, api.ActionPayload{TargetID: idString(hazardID)})
	require.NoError(t, err)
	_, err = HandleHint(ctx, api.ActionPayload{TargetID: idString(safetyID)})
	require.NoError(t, err)

	// Прицел сместился, но первая команда помнит свой объект
	assert.Equal(t, safetyID, sel.aimed)
	require.Len(t, ctx.Input.Targeted, 2)
	assert.Equal(t, hazardID, ctx.Input.Targeted[0].Target.ID)
	assert.Equal(t, safetyID, ctx.Input.Targeted[1].Target.ID)
}

func TestHandleInteractWithoutAimQueuesNilTarget(t *testing.T) {
	ctx, _ := newCtx()

	_, err := HandleInteract(ctx, api.ActionPayload{})
	require.NoError(t, err)
	require.Len(t, ctx.Input.Targeted, 1)
	assert.Nil(t, ctx.Input.Targeted[0].Target)
}

func TestHandleInteractUnknownTargetSetsNothing(t *testing.T) {
	ctx, _ := newCtx()

	res, err := HandleInteract(ctx, api.ActionPayload{TargetID: "999"})
	require.NoError(t, err)
	assert.Equal(t, "ERROR", res.MsgType)
	assert.Empty(t, ctx.Input.Targeted)
	assert.True(t, ctx.Input.Empty())
}

func TestHandleToggleModeTwiceCancels(t *testing.T) {
	ctx, _ := newCtx()

	_, _ = HandleToggleMode(ctx)
	assert.True(t, ctx.Input.Toggle)
	_, _ = HandleToggleMode(ctx)
	assert.False(t, ctx.Input.Toggle)
}

func TestHandleEndRound(t *testing.T) {
	ctx, _ := newCtx()

	res, err := HandleEndRound(ctx)
	require.NoError(t, err)
	assert.True(t, ctx.Input.End)
	assert.Equal(t, "INFO", res.MsgType)
}

func TestWrappedHandlersDecodePayload(t *testing.T) {
	ctx, _ := newCtx()
	interact := handlers.WithPayload(HandleInteract)

	// null и пустой payload - нулевая структура
	_, err := interact(ctx, json.RawMessage("null"))
	require.NoError(t, err)
	_, err = interact(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, ctx.Input.Targeted, 2)

	_, err = interact(ctx, json.RawMessage(`{"targetId":"abc"}`))
	assert.Error(t, err)

	_, err = interact(ctx, json.RawMessage(`[1,2]`))
	assert.Error(t, err)
}
