package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"hazard-server/pkg/api"
)

// TypedHandlerFunc - это "чистый" хендлер, который работает с готовой структурой T
type TypedHandlerFunc[T any] func(ctx Context, payload T) (Result, error)

// EmptyHandlerFunc - хендлер, которому НЕ нужны данные (TOGGLE_MODE, END_ROUND)
type EmptyHandlerFunc func(ctx Context) (Result, error)

// WithPayload берет "чистый" хендлер и превращает его в стандартный HandlerFunc.
// Она берет на себя Unmarshal и Validate.
func WithPayload[T any](handler TypedHandlerFunc[T]) HandlerFunc {
	return func(ctx Context, raw json.RawMessage) (Result, error) {
		payload, err := Decode[T](raw)
		if err != nil {
			return Result{}, err
		}
		return handler(ctx, payload)
	}
}

// Decode распаковывает и валидирует payload. Пустой payload - нулевое значение T.
// Сервис использует ее и для команд вне раунда.
func Decode[T any](raw json.RawMessage) (T, error) {
	var payload T

	// 1. Распаковка JSON
	if !isEmptyPayload(raw) {
		if err := json.Unmarshal(raw, &payload); err != nil {
			return payload, fmt.Errorf("invalid payload format: %w", err)
		}
	}

	// 2. Автоматическая валидация
	// Проверяем, реализует ли структура T интерфейс Validator
	if v, ok := any(payload).(api.Validator); ok {
		if err := v.Validate(); err != nil {
			return payload, fmt.Errorf("validation failed: %w", err)
		}
	}

	return payload, nil
}

// WithEmptyPayload - обертка для команд без данных (TOGGLE_MODE, END_ROUND)
func WithEmptyPayload(handler EmptyHandlerFunc) HandlerFunc {
	return func(ctx Context, _ json.RawMessage) (Result, error) {
		// Мы просто игнорируем входящий JSON, так как он не нужен логике.
		return handler(ctx)
	}
}

func isEmptyPayload(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
