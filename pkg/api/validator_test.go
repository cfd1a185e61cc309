package api

import (
	"errors"
	"hazard-server/internal/domain"
	"strconv"
	"strings"
	"testing"
)

func TestPayloadValidation(t *testing.T) {
	// hazard, группа 0, индекс 1
	hazardID := strconv.FormatUint(uint64(domain.PackObjectID(domain.CategoryHazard, 0, 1)), 10)

	tests := []struct {
		name    string
		payload Validator
		wantErr bool
	}{
		{"target ok", TargetPayload{TargetID: hazardID}, false},
		{"target empty clears aim", TargetPayload{}, false},
		{"target garbage", TargetPayload{TargetID: "stove"}, true},
		{"action optional target", ActionPayload{}, false},
		{"action bad target", ActionPayload{TargetID: "-1"}, true},
		{"difficulty name", DifficultyPayload{Difficulty: "Hard"}, false},
		{"difficulty number", DifficultyPayload{Difficulty: "2"}, false},
		{"difficulty unknown", DifficultyPayload{Difficulty: "nightmare"}, true},
		{"difficulty out of range", DifficultyPayload{Difficulty: "4"}, true},
		{"name ok", NamePayload{Name: "ALICE"}, false},
		{"name blank", NamePayload{Name: "   "}, true},
		{"name too long", NamePayload{Name: strings.Repeat("x", MaxNameLength+1)}, true},
		{"board combined", BoardPayload{Board: "combined"}, false},
		{"board difficulty", BoardPayload{Board: "easy"}, false},
		{"board unknown", BoardPayload{Board: "weekly"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payload.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidationErrorsWrapDomain(t *testing.T) {
	if err := (DifficultyPayload{Difficulty: "x"}).Validate(); !errors.Is(err, domain.ErrUnknownDifficulty) {
		t.Errorf("expected ErrUnknownDifficulty, got %v", err)
	}
	if err := (NamePayload{}).Validate(); !errors.Is(err, domain.ErrEmptyName) {
		t.Errorf("expected ErrEmptyName, got %v", err)
	}
}
