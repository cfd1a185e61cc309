package api

import (
	"errors"
	"fmt"
	"hazard-server/internal/domain"
	"strings"
	"unicode/utf8"
)

// MaxNameLength - длина имени в таблице рекордов (клавиатура хоста).
const MaxNameLength = 16

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

func (p TargetPayload) Validate() error {
	if _, err := domain.ParseObjectID(p.TargetID); err != nil {
		return err
	}
	return nil
}

func (p ActionPayload) Validate() error {
	if _, err := domain.ParseObjectID(p.TargetID); err != nil {
		return err
	}
	return nil
}

func (p DifficultyPayload) Validate() error {
	if domain.ParseDifficulty(p.Difficulty) == domain.DifficultyUnknown {
		return fmt.Errorf("%w: %q", domain.ErrUnknownDifficulty, p.Difficulty)
	}
	return nil
}

func (p NamePayload) Validate() error {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return domain.ErrEmptyName
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return fmt.Errorf("name longer than %d characters", MaxNameLength)
	}
	return nil
}

func (p BoardPayload) Validate() error {
	if _, ok := domain.ParseBoardKind(p.Board); !ok {
		return errors.New("unknown leaderboard: " + p.Board)
	}
	return nil
}
