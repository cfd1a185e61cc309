package storage

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"hazard-server/internal/domain"
	"io"
	"os"
)

func (s *ReplayService) Load(path string) (*domain.ReplaySession, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readBinary(f)
}

func readBinary(r io.Reader) (*domain.ReplaySession, error) {
	// 1. Читаем заголовок целиком
	var header ReplayFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	// Валидация
	if string(header.Magic[:]) != MagicHeader {
		return nil, fmt.Errorf("invalid magic")
	}
	if header.Version != Version1 {
		return nil, fmt.Errorf("unsupported version: %d (expected %d)", header.Version, Version1)
	}
	if header.ActionCount < 0 {
		return nil, fmt.Errorf("corrupted action count: %d", header.ActionCount)
	}

	session := &domain.ReplaySession{
		Seed:       header.Seed,
		Timestamp:  header.Timestamp,
		Difficulty: domain.Difficulty(header.Difficulty),
		TickRate:   int(header.TickRate),
		FinalScore: int(header.FinalScore),
		Actions:    make([]domain.ReplayAction, header.ActionCount),
	}

	// 2. ID раунда
	if header.RoundIDLen > 0 {
		buf := make([]byte, header.RoundIDLen)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("failed to read round id: %w", err)
		}
		session.RoundID = string(buf)
	}

	// 3. Читаем Actions
	for i := 0; i < int(header.ActionCount); i++ {
		var ah ActionHeader
		if err := binary.Read(r, binary.LittleEndian, &ah); err != nil {
			return nil, err
		}

		act := domain.ReplayAction{
			Tick:   int(ah.Tick),
			Action: domain.ActionType(ah.ActionType),
		}

		if ah.PayloadLen > 0 {
			act.Payload = make([]byte, ah.PayloadLen)
			if _, err := io.ReadFull(r, act.Payload); err != nil {
				return nil, err
			}
		} else {
			act.Payload = json.RawMessage{}
		}

		session.Actions[i] = act
	}

	return session, nil
}
