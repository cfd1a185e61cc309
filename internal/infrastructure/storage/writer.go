package storage

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"hazard-server/internal/domain"
	"io"
	"os"
	"path/filepath"
)

const (
	MagicHeader string = `HZRP` // 4 байта
	Version1    uint32 = 1
	Extension          = ".hzrp"
)

// ReplayFileHeader - это точное представление заголовка файла в памяти.
// binary.Write умеет писать это целиком, так как тут нет слайсов и строк, только массивы и числа.
type ReplayFileHeader struct {
	Magic       [4]byte // 4 байта
	Version     uint32  // 4 байта
	Seed        int64   // 8 байт
	Timestamp   int64   // 8 байт
	Difficulty  uint8   // 1 байт
	Reserved    [3]byte // 3 байта
	TickRate    int32   // 4 байта
	FinalScore  int32   // 4 байта
	ActionCount int32   // 4 байта
	RoundIDLen  uint16  // 2 байта, сразу за заголовком идет ID раунда
}

// ActionHeader - заголовок каждой записи действия.
type ActionHeader struct {
	Tick       int32  // 4
	ActionType uint8  // 1
	Reserved   uint8  // 1
	PayloadLen uint16 // 2
}

type ReplayService struct {
	SaveDir string
}

func NewReplayService(dir string) *ReplayService {
	// Создаем папку если нет
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		_ = os.MkdirAll(dir, 0755)
	}
	return &ReplayService{SaveDir: dir}
}

// Save пишет запись раунда в файл и возвращает его путь.
func (s *ReplayService) Save(session *domain.ReplaySession) (string, error) {
	filename := fmt.Sprintf("replay_%d_%s_%d%s",
		session.Seed, session.Difficulty.String(), session.Timestamp, Extension)
	path := filepath.Join(s.SaveDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := writeBinary(w, session); err != nil {
		return "", err
	}
	return path, w.Flush()
}

func writeBinary(w io.Writer, s *domain.ReplaySession) error {
	roundID := []byte(s.RoundID)
	if len(roundID) > 65535 {
		return fmt.Errorf("round id too long: %d", len(roundID))
	}

	// 1. Подготавливаем и пишем ГЛОБАЛЬНЫЙ ЗАГОЛОВОК
	header := ReplayFileHeader{
		Version:     Version1,
		Seed:        s.Seed,
		Timestamp:   s.Timestamp,
		Difficulty:  uint8(s.Difficulty),
		TickRate:    int32(s.TickRate),
		FinalScore:  int32(s.FinalScore),
		ActionCount: int32(len(s.Actions)),
		RoundIDLen:  uint16(len(roundID)),
	}
	copy(header.Magic[:], MagicHeader) // Копируем строку в массив [4]byte

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := w.Write(roundID); err != nil {
		return err
	}

	// 2. Пишем действия
	for _, act := range s.Actions {
		payloadLen := len(act.Payload)
		if payloadLen > 65535 {
			return fmt.Errorf("payload too long: %d", payloadLen)
		}

		actHeader := ActionHeader{
			Tick:       int32(act.Tick),
			ActionType: uint8(act.Action),
			PayloadLen: uint16(payloadLen),
		}

		// Пишем заголовок действия одной командой
		if err := binary.Write(w, binary.LittleEndian, &actHeader); err != nil {
			return err
		}

		// Пишем динамические данные (тело)
		if payloadLen > 0 {
			if _, err := w.Write(act.Payload); err != nil {
				return err
			}
		}
	}

	return nil
}
