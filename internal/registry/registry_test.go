package registry

import (
	"errors"
	"hazard-server/internal/domain"
	"hazard-server/pkg/logger"
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	logger.Configure("error", "text", os.Stderr)
	os.Exit(m.Run())
}

func TestRegistry_DefaultsAndDifficulty(t *testing.T) {
	r := New(10)
	defer r.Close()

	if r.Difficulty() != domain.DifficultyEasy {
		t.Errorf("default difficulty = %s, want easy", r.Difficulty())
	}

	if err := r.SetDifficulty(domain.DifficultyHard); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Difficulty() != domain.DifficultyHard {
		t.Errorf("difficulty = %s, want hard", r.Difficulty())
	}

	// Неизвестная сложность: ошибка, прежнее значение остается
	err := r.SetDifficulty(domain.Difficulty(9))
	if !errors.Is(err, domain.ErrUnknownDifficulty) {
		t.Errorf("expected ErrUnknownDifficulty, got %v", err)
	}
	if r.Difficulty() != domain.DifficultyHard {
		t.Errorf("invalid difficulty must keep previous value, got %s", r.Difficulty())
	}
}

func TestRegistry_RecordPlayerNameInsertsIntoBothBoards(t *testing.T) {
	r := New(10)
	defer r.Close()

	r.SetDifficulty(domain.DifficultyMedium)
	r.RecordPlayerScore(4200)

	entry, err := r.RecordPlayerName("  Alice ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Name != "Alice" || entry.Score != 4200 || entry.Difficulty != domain.DifficultyMedium {
		t.Errorf("entry = %+v", entry)
	}
	if entry.ID == "" {
		t.Error("entry must get an ID")
	}

	// Одна и та же запись в обеих таблицах
	if r.entryAt(domain.BoardMedium, 0) != entry || r.entryAt(domain.BoardCombined, 0) != entry {
		t.Error("difficulty and combined boards must share the entry")
	}
	if len(r.Leaderboard(domain.BoardEasy)) != 0 || len(r.Leaderboard(domain.BoardHard)) != 0 {
		t.Error("other difficulty boards must stay empty")
	}

	// Результат использован: второе имя без нового раунда не принимается
	if _, err := r.RecordPlayerName("Bob"); !errors.Is(err, domain.ErrNoPendingScore) {
		t.Errorf("expected ErrNoPendingScore, got %v", err)
	}
}

func TestRegistry_PendingDifficultyIsFixedAtScore(t *testing.T) {
	r := New(10)
	defer r.Close()

	r.SetDifficulty(domain.DifficultyHard)
	r.RecordPlayerScore(100)
	r.SetDifficulty(domain.DifficultyEasy)

	entry, err := r.RecordPlayerName("Carol")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Difficulty != domain.DifficultyHard {
		t.Errorf("entry difficulty = %s, want hard", entry.Difficulty)
	}
	if len(r.Leaderboard(domain.BoardHard)) != 1 {
		t.Error("entry must land on the hard board")
	}
}

func TestRegistry_CombinedRanksIndependently(t *testing.T) {
	r := New(10)
	defer r.Close()

	play := func(d domain.Difficulty, score int, name string) {
		r.SetDifficulty(d)
		r.RecordPlayerScore(score)
		if _, err := r.RecordPlayerName(name); err != nil {
			t.Fatalf("record %s: %v", name, err)
		}
	}
	play(domain.DifficultyEasy, 500, "easy-low")
	play(domain.DifficultyHard, 900, "hard-high")
	play(domain.DifficultyEasy, 700, "easy-high")

	combined := r.Leaderboard(domain.BoardCombined)
	want := []string{"hard-high", "easy-high", "easy-low"}
	if len(combined) != len(want) {
		t.Fatalf("combined has %d entries, want %d", len(combined), len(want))
	}
	for i, name := range want {
		if combined[i].Name != name {
			t.Errorf("combined[%d] = %s, want %s", i, combined[i].Name, name)
		}
	}

	easy := r.Leaderboard(domain.BoardEasy)
	if len(easy) != 2 || easy[0].Name != "easy-high" {
		t.Errorf("easy board = %+v", easy)
	}
}

func TestRegistry_EmptyNameRejected(t *testing.T) {
	r := New(10)
	defer r.Close()

	r.RecordPlayerScore(10)
	if _, err := r.RecordPlayerName("   "); !errors.Is(err, domain.ErrEmptyName) {
		t.Errorf("expected ErrEmptyName, got %v", err)
	}
	if _, ok := r.PendingScore(); !ok {
		t.Error("rejected name must keep the pending score")
	}
}

func TestRegistry_Close(t *testing.T) {
	r := New(10)
	r.RecordPlayerScore(10)
	r.RecordPlayerName("Dave")

	r.Close()
	r.Close() // повторно - no-op

	if len(r.Leaderboard(domain.BoardCombined)) != 0 {
		t.Error("closed registry must drop its boards")
	}
	if err := r.SetDifficulty(domain.DifficultyHard); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
	r.RecordPlayerScore(99)
	if _, ok := r.PendingScore(); ok {
		t.Error("closed registry must not accept scores")
	}
	if !r.Snapshot().Closed {
		t.Error("snapshot must report closed state")
	}
}

func TestRegistry_Snapshot(t *testing.T) {
	r := New(5)
	defer r.Close()

	r.RecordPlayerScore(300)
	snap := r.Snapshot()

	if snap.PendingScore == nil || *snap.PendingScore != 300 {
		t.Errorf("pending score = %v, want 300", snap.PendingScore)
	}
	if snap.Capacity != 5 {
		t.Errorf("capacity = %d, want 5", snap.Capacity)
	}
	if len(snap.Boards) != len(domain.BoardKinds) {
		t.Errorf("snapshot has %d boards, want %d", len(snap.Boards), len(domain.BoardKinds))
	}
}

// entryAt отдает сам указатель из таблицы, без копии.
func (r *Registry) entryAt(kind domain.BoardKind, i int) *domain.PlayerEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.boards[kind].At(i)
}
