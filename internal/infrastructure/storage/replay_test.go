package storage

import (
	"bytes"
	"encoding/json"
	"hazard-server/internal/domain"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSession() *domain.ReplaySession {
	return &domain.ReplaySession{
		RoundID:    "r_4f2a9c01",
		Seed:       42,
		Difficulty: domain.DifficultyMedium,
		TickRate:   10,
		Timestamp:  1764806400,
		FinalScore: -1200,
		Actions: []domain.ReplayAction{
			{Tick: 1, Action: domain.ActionAim, Payload: json.RawMessage(`{"targetId":"72057594037927937"}`)},
			{Tick: 1, Action: domain.ActionInteract, Payload: json.RawMessage{}},
			{Tick: 7, Action: domain.ActionToggleMode, Payload: json.RawMessage{}},
		},
	}
}

func TestReplayBinaryRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	in := sampleSession()
	require.NoError(t, writeBinary(&buf, in))

	out, err := readBinary(&buf)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestReplayRejectsBadMagic(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeBinary(&buf, sampleSession()))
	raw := buf.Bytes()
	copy(raw, "CDRP")

	_, err := readBinary(bytes.NewReader(raw))
	assert.ErrorContains(t, err, "invalid magic")
}

func TestReplayRejectsTruncatedFile(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeBinary(&buf, sampleSession()))
	raw := buf.Bytes()

	_, err := readBinary(bytes.NewReader(raw[:len(raw)-5]))
	assert.Error(t, err)
}

func TestReplayServiceSaveLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "replays")
	svc := NewReplayService(dir)

	path, err := svc.Save(sampleSession())
	require.NoError(t, err)
	assert.Equal(t, Extension, filepath.Ext(path))

	_, err = os.Stat(path)
	require.NoError(t, err)

	loaded, err := svc.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "r_4f2a9c01", loaded.RoundID)
	assert.Equal(t, domain.DifficultyMedium, loaded.Difficulty)
	assert.Len(t, loaded.Actions, 3)
}
