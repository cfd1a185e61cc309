package server

import (
	"encoding/json"
	"hazard-server/internal/engine"
	"hazard-server/internal/registry"
	"hazard-server/pkg/api"
	"hazard-server/pkg/logger"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Configure("error", "text", os.Stderr)
	os.Exit(m.Run())
}

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	svc := engine.NewService(engine.NewConfig(), registry.New(10), nil, nil)
	srv := New(svc, "0")
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return srv, ts
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestHealthAndVersion(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	var info map[string]any
	assert.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/version", &info))
	assert.Contains(t, info, "version")
}

func TestLeaderboardRoute(t *testing.T) {
	srv, ts := newTestServer(t)
	reg := srv.Engine.Registry

	reg.RecordPlayerScore(4200)
	_, err := reg.RecordPlayerName("ALICE")
	require.NoError(t, err)

	var view api.LeaderboardView
	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/api/v1/leaderboards/easy", &view))
	assert.Equal(t, "easy", view.Board)
	require.Len(t, view.Entries, 1)
	assert.Equal(t, 4200, view.Entries[0].Score)

	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/api/v1/leaderboards/combined", &view))
	assert.Len(t, view.Entries, 1)

	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/api/v1/leaderboards/hard", &view))
	assert.Empty(t, view.Entries)

	assert.Equal(t, http.StatusNotFound, getJSON(t, ts.URL+"/api/v1/leaderboards/weekly", nil))
}

func TestDebugRoutes(t *testing.T) {
	_, ts := newTestServer(t)

	var rounds []engine.RoundSummary
	assert.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/debug/rounds", &rounds))
	assert.Empty(t, rounds)

	var snap map[string]any
	assert.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/debug/registry", &snap))
	assert.Equal(t, "easy", snap["difficulty"])

	var catalog struct {
		Hazards  int   `json:"hazards"`
		Problems []any `json:"problems"`
	}
	assert.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/debug/catalog", &catalog))
	assert.Positive(t, catalog.Hazards)
	assert.Empty(t, catalog.Problems)

	var hub struct {
		Subscribers     int  `json:"subscribers"`
		ActiveConnected bool `json:"active_connected"`
	}
	assert.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/debug/hub", &hub))
	assert.Equal(t, 0, hub.Subscribers)
	assert.False(t, hub.ActiveConnected)
}

func TestWebSocketSession(t *testing.T) {
	srv, ts := newTestServer(t)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	require.NoError(t, conn.WriteJSON(api.ClientCommand{Action: "INIT"}))

	var state api.ServerResponse
	require.NoError(t, conn.ReadJSON(&state))
	assert.Equal(t, api.TypeState, state.Type)
	require.NotEmpty(t, state.SessionID)
	assert.Equal(t, "easy", state.Leaderboard.Board)

	require.NoError(t, conn.WriteJSON(api.ClientCommand{
		Action:  "SET_DIFFICULTY",
		Payload: json.RawMessage(`{"difficulty":"medium"}`),
	}))
	var board api.ServerResponse
	require.NoError(t, conn.ReadJSON(&board))
	assert.Equal(t, api.TypeLeaderboard, board.Type)
	assert.Equal(t, "medium", board.Leaderboard.Board)

	// Команда раунда без раунда - ошибка только этому хосту
	require.NoError(t, conn.WriteJSON(api.ClientCommand{Action: "HINT"}))
	var errMsg api.ServerResponse
	require.NoError(t, conn.ReadJSON(&errMsg))
	assert.Equal(t, api.TypeError, errMsg.Type)

	assert.Equal(t, 1, srv.Engine.Hub.SubscriberCount())
}

func readUntil(t *testing.T, conn *websocket.Conn, msgType string) api.ServerResponse {
	t.Helper()
	for {
		var msg api.ServerResponse
		require.NoError(t, conn.ReadJSON(&msg))
		if msg.Type == msgType {
			return msg
		}
	}
}

func TestWebSocketReconnectKeepsSessionAndRound(t *testing.T) {
	srv, ts := newTestServer(t)
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"

	first, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer first.Close()
	require.NoError(t, first.SetReadDeadline(time.Now().Add(5*time.Second)))

	require.NoError(t, first.WriteJSON(api.ClientCommand{Action: "INIT", Token: "tok"}))
	readUntil(t, first, api.TypeState)
	require.NoError(t, first.WriteJSON(api.ClientCommand{Action: "START_ROUND"}))
	started := readUntil(t, first, api.TypeState)
	require.NotNil(t, started.Round)

	second, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer second.Close()
	require.NoError(t, second.SetReadDeadline(time.Now().Add(5*time.Second)))

	require.NoError(t, second.WriteJSON(api.ClientCommand{Action: "INIT", Token: "tok"}))
	resumed := readUntil(t, second, api.TypeState)
	require.NotNil(t, resumed.Round, "reconnected host must see its round")
	assert.Equal(t, started.Round.ID, resumed.Round.ID)

	// Старое соединение закрывается сервером и уходит последним
	for {
		var msg api.ServerResponse
		if err := first.ReadJSON(&msg); err != nil {
			break
		}
	}
	_ = first.Close()

	hub := srv.Engine.Hub
	assert.Never(t, func() bool {
		return !hub.HasSubscriber("tok") || srv.Engine.ActiveInstance() == nil
	}, 300*time.Millisecond, 10*time.Millisecond)

	// Новое соединение управляет раундом
	require.NoError(t, second.WriteJSON(api.ClientCommand{Action: "TOGGLE_MODE"}))
	update := readUntil(t, second, api.TypeUpdate)
	for !update.Round.HazardMode {
		update = readUntil(t, second, api.TypeUpdate)
	}
	assert.True(t, update.Round.Active)
}
