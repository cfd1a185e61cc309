package server

import (
	"hazard-server/internal/engine"
	"hazard-server/pkg/api"
	"hazard-server/pkg/logger"
	"hazard-server/pkg/utils"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между Websocket и GameService
type Client struct {
	Game      *engine.GameService
	Conn      *websocket.Conn
	Send      chan api.ServerResponse
	SessionID string

	// Канал подписки в хабе. Переподключение с тем же токеном заменяет его.
	updates chan api.ServerResponse
}

func NewClient(game *engine.GameService, conn *websocket.Conn) *Client {
	return &Client{
		Game: game,
		Conn: conn,
		Send: make(chan api.ServerResponse, 256),
	}
}

// readPump читает команды от хоста
func (c *Client) readPump() {
	defer func() {
		if c.SessionID != "" {
			fields := logrus.Fields{
				"component":  "server",
				"session_id": c.SessionID,
			}
			if c.Game.Hub.Unregister(c.SessionID, c.updates) {
				// Раунд ушедшего хоста завершается, результат ждет имени
				c.Game.Disconnect(c.SessionID)
				logger.Log.WithFields(fields).Info("Client disconnected")
			} else {
				// Сессию уже держит новое соединение
				logger.Log.WithFields(fields).Debug("Replaced connection closed")
			}
		} else {
			close(c.Send)
		}
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("failed to close websocket connection")
		}
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logger.Log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			logger.Log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	// 1. HANDSHAKE: первое сообщение - INIT, токен по желанию (переподключение)
	var hello api.ClientCommand
	if err := c.Conn.ReadJSON(&hello); err != nil {
		logger.Log.WithField("component", "server").Warn("Handshake failed")
		return
	}

	c.SessionID = hello.Token
	if c.SessionID == "" {
		c.SessionID = utils.GenerateID()
	}

	logger.Log.WithFields(logrus.Fields{
		"component":  "server",
		"session_id": c.SessionID,
	}).Info("Client connected")

	// 2. ПОДПИСКА НА ОБНОВЛЕНИЯ
	updates := c.Game.Hub.Register(c.SessionID)
	c.updates = updates

	// Запускаем пересылку обновлений из Hub в writePump
	go func() {
		for msg := range updates {
			c.Send <- msg
		}
		close(c.Send)
	}()

	// Отправляем INIT (хост узнает свой SessionID)
	c.Game.ProcessCommand(api.ClientCommand{Action: "INIT", Token: c.SessionID})

	// 3. ЦИКЛ ЧТЕНИЯ КОМАНД
	for {
		var cmd api.ClientCommand
		err := c.Conn.ReadJSON(&cmd)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.WithField("component", "server").WithError(err).Error("WS error")
			}
			break
		}
		// Токен всегда из сессии, чужим раундом не управлять
		cmd.Token = c.SessionID
		c.Game.ProcessCommand(cmd)
	}
}

// writePump отправляет данные хосту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					logger.Log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				logger.Log.WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
