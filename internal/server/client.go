package server

import (
	"net/http"
	"time"

	"courier-server/internal/engine"
	"courier-server/pkg/api"
	"courier-server/pkg/logger"
	"courier-server/pkg/utils"

	"github.com/gorilla/websocket"
)

// Настройки WebSocket
const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// Лимит входящего сообщения. Карта приходит текстом в LOAD,
	// поэтому лимит заметно больше, чем нужно коротким командам.
	maxMessageSize = 128 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между Websocket и Service.
// Каждому подключению принадлежит своя сессия симуляции:
// ее создает первый LOAD, уносит за собой дисконнект.
type Client struct {
	Engine    *engine.Service
	Conn      *websocket.Conn
	Send      chan api.ServerResponse
	SessionID string
}

func NewClient(eng *engine.Service, conn *websocket.Conn) *Client {
	sessionID := utils.GenerateID()
	return &Client{
		Engine:    eng,
		Conn:      conn,
		Send:      eng.Hub.Register(sessionID),
		SessionID: sessionID,
	}
}

// readPump читает команды от клиента
func (c *Client) readPump() {
	defer func() {
		c.Engine.Hub.Unregister(c.SessionID)
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Warn("failed to close websocket connection")
		}
		// Сессия живет, пока жив клиент.
		c.Engine.Remove(c.SessionID)
		logger.Log.WithField("session", c.SessionID).Info("Client disconnected")
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

	logger.Log.WithField("session", c.SessionID).Info("Client connected")

	for {
		var cmd api.ClientCommand
		if err := c.Conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Log.WithError(err).Warn("Unexpected websocket close")
			}
			return
		}

		// Команды сессии обрабатываются последовательно прямо здесь:
		// один клиент - одна сессия - один поток команд.
		resp := c.Engine.ProcessCommand(c.SessionID, cmd)
		c.Engine.Hub.SendTo(c.SessionID, resp)
	}
}

// writePump шлет клиенту снимки из личного канала сессии
// и поддерживает соединение пингами.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				// Хаб закрыл канал.
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
