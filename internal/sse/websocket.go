package sse

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// Upgrader is shared by every WebSocket stream. Streams are read-only public data.
var Upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeWebSocket streams topic over a WebSocket. Each hub event is one JSON text frame.
// Inbound frames are read only to observe pongs and closes. A snapshot error is
// returned before the upgrade, with nothing written to w.
func ServeWebSocket(w http.ResponseWriter, r *http.Request, hub *Hub, topic string, snapshot SnapshotFunc) error {
	client := hub.Register(topic, nil)
	defer hub.Unregister(client.ID)

	state, err := loadSnapshot(r.Context(), snapshot)
	if err != nil {
		return err
	}

	conn, err := Upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied to the client
		slog.Warn(LogMsgUpgradeFailed, "error", err)
		return nil
	}
	defer conn.Close()

	slog.Info(LogMsgClientConnected,
		"client_id", client.ID,
		"topic", topic,
		"transport", "websocket",
		"total_clients", hub.ClientCount())
	defer slog.Info(LogMsgClientDisconnected, "client_id", client.ID, "topic", topic)

	closed := make(chan struct{})
	go readPump(conn, closed)

	write := func(v interface{}) bool {
		_ = conn.SetWriteDeadline(time.Now().Add(WriteTimeout))
		if err := conn.WriteJSON(v); err != nil {
			slog.Warn(LogMsgWriteError, "error", err)
			return false
		}
		return true
	}

	if !write(connectedEvent(client, state)) {
		return nil
	}

	ticker := time.NewTicker(KeepaliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			return nil

		case event, ok := <-client.EventChannel:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
					time.Now().Add(WriteTimeout))
				return nil
			}
			if !write(event) {
				return nil
			}

		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(WriteTimeout)); err != nil {
				return nil
			}
		}
	}
}

// readPump drains inbound frames so control messages are processed, and signals closed on error.
func readPump(conn *websocket.Conn, closed chan<- struct{}) {
	defer close(closed)

	conn.SetReadLimit(MaxInboundMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(PongTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(PongTimeout))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
