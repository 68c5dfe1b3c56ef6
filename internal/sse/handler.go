package sse

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// SnapshotFunc loads the state sent in a stream's connected event. It runs after the
// client is registered, so nothing published between the snapshot and the first
// delivered event is lost.
type SnapshotFunc func(ctx context.Context) (interface{}, error)

// ServeStream streams topic to w as Server-Sent Events until the client disconnects
// or the hub stops. If snapshot fails, ServeStream returns its error without writing
// to w so the caller can respond.
func ServeStream(w http.ResponseWriter, r *http.Request, hub *Hub, topic string, snapshot SnapshotFunc) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return nil
	}

	// Parse event type filters from query param
	var eventTypes []string
	if filterParam := r.URL.Query().Get("types"); filterParam != "" {
		eventTypes = strings.Split(filterParam, ",")
	}

	client := hub.Register(topic, eventTypes)
	defer hub.Unregister(client.ID)

	state, err := loadSnapshot(r.Context(), snapshot)
	if err != nil {
		return err
	}

	slog.Info(LogMsgClientConnected,
		"client_id", client.ID,
		"topic", topic,
		"transport", "sse",
		"total_clients", hub.ClientCount())
	defer slog.Info(LogMsgClientDisconnected, "client_id", client.ID, "topic", topic)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	write := func(event Event) bool {
		msg, err := FormatSSEMessage(event)
		if err != nil {
			slog.Error(LogMsgWriteError, "error", err)
			return true
		}
		if _, err := w.Write(msg); err != nil {
			slog.Warn(LogMsgWriteError, "error", err)
			return false
		}
		flusher.Flush()
		return true
	}

	if !write(connectedEvent(client, state)) {
		return nil
	}

	ticker := time.NewTicker(KeepaliveInterval)
	defer ticker.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-client.EventChannel:
			if !ok {
				// Hub is shutting down
				return nil
			}
			if !write(event) {
				return nil
			}

		case <-ticker.C:
			if !write(Event{Type: EventTypeKeepalive, Topic: topic, Timestamp: time.Now().Unix()}) {
				return nil
			}
		}
	}
}

func loadSnapshot(ctx context.Context, snapshot SnapshotFunc) (interface{}, error) {
	if snapshot == nil {
		return nil, nil
	}
	return snapshot(ctx)
}

func connectedEvent(client *Client, snapshot interface{}) Event {
	return Event{
		ID:        client.ID,
		Type:      EventTypeConnected,
		Topic:     client.Topic,
		Timestamp: time.Now().Unix(),
		Payload: map[string]interface{}{
			"client_id": client.ID,
			"snapshot":  snapshot,
		},
	}
}
