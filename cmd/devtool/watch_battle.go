package main

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/tebnews/TEBNews_Go/internal/sse"
)

type WatchBattleCommand struct{}

func (c *WatchBattleCommand) Name() string {
	return "watch-battle"
}

func (c *WatchBattleCommand) Description() string {
	return "Follow a battle over its WebSocket stream until it finishes"
}

func (c *WatchBattleCommand) Run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("battle id required")
	}
	battleID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid battle id: %w", err)
	}

	wsURL, err := battleSocketURL(apiURL(), battleID)
	if err != nil {
		return err
	}

	PrintHeader(fmt.Sprintf("Watching battle %s", battleID))

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer conn.Close()

	for {
		var evt sse.Event
		if err := conn.ReadJSON(&evt); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				PrintWarning("Stream closed by server")
				return nil
			}
			return fmt.Errorf("stream read failed: %w", err)
		}

		payload, _ := json.Marshal(evt.Payload)
		PrintInfo("%s %s", evt.Type, payload)

		if evt.Type == sse.EventTypeBattleFinished {
			PrintSuccess("Battle finished")
			return nil
		}
	}
}

// battleSocketURL swaps the http scheme for ws and appends the battle stream path
func battleSocketURL(base string, battleID uuid.UUID) (string, error) {
	u, err := url.Parse(strings.TrimRight(base, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid API_URL: %w", err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path += fmt.Sprintf("/api/v1/battles/%s/ws", battleID)
	return u.String(), nil
}
