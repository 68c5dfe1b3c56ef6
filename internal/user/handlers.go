package user

import (
	"context"

	"github.com/google/uuid"

	"github.com/tebnews/TEBNews_Go/internal/domain"
	"github.com/tebnews/TEBNews_Go/internal/event"
	"github.com/tebnews/TEBNews_Go/internal/logger"
)

// RegisterCacheInvalidation drops cached users whose balance or inventory an event changed.
func RegisterCacheInvalidation(bus event.Bus, svc Service) {
	handler := func(ctx context.Context, evt event.Event) error {
		for _, id := range affectedUsers(evt) {
			svc.InvalidateUser(id)
			logger.FromContext(ctx).Debug(LogMsgCacheInvalidated, "user_id", id, "event", evt.Type)
		}
		return nil
	}
	for _, t := range event.AllTypes {
		bus.Subscribe(t, handler)
	}
}

func affectedUsers(evt event.Event) []uuid.UUID {
	var raw []string
	if evt.Type == event.BattleFinished {
		p, err := event.DecodePayload[domain.BattleFinishedPayload](evt.Payload)
		if err != nil {
			return nil
		}
		raw = append(raw, p.CreatorID, p.JoinerID)
	} else if v, ok := evt.GetMetadataValue(event.MetadataKeyUserID).(string); ok {
		raw = append(raw, v)
	}

	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		if id, err := uuid.Parse(r); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}
