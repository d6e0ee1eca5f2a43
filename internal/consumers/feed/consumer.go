package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/coinquestapp/coinquest-backend/pkg/enums"
	"github.com/coinquestapp/coinquest-backend/pkg/logger"
	"github.com/coinquestapp/coinquest-backend/pkg/outbox"
)

const (
	feedConsumerName  = "activity-feed"
	defaultFeedLength = 100
)

type feedStore interface {
	FeedKey(userID string) string
	LPushTrim(ctx context.Context, key string, value any, maxLen int64) error
}

type idempotencyChecker interface {
	CheckAndMarkProcessed(ctx context.Context, consumer string, eventID uuid.UUID) (bool, error)
	Delete(ctx context.Context, consumer string, eventID uuid.UUID) error
}

// Entry is a single activity feed item as stored in Redis.
type Entry struct {
	EventID     string          `json:"event_id"`
	EventType   string          `json:"event_type"`
	ChallengeID string          `json:"challenge_id,omitempty"`
	ActorID     string          `json:"actor_id,omitempty"`
	ActorName   string          `json:"actor_name,omitempty"`
	OccurredAt  time.Time       `json:"occurred_at"`
	Data        json.RawMessage `json:"data,omitempty"`
}

// Consumer fans challenge events out to per-user Redis activity feeds,
// honoring Redis idempotency so redelivered messages are dropped.
type Consumer struct {
	store       feedStore
	manager     idempotencyChecker
	logg        *logger.Logger
	maxEntries  int64
	eventFilter map[enums.OutboxEventType]struct{}
}

// NewConsumer builds a new feed consumer. maxEntries <= 0 falls back to the default cap.
func NewConsumer(store feedStore, manager idempotencyChecker, maxEntries int64, logg *logger.Logger) (*Consumer, error) {
	if store == nil {
		return nil, fmt.Errorf("feed store required")
	}
	if manager == nil {
		return nil, fmt.Errorf("idempotency manager required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if maxEntries <= 0 {
		maxEntries = defaultFeedLength
	}
	return &Consumer{
		store:      store,
		manager:    manager,
		logg:       logg,
		maxEntries: maxEntries,
		eventFilter: map[enums.OutboxEventType]struct{}{
			enums.EventChallengeCreated:   {},
			enums.EventChallengeAccepted:  {},
			enums.EventChallengeRejected:  {},
			enums.EventChallengeCancelled: {},
			enums.EventChallengeSettled:   {},
			enums.EventChallengeExpired:   {},
		},
	}, nil
}

// Process pushes the event onto the feed of every challenge participant.
func (c *Consumer) Process(ctx context.Context, eventType enums.OutboxEventType, envelope outbox.PayloadEnvelope) error {
	logCtx := c.logg.WithFields(ctx, map[string]any{
		"event_id":   envelope.EventID,
		"event_type": eventType,
	})

	if _, ok := c.eventFilter[eventType]; !ok {
		c.logg.Info(logCtx, "event not handled by feed consumer")
		return nil
	}

	if envelope.EventID == "" {
		return fmt.Errorf("event id missing")
	}
	eventID, err := uuid.Parse(envelope.EventID)
	if err != nil {
		return fmt.Errorf("parse event id: %w", err)
	}

	already, err := c.manager.CheckAndMarkProcessed(ctx, feedConsumerName, eventID)
	if err != nil {
		return fmt.Errorf("idempotency check: %w", err)
	}
	if already {
		c.logg.Info(logCtx, "event already processed")
		return nil
	}

	entry, recipients, err := buildEntry(eventType, envelope)
	if err != nil {
		c.logg.Error(logCtx, "failed to build feed entry", err)
		_ = c.manager.Delete(ctx, feedConsumerName, eventID)
		return err
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		_ = c.manager.Delete(ctx, feedConsumerName, eventID)
		return fmt.Errorf("encode feed entry: %w", err)
	}

	for _, userID := range recipients {
		if err := c.store.LPushTrim(ctx, c.store.FeedKey(userID), raw, c.maxEntries); err != nil {
			c.logg.Error(logCtx, "failed to push feed entry", err)
			_ = c.manager.Delete(ctx, feedConsumerName, eventID)
			return err
		}
	}

	c.logg.Info(logCtx, "challenge event fanned out to feeds")
	return nil
}

func buildEntry(eventType enums.OutboxEventType, envelope outbox.PayloadEnvelope) (*Entry, []string, error) {
	payload := map[string]any{}
	if len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, &payload); err != nil {
			return nil, nil, fmt.Errorf("decode payload: %w", err)
		}
		if payload == nil {
			payload = map[string]any{}
		}
	}

	entry := &Entry{
		EventID:    envelope.EventID,
		EventType:  string(eventType),
		OccurredAt: envelope.OccurredAt,
		Data:       envelope.Data,
	}
	if id := stringValue(payload, "challenge_id"); id != nil {
		entry.ChallengeID = *id
	}
	if envelope.Actor != nil {
		if envelope.Actor.UserID != uuid.Nil {
			entry.ActorID = envelope.Actor.UserID.String()
		}
		entry.ActorName = envelope.Actor.Username
	}

	recipients := participantIDs(payload)
	if len(recipients) == 0 {
		return nil, nil, fmt.Errorf("no participants in %s payload", eventType)
	}
	return entry, recipients, nil
}

// participantIDs collects the distinct user ids referenced by a challenge
// payload, covering both lifecycle and settlement shapes.
func participantIDs(payload map[string]any) []string {
	var ids []string
	seen := map[string]struct{}{}
	for _, key := range []string{"challenger_id", "challenged_id", "winner_id", "loser_id"} {
		value := stringValue(payload, key)
		if value == nil {
			continue
		}
		if _, err := uuid.Parse(*value); err != nil {
			continue
		}
		if _, dup := seen[*value]; dup {
			continue
		}
		seen[*value] = struct{}{}
		ids = append(ids, *value)
	}
	return ids
}

func stringValue(payload map[string]any, key string) *string {
	if payload == nil {
		return nil
	}
	if raw, ok := payload[key]; ok {
		if str, ok := raw.(string); ok {
			trimmed := strings.TrimSpace(str)
			if trimmed != "" {
				return &trimmed
			}
		}
	}
	return nil
}
