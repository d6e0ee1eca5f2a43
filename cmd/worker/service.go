package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	pubsub "cloud.google.com/go/pubsub/v2"

	"github.com/coinquestapp/coinquest-backend/pkg/config"
	"github.com/coinquestapp/coinquest-backend/pkg/enums"
	"github.com/coinquestapp/coinquest-backend/pkg/logger"
	"github.com/coinquestapp/coinquest-backend/pkg/outbox"
)

type challengeEventProcessor interface {
	Process(ctx context.Context, eventType enums.OutboxEventType, envelope outbox.PayloadEnvelope) error
}

type pinger interface {
	Ping(context.Context) error
}

type ServiceParams struct {
	Config       *config.Config
	Logger       *logger.Logger
	Redis        pinger
	PubSub       pinger
	Subscription *pubsub.Subscriber
	Processor    challengeEventProcessor
}

// Service drains the challenge event subscription and hands each message to
// the feed processor. Malformed messages are acked so they do not wedge the
// subscription; retryable failures are nacked for redelivery.
type Service struct {
	cfg          *config.Config
	logg         *logger.Logger
	redis        pinger
	pubsub       pinger
	subscription *pubsub.Subscriber
	processor    challengeEventProcessor
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Config == nil {
		return nil, errors.New("config is required")
	}
	if params.Logger == nil {
		return nil, errors.New("logger is required")
	}
	if params.Redis == nil {
		return nil, errors.New("redis client is required")
	}
	if params.PubSub == nil {
		return nil, errors.New("pubsub client is required")
	}
	if params.Subscription == nil {
		return nil, errors.New("challenge subscription is required")
	}
	if params.Processor == nil {
		return nil, errors.New("event processor is required")
	}

	return &Service{
		cfg:          params.Config,
		logg:         params.Logger,
		redis:        params.Redis,
		pubsub:       params.PubSub,
		subscription: params.Subscription,
		processor:    params.Processor,
	}, nil
}

func (s *Service) ensureReadiness(ctx context.Context) error {
	if err := pingDependency(ctx, s.logg, "redis", s.redis.Ping); err != nil {
		return err
	}
	if err := pingDependency(ctx, s.logg, "pubsub", s.pubsub.Ping); err != nil {
		return err
	}
	s.logg.Info(ctx, "all worker dependencies are ready")
	return nil
}

func pingDependency(ctx context.Context, logg *logger.Logger, name string, fn func(context.Context) error) error {
	if err := fn(ctx); err != nil {
		logg.Error(ctx, fmt.Sprintf("%s ping failed", name), err)
		return fmt.Errorf("%s ping failed: %w", name, err)
	}
	return nil
}

func (s *Service) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if err := s.ensureReadiness(ctx); err != nil {
		return err
	}

	return s.subscription.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		if s.handle(ctx, msg) {
			msg.Ack()
			return
		}
		msg.Nack()
	})
}

// handle reports whether the message should be acked.
func (s *Service) handle(ctx context.Context, msg *pubsub.Message) bool {
	rawType := msg.Attributes["event_type"]
	logCtx := s.logg.WithFields(ctx, map[string]any{
		"message_id": msg.ID,
		"event_type": rawType,
	})

	eventType, err := enums.ParseOutboxEventType(rawType)
	if err != nil {
		s.logg.Warn(s.logg.WithField(logCtx, "error", err.Error()), "dropping message with unknown event type")
		return true
	}

	var envelope outbox.PayloadEnvelope
	if err := json.Unmarshal(msg.Data, &envelope); err != nil {
		s.logg.Error(logCtx, "failed to decode envelope", err)
		return true
	}

	processCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := s.processor.Process(processCtx, eventType, envelope); err != nil {
		s.logg.Error(logCtx, "feed processing failed", err)
		return false
	}
	return true
}
