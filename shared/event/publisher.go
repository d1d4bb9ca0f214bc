package event

//go:generate go run go.uber.org/mock/mockgen -source=./publisher.go -destination=./mocks/publisher_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"hotel/infras/kafka"
	"hotel/infras/otel"
	"hotel/shared/constant"

	"github.com/rs/zerolog/log"
)

type Publisher interface {
	Publish(ctx context.Context, topic string, events ...Event) error
}

type kafkaPublisher struct {
	client kafka.Client
	otel   otel.Otel
}

func NewPublisher(client kafka.Client, otel otel.Otel) Publisher {
	return &kafkaPublisher{
		client: client,
		otel:   otel,
	}
}

func (p *kafkaPublisher) Publish(ctx context.Context, topic string, events ...Event) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Publish")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if len(events) == 0 {
		return nil
	}

	messages := make([]kafka.Message, len(events))
	for i, evt := range events {
		messages[i] = kafka.Message{Key: evt.EntityID, Value: evt}
	}

	scope.SetAttributes(map[string]any{
		"event.topic": topic,
		"event.type":  events[0].Type,
		"event.count": len(events),
	})

	err = p.client.SendMessages(ctx, topic, messages...)
	if errors.Is(err, kafka.ErrDisabled) {
		log.Debug().Str("topic", topic).Int("count", len(events)).Msg("event publishing is disabled, events dropped")

		return nil
	}

	if err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("failed to publish events")

		return fmt.Errorf("failed to publish events: %w", err)
	}

	return nil
}
