package worker

import (
	"context"
	"sync"
	"time"

	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/otel"
	auditService "hotel/internal/domains/audit/service"
	roomService "hotel/internal/domains/room/service"

	"github.com/rs/zerolog/log"
)

const traceFlushTimeout = 5 * time.Second

// Worker runs the background jobs of the hotel: the audit consumers and the
// room status reconcile scheduler.
type Worker struct {
	cfg   *config.Config
	kafka kafka.Client
	audit auditService.Audit
	room  roomService.Room
	otel  otel.Otel
}

func New(cfg *config.Config, kafka kafka.Client, audit auditService.Audit, room roomService.Room, otel otel.Otel) *Worker {
	return &Worker{
		cfg:   cfg,
		kafka: kafka,
		audit: audit,
		room:  room,
		otel:  otel,
	}
}

// Run blocks until ctx is cancelled and every job has stopped.
func (w *Worker) Run(ctx context.Context) {
	topics := []string{w.cfg.Kafka.Topics.BookingEvents, w.cfg.Kafka.Topics.RoomEvents}

	var wg sync.WaitGroup

	for _, topic := range topics {
		wg.Add(1)

		go func() {
			defer wg.Done()

			log.Info().Str("topic", topic).Msg("Starting audit consumer.")

			w.kafka.Consume(ctx, w.cfg.Kafka.ConsumerGroup, topic, w.HandleAudit(topic))
		}()
	}

	wg.Add(1)

	go func() {
		defer wg.Done()

		w.schedule(ctx)
	}()

	wg.Wait()

	flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), traceFlushTimeout)
	defer cancel()

	if err := w.otel.Shutdown(flushCtx); err != nil {
		log.Error().Err(err).Msg("Failed to flush traces")
	}

	log.Info().Msg("Worker stopped.")
}
