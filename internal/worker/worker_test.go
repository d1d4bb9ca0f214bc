package worker_test

import (
	"context"
	"errors"
	"testing"

	"hotel/config"
	kafkaMocks "hotel/infras/kafka/mocks"
	"hotel/infras/otel/mocks"
	auditMocks "hotel/internal/domains/audit/service/mocks"
	"hotel/internal/domains/room/model/dto"
	roomMocks "hotel/internal/domains/room/service/mocks"
	"hotel/internal/worker"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/identity"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	kafka *kafkaMocks.MockClient
	audit *auditMocks.MockAudit
	room  *roomMocks.MockRoom
	cfg   *config.Config
}

func newWorker(t *testing.T) (*fixture, *worker.Worker) {
	ctrl := gomock.NewController(t)

	f := &fixture{
		kafka: kafkaMocks.NewMockClient(ctrl),
		audit: auditMocks.NewMockAudit(ctrl),
		room:  roomMocks.NewMockRoom(ctrl),
		cfg:   &config.Config{},
	}

	f.cfg.Kafka.ConsumerGroup = "hotel-audit"
	f.cfg.Kafka.Topics.BookingEvents = "hotel.booking.events"
	f.cfg.Kafka.Topics.RoomEvents = "hotel.room.events"
	f.cfg.Booking.ReconcileIntervalMinutes = 60

	return f, worker.New(f.cfg, f.kafka, f.audit, f.room, mocks.NewOtel())
}

func TestWorker_HandleAudit(t *testing.T) {
	tests := []struct {
		name      string
		recordErr error
		wantErr   bool
	}{
		{name: "recorded"},
		{name: "malformed event is skipped", recordErr: failure.BadRequestFromString("malformed event")},
		{name: "database failure is retried", recordErr: errors.New("db error"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, w := newWorker(t)

			payload := []byte(`{"id":"e-1","type":"booking.created"}`)
			f.audit.EXPECT().Record(gomock.Any(), "hotel.booking.events", payload).Return(tt.recordErr)

			err := w.HandleAudit("hotel.booking.events")(context.Background(), kafkaGo.Message{Value: payload})

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestWorker_Reconcile(t *testing.T) {
	f, w := newWorker(t)

	f.room.EXPECT().
		ReconcileAll(gomock.Any()).
		DoAndReturn(func(ctx context.Context) (dto.ReconcileSummary, error) {
			assert.Equal(t, constant.ContextSystem, identity.FromContext(ctx).Actor())

			return dto.ReconcileSummary{Checked: 3}, nil
		})

	w.Reconcile(context.Background())
}

func TestWorker_Run(t *testing.T) {
	f, w := newWorker(t)

	ctx, cancel := context.WithCancel(context.Background())

	f.kafka.EXPECT().Consume(gomock.Any(), "hotel-audit", "hotel.booking.events", gomock.Any())
	f.kafka.EXPECT().Consume(gomock.Any(), "hotel-audit", "hotel.room.events", gomock.Any())
	f.room.EXPECT().
		ReconcileAll(gomock.Any()).
		DoAndReturn(func(_ context.Context) (dto.ReconcileSummary, error) {
			cancel()

			return dto.ReconcileSummary{}, errors.New("db error")
		})

	w.Run(ctx)

	assert.Error(t, ctx.Err())
}
