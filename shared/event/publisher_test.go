package event_test

import (
	"context"
	"errors"
	"testing"

	"hotel/infras/kafka"
	kafkaMocks "hotel/infras/kafka/mocks"
	"hotel/infras/otel/mocks"
	"hotel/shared/event"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestPublisher_Publish(t *testing.T) {
	booking := event.New("booking.confirmed", "booking", "b-1", "guest", map[string]any{"nights": 2})
	room := event.New("room.status_changed", "room", "r-1", "system", nil)

	tests := []struct {
		name      string
		events    []event.Event
		setupMock func(client *kafkaMocks.MockClient)
		wantErr   bool
	}{
		{
			name:      "no events",
			setupMock: func(_ *kafkaMocks.MockClient) {},
		},
		{
			name:   "keyed by entity",
			events: []event.Event{booking, room},
			setupMock: func(client *kafkaMocks.MockClient) {
				client.EXPECT().
					SendMessages(gomock.Any(), "hotel.events", gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
						assert.Equal(t, "b-1", messages[0].Key)
						assert.Equal(t, "r-1", messages[1].Key)
						assert.Equal(t, booking, messages[0].Value)

						return nil
					})
			},
		},
		{
			name:   "disabled client",
			events: []event.Event{booking},
			setupMock: func(client *kafkaMocks.MockClient) {
				client.EXPECT().SendMessages(gomock.Any(), "hotel.events", gomock.Any()).Return(kafka.ErrDisabled)
			},
		},
		{
			name:   "broker failure",
			events: []event.Event{booking},
			setupMock: func(client *kafkaMocks.MockClient) {
				client.EXPECT().SendMessages(gomock.Any(), "hotel.events", gomock.Any()).Return(errors.New("broker down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := kafkaMocks.NewMockClient(ctrl)
			tt.setupMock(client)

			err := event.NewPublisher(client, mocks.NewOtel()).Publish(context.Background(), "hotel.events", tt.events...)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestNew(t *testing.T) {
	evt := event.New("booking.created", "booking", "b-9", "user-1", nil)

	assert.NotEmpty(t, evt.ID)
	assert.Equal(t, "booking.created", evt.Type)
	assert.Equal(t, "b-9", evt.EntityID)
	assert.False(t, evt.OccurredAt.IsZero())
}
