package kafka

import (
	"context"
	"testing"
	"time"

	"hotel/config"

	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/stretchr/testify/assert"
)

func TestMessage_Encode(t *testing.T) {
	msg := Message{Key: "booking-1", Value: map[string]any{"type": "booking.created", "nights": 2}}

	encoded, err := msg.encode("hotel.booking.events")

	assert.NoError(t, err)
	assert.Equal(t, "hotel.booking.events", encoded.Topic)
	assert.Equal(t, []byte("booking-1"), encoded.Key)
	assert.JSONEq(t, `{"type":"booking.created","nights":2}`, string(encoded.Value))
}

func TestMessage_EncodeUnsupported(t *testing.T) {
	_, err := Message{Key: "k", Value: func() {}}.encode("topic")

	assert.Error(t, err)
}

func TestNew_WithoutBrokers(t *testing.T) {
	client := New(&config.Config{})

	err := client.SendMessages(context.Background(), "hotel.room.events", Message{Key: "room-1", Value: "x"})
	assert.ErrorIs(t, err, ErrDisabled)

	done := make(chan struct{})

	go func() {
		client.Consume(context.Background(), "", "hotel.room.events", nil)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Consume should return at once without brokers")
	}
}

func TestSaslMechanism(t *testing.T) {
	cfg := &config.Config{}
	assert.Nil(t, saslMechanism(cfg))

	cfg.Kafka.SASL.Username = "hotel"
	cfg.Kafka.SASL.Password = "secret"
	assert.Equal(t, plain.Mechanism{Username: "hotel", Password: "secret"}, saslMechanism(cfg))
}

func TestSleep(t *testing.T) {
	assert.True(t, sleep(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.False(t, sleep(ctx, time.Hour))
}
