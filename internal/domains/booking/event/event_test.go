package event_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotel/config"
	"hotel/infras/kafka"
	kafkaMocks "hotel/infras/kafka/mocks"
	"hotel/infras/otel/mocks"
	"hotel/internal/domains/booking/event"
	"hotel/internal/domains/booking/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func booking() model.Booking {
	return model.Booking{
		ID:           "b1",
		RoomID:       "r1",
		Status:       model.StatusCancelled,
		TotalPrice:   298,
		CheckInDate:  time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC),
		CheckOutDate: time.Date(2026, time.May, 3, 0, 0, 0, 0, time.UTC),
	}
}

func TestNew(t *testing.T) {
	evt := event.New(event.TypeStatusChanged, booking(), model.StatusPending)

	assert.Equal(t, event.TypeStatusChanged, evt.Type)
	assert.Equal(t, "b1", evt.BookingID)
	assert.Equal(t, model.StatusPending, evt.PreviousStatus)
	assert.Equal(t, "2026-05-01", evt.CheckInDate)
	assert.Equal(t, "2026-05-03", evt.CheckOutDate)
}

func TestKafkaPublisher(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.External.Kafka.Topic = "hotel.bookings"

	publisher := event.NewPublisher(client, cfg, mocks.NewOtel())
	evt := event.New(event.TypeCreated, booking(), "")

	t.Run("keys messages by room", func(t *testing.T) {
		client.EXPECT().
			SendMessages(gomock.Any(), "hotel.bookings", kafka.Message{Key: "r1", Value: evt}).
			Return(nil)

		require.NoError(t, publisher.Publish(context.Background(), evt))
	})

	t.Run("wraps client errors", func(t *testing.T) {
		client.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

		err := publisher.Publish(context.Background(), evt)
		assert.ErrorContains(t, err, "broker down")
	})
}

func TestLogPublisher(t *testing.T) {
	publisher := event.NewPublisher(nil, &config.Config{}, mocks.NewOtel())

	assert.NoError(t, publisher.Publish(context.Background(), event.New(event.TypeDeleted, booking(), "")))
}
