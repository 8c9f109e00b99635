// Package event publishes booking lifecycle events. Without a Kafka client the events
// are only logged.
package event

import (
	"context"
	"fmt"
	"time"

	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/otel"
	"hotel/internal/domains/booking/model"
	"hotel/shared/constant"
	"hotel/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	TypeCreated       = "booking.created"
	TypeStatusChanged = "booking.status_changed"
	TypeDeleted       = "booking.deleted"
)

type Event struct {
	Type           string    `json:"type"`
	BookingID      string    `json:"booking_id"`
	RoomID         string    `json:"room_id"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	TotalPrice     float64   `json:"total_price"`
	CheckInDate    string    `json:"check_in_date"`
	CheckOutDate   string    `json:"check_out_date"`
	OccurredAt     time.Time `json:"occurred_at"`
}

func New(eventType string, booking model.Booking, previousStatus string) Event {
	return Event{
		Type:           eventType,
		BookingID:      booking.ID,
		RoomID:         booking.RoomID,
		Status:         booking.Status,
		PreviousStatus: previousStatus,
		TotalPrice:     booking.TotalPrice,
		CheckInDate:    booking.CheckInDate.Format(constant.DateOnlyFormat),
		CheckOutDate:   booking.CheckOutDate.Format(constant.DateOnlyFormat),
		OccurredAt:     timezone.Now(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, events ...Event) error
}

// NewPublisher returns a Kafka publisher, or a logging one when client is nil.
func NewPublisher(client kafka.Client, cfg *config.Config, otl otel.Otel) Publisher {
	if client == nil {
		return &logPublisher{}
	}

	return &kafkaPublisher{client: client, topic: cfg.External.Kafka.Topic, otel: otl}
}

type kafkaPublisher struct {
	client kafka.Client
	topic  string
	otel   otel.Otel
}

func (p *kafkaPublisher) Publish(ctx context.Context, events ...Event) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Publish")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	messages := make([]kafka.Message, len(events))
	for i, evt := range events {
		messages[i] = kafka.Message{Key: evt.RoomID, Value: evt}
	}

	if err = p.client.SendMessages(ctx, p.topic, messages...); err != nil {
		return fmt.Errorf("failed to publish booking events: %w", err)
	}

	return nil
}

type logPublisher struct{}

func (p *logPublisher) Publish(_ context.Context, events ...Event) error {
	for _, evt := range events {
		log.Info().
			Str("type", evt.Type).
			Str("booking_id", evt.BookingID).
			Str("room_id", evt.RoomID).
			Str("status", evt.Status).
			Msg("booking event")
	}

	return nil
}
