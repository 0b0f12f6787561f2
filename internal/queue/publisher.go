package queue

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	confirmedQueueName = "reservation.confirmed"
	cancelledQueueName = "reservation.cancelled"
)

// Publisher emits reservation events to RabbitMQ. Publishing is best
// effort: every failure is logged and swallowed so a broker outage
// never fails a booking.
type Publisher struct {
	url string
}

// NewPublisher builds a Publisher for the given AMQP URL. An empty URL
// yields a disabled publisher that drops events silently.
func NewPublisher(url string) *Publisher {
	return &Publisher{url: url}
}

// PublishReservationConfirmed emits a ReservationConfirmedEvent.
func (p *Publisher) PublishReservationConfirmed(ctx context.Context, reservationID, userID, showtimeID uint64, seatNumbers []int) {
	p.publish(ctx, confirmedQueueName, ReservationConfirmedEvent{
		ReservationID: reservationID,
		UserID:        userID,
		ShowTimeID:    showtimeID,
		SeatNumbers:   seatNumbers,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	})
}

// PublishReservationCancelled emits a ReservationCancelledEvent.
func (p *Publisher) PublishReservationCancelled(ctx context.Context, reservationID, userID, showtimeID uint64) {
	p.publish(ctx, cancelledQueueName, ReservationCancelledEvent{
		ReservationID: reservationID,
		UserID:        userID,
		ShowTimeID:    showtimeID,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	})
}

func (p *Publisher) publish(ctx context.Context, queueName string, event interface{}) {
	if p == nil || p.url == "" {
		return
	}
	conn, err := amqp.Dial(p.url)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return
	}
	defer func() { _ = ch.Close() }()

	// Declare is idempotent. Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queueName, false, false, pub); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
	}
}
