package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// StartAuditConsumer connects to RabbitMQ, declares both reservation
// queues (durable) and appends each event as one line to
// logs/reservations.log. It runs a reconnect loop with backoff and
// never returns under normal operation; broken messages are rejected
// without requeue so a poison message cannot wedge the consumer.
func StartAuditConsumer(url string) error {
	if url == "" {
		return errors.New("audit consumer: no broker url configured")
	}

	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Printf("audit-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		if err := consumeLoop(conn); err != nil {
			log.Printf("audit-consumer: consume loop ended: %v; reconnecting", err)
			time.Sleep(2 * time.Second)
		}
	}
}

func consumeLoop(conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("audit-consumer: set QoS failed: %v", err)
	}

	for _, name := range []string{confirmedQueueName, cancelledQueueName} {
		if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
			return fmt.Errorf("queue declare %s: %w", name, err)
		}
	}

	confirmed, err := ch.Consume(confirmedQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", confirmedQueueName, err)
	}
	cancelled, err := ch.Consume(cancelledQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", cancelledQueueName, err)
	}

	for {
		var d amqp.Delivery
		var kind string
		var open bool
		select {
		case d, open = <-confirmed:
			kind = "confirmed"
		case d, open = <-cancelled:
			kind = "cancelled"
		}
		if !open {
			return errors.New("deliveries channel closed")
		}
		if err := handleMessage(kind, d.Body); err != nil {
			log.Printf("audit-consumer: handle message failed: %v", err)
			_ = d.Nack(false, false)
			continue
		}
		_ = d.Ack(false)
	}
}

func handleMessage(kind string, body []byte) error {
	var line string
	switch kind {
	case "confirmed":
		var ev ReservationConfirmedEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return fmt.Errorf("unmarshal: %w", err)
		}
		seats := make([]string, len(ev.SeatNumbers))
		for i, n := range ev.SeatNumbers {
			seats[i] = strconv.Itoa(n)
		}
		line = fmt.Sprintf("[%s] Reservation confirmed | reservation_id=%d | user_id=%d | showtime_id=%d | seats=[%s]\n",
			ev.OccurredAt, ev.ReservationID, ev.UserID, ev.ShowTimeID, strings.Join(seats, ","))
	case "cancelled":
		var ev ReservationCancelledEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return fmt.Errorf("unmarshal: %w", err)
		}
		line = fmt.Sprintf("[%s] Reservation cancelled | reservation_id=%d | user_id=%d | showtime_id=%d\n",
			ev.OccurredAt, ev.ReservationID, ev.UserID, ev.ShowTimeID)
	default:
		return fmt.Errorf("unknown event kind %q", kind)
	}

	if err := os.MkdirAll("logs", 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(filepath.Join("logs", "reservations.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}
