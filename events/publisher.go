package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Event types published to the reservation queue.
const (
	EventReservationCreated   = "ReservationCreated"
	EventReservationCancelled = "ReservationCancelled"
	EventReservationCheckedIn = "ReservationCheckedIn"
)

// ReservationEvent is the envelope pushed for every reservation mutation,
// so external consumers (housekeeping boards, notifications) can react
// without polling the API.
type ReservationEvent struct {
	Type          string    `json:"type"`
	ReservationID string    `json:"reservation_id"`
	RoomID        string    `json:"room_id,omitempty"`
	GuestName     string    `json:"guest_name,omitempty"`
	CheckInDate   string    `json:"check_in_date,omitempty"`
	StayDays      int       `json:"stay_days,omitempty"`
	Actor         string    `json:"actor,omitempty"`
	EmittedAt     time.Time `json:"emitted_at"`
}

// Publisher pushes reservation events to a durable RabbitMQ queue.
// A nil *Publisher is valid and drops every event, so callers never need to
// check whether messaging is configured.
type Publisher struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

func NewPublisher(amqpURL, queueName string) (*Publisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if _, err := ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue %s: %w", queueName, err)
	}

	return &Publisher{conn: conn, ch: ch, queue: queueName}, nil
}

// Publish sends the event best-effort: a broker hiccup must never fail the
// booking that triggered it, so failures are only logged.
func (p *Publisher) Publish(evt ReservationEvent) {
	if p == nil {
		return
	}
	if evt.EmittedAt.IsZero() {
		evt.EmittedAt = time.Now().UTC()
	}

	body, err := json.Marshal(evt)
	if err != nil {
		log.Printf("warning: failed to marshal %s event for %s: %v", evt.Type, evt.ReservationID, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := p.ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = queue
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	); err != nil {
		log.Printf("warning: failed to publish %s event for %s: %v", evt.Type, evt.ReservationID, err)
	}
}

func (p *Publisher) Close() {
	if p == nil {
		return
	}
	if p.ch != nil {
		p.ch.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}
