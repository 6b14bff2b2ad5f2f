package queue

import (
    "context"
    "encoding/json"
    "log"
    "time"

    "github.com/google/uuid"
    amqp "github.com/rabbitmq/amqp091-go"
)

// BookingQueue is the durable queue carrying BookingConfirmedEvent payloads.
const BookingQueue = "booking.confirmed"

// Publisher sends booking events to RabbitMQ. Each call dials its own
// connection so a broker outage never leaves a broken channel behind.
type Publisher struct {
    URL string
}

func NewPublisher(url string) *Publisher { return &Publisher{URL: url} }

// PublishBookingConfirmed publishes ev to the booking.confirmed queue as a
// persistent JSON message. Errors are logged and returned so the caller can
// choose to ignore them.
func (p *Publisher) PublishBookingConfirmed(ctx context.Context, ev BookingConfirmedEvent) error {
    conn, err := amqp.Dial(p.URL)
    if err != nil {
        log.Printf("rabbitmq: dial failed: %v", err)
        return err
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        log.Printf("rabbitmq: channel open failed: %v", err)
        return err
    }
    defer func() { _ = ch.Close() }()

    // Idempotent; durable so messages survive broker restarts.
    if _, err := ch.QueueDeclare(BookingQueue, true, false, false, false, nil); err != nil {
        log.Printf("rabbitmq: queue declare failed: %v", err)
        return err
    }

    pub, err := newPublishing(ev, time.Now().UTC())
    if err != nil {
        log.Printf("rabbitmq: marshal event failed: %v", err)
        return err
    }
    if err := ch.PublishWithContext(ctx, "", BookingQueue, false, false, pub); err != nil {
        log.Printf("rabbitmq: publish failed: %v", err)
        return err
    }
    return nil
}

func newPublishing(ev BookingConfirmedEvent, now time.Time) (amqp.Publishing, error) {
    body, err := json.Marshal(ev)
    if err != nil {
        return amqp.Publishing{}, err
    }
    return amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        MessageId:    uuid.NewString(),
        Type:         BookingQueue,
        Timestamp:    now,
        Body:         body,
    }, nil
}
