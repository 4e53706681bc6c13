package queue

import (
    "context"
    "encoding/json"
    "log"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
)

const authQueueName = "auth.events"

// Publisher delivers auth events to RabbitMQ. Publishing is best-effort
// and fully decoupled from the request flow: events are sent from their
// own goroutine, errors are logged and never surface to the caller, and a
// Publisher constructed without a broker URL silently drops everything.
type Publisher struct {
    url string
}

// NewPublisher returns a publisher for the given broker URL. An empty URL
// disables publishing.
func NewPublisher(url string) *Publisher {
    return &Publisher{url: url}
}

// Publish sends the event asynchronously. Safe on a nil or disabled
// publisher.
func (p *Publisher) Publish(event AuthEvent) {
    if p == nil || p.url == "" {
        return
    }
    go func() {
        ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
        defer cancel()
        if err := p.publish(ctx, event); err != nil {
            log.Printf("auth-events: publish %s failed: %v", event.Type, err)
        }
    }()
}

// publish dials the broker, declares the durable auth.events queue
// (idempotent) and delivers one persistent JSON message. A connection per
// message keeps the publisher robust against broker restarts at the cost
// of throughput, which is negligible at auth-event volume.
func (p *Publisher) publish(ctx context.Context, event AuthEvent) error {
    conn, err := amqp.Dial(p.url)
    if err != nil {
        return err
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        return err
    }
    defer func() { _ = ch.Close() }()

    if _, err := ch.QueueDeclare(
        authQueueName, // name
        true,          // durable
        false,         // autoDelete
        false,         // exclusive
        false,         // noWait
        nil,           // args
    ); err != nil {
        return err
    }

    body, err := json.Marshal(event)
    if err != nil {
        return err
    }

    return ch.PublishWithContext(ctx,
        "",            // default exchange
        authQueueName, // routing key = queue name
        false,         // mandatory
        false,         // immediate
        amqp.Publishing{
            ContentType:  "application/json",
            DeliveryMode: amqp.Persistent, // store on disk
            Timestamp:    time.Now().UTC(),
            Body:         body,
        })
}
