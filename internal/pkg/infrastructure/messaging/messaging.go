package messaging

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/diwise/home-activity-sync/internal/pkg/infrastructure/logging"
	amqp "github.com/rabbitmq/amqp091-go"
)

const DefaultExchange = "home-activity"

type TopicMessage interface {
	ContentType() string
	TopicName() string
	Body() []byte
}

//go:generate moq -rm -out publisher_mock.go . Publisher
type Publisher interface {
	PublishOnTopic(ctx context.Context, message TopicMessage) error
	Close()
}

type Config struct {
	URL      string
	Exchange string
}

var ErrNotConnected = errors.New("not connected to message broker")

type connection interface {
	Channel() (channel, error)
	IsClosed() bool
	Close() error
}

type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	NotifyClose(c chan *amqp.Error) chan *amqp.Error
}

type amqpConnection struct {
	*amqp.Connection
}

func (c amqpConnection) Channel() (channel, error) {
	ch, err := c.Connection.Channel()
	if err != nil {
		return nil, err
	}
	return ch, nil
}

func dialAMQP(url string) (connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	return amqpConnection{conn}, nil
}

type amqpPublisher struct {
	cfg  Config
	dial func(url string) (connection, error)

	mu      sync.Mutex
	conn    connection
	channel channel
	closed  chan *amqp.Error
}

// New connects to the broker and declares the topic exchange messages are published on.
func New(ctx context.Context, cfg Config) (Publisher, error) {
	p := newPublisher(cfg, dialAMQP)
	if err := p.connect(); err != nil {
		return nil, err
	}

	log := logging.GetFromContext(ctx)
	log.Info().Str("exchange", p.cfg.Exchange).Msg("connected to message broker")

	return p, nil
}

func newPublisher(cfg Config, dial func(url string) (connection, error)) *amqpPublisher {
	if cfg.Exchange == "" {
		cfg.Exchange = DefaultExchange
	}
	return &amqpPublisher{cfg: cfg, dial: dial}
}

func (p *amqpPublisher) connect() error {
	conn, err := p.dial(p.cfg.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to message broker: %w", err)
	}

	p.conn = conn

	if err := p.openChannel(); err != nil {
		conn.Close()
		p.conn = nil
		return err
	}

	return nil
}

// openChannel opens a channel on the current connection and declares the exchange.
func (p *amqpPublisher) openChannel() error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}

	err = ch.ExchangeDeclare(p.cfg.Exchange, amqp.ExchangeTopic, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", p.cfg.Exchange, err)
	}

	p.channel = ch
	p.closed = ch.NotifyClose(make(chan *amqp.Error, 1))

	return nil
}

func (p *amqpPublisher) channelClosed() bool {
	if p.channel == nil {
		return true
	}

	select {
	case <-p.closed:
		return true
	default:
		return false
	}
}

// ensureChannel redials a closed connection and reopens a channel closed by the
// broker while the connection stayed up.
func (p *amqpPublisher) ensureChannel() error {
	if p.conn == nil || p.conn.IsClosed() {
		p.channel = nil
		return p.connect()
	}

	if p.channelClosed() {
		p.channel = nil
		return p.openChannel()
	}

	return nil
}

func (p *amqpPublisher) PublishOnTopic(ctx context.Context, message TopicMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ensureChannel(); err != nil {
		return errors.Join(ErrNotConnected, err)
	}

	return p.channel.PublishWithContext(ctx, p.cfg.Exchange, message.TopicName(), false, false, amqp.Publishing{
		ContentType:  message.ContentType(),
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         message.Body(),
	})
}

func (p *amqpPublisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn != nil {
		p.conn.Close()
		p.conn = nil
		p.channel = nil
	}
}

type noopPublisher struct{}

// NewNoopPublisher returns a publisher that drops every message, used when no
// broker is configured.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) PublishOnTopic(ctx context.Context, message TopicMessage) error {
	return nil
}

func (noopPublisher) Close() {}
