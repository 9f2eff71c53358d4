// Package publisher forwards committed swap events to redis pub/sub.
package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/nftrade/weave/app"
	"github.com/nftrade/weave/cmd/nftraded/metrics"
	"github.com/nftrade/weave/errors"
	"github.com/nftrade/weave/x/swap"
)

const (
	// ChannelAll receives every swap event.
	ChannelAll = "nftrade:events"
	// ChannelPrefix followed by the event kind receives events of that
	// kind only, for example "nftrade:swap:executed".
	ChannelPrefix = "nftrade:swap:"
)

// Message is the JSON payload published for every event.
type Message struct {
	swap.Event
	Height int64 `json:"height"`
}

// Channels returns all channels a message of given kind is published to.
func Channels(kind swap.EventKind) []string {
	return []string{ChannelAll, ChannelPrefix + string(kind)}
}

// Connect opens a client for given redis URL and waits until the server
// answers, retrying with an exponential backoff until ctx is done or
// maxWait elapses.
func Connect(ctx context.Context, url string, maxWait time.Duration, logger logrus.FieldLogger) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	client := redis.NewClient(opts)

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = maxWait
	err = backoff.RetryNotify(func() error {
		return client.Ping(ctx).Err()
	}, backoff.WithContext(b, ctx), func(err error, d time.Duration) {
		logger.WithError(err).Warnf("redis not ready, retrying in %s", d)
	})
	if err != nil {
		_ = client.Close()
		return nil, errors.Wrapf(errors.ErrHuman, "cannot connect to redis: %s", err)
	}
	return client, nil
}

// Publisher queues events received from the ledger and publishes them from
// a single goroutine, so that a slow redis never blocks a delivery.
type Publisher struct {
	client  *redis.Client
	logger  logrus.FieldLogger
	metrics *metrics.Metrics
	queue   chan Message

	// MaxRetry bounds the time spent retrying a single message.
	MaxRetry time.Duration
}

// New returns a publisher buffering up to queueSize events.
func New(client *redis.Client, logger logrus.FieldLogger, m *metrics.Metrics, queueSize int) *Publisher {
	return &Publisher{
		client:   client,
		logger:   logger,
		metrics:  m,
		queue:    make(chan Message, queueSize),
		MaxRetry: 10 * time.Second,
	}
}

// HandleEvent is meant to be subscribed to the ledger. Events without swap
// tags are ignored. It never blocks: when the queue is full the event is
// dropped.
func (p *Publisher) HandleEvent(ev app.Event) {
	e, ok, err := swap.EventFromTags(ev.Tags)
	if err != nil {
		p.logger.WithError(err).WithField("height", ev.Height).Error("malformed swap tags")
		return
	}
	if !ok {
		return
	}
	p.metrics.SwapEvents.WithLabelValues(string(e.Kind)).Inc()

	select {
	case p.queue <- Message{Event: e, Height: ev.Height}:
	default:
		p.metrics.Dropped.Inc()
		p.logger.WithField("swap", e.ID).Warn("publisher queue full, event dropped")
	}
}

// Run publishes queued messages until ctx is cancelled.
func (p *Publisher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg := <-p.queue:
			p.publishWithRetry(ctx, msg)
		}
	}
}

func (p *Publisher) publishWithRetry(ctx context.Context, msg Message) {
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = p.MaxRetry
	err := backoff.RetryNotify(func() error {
		return p.Publish(ctx, msg)
	}, backoff.WithContext(b, ctx), func(err error, d time.Duration) {
		p.metrics.PublishErrors.Inc()
		p.logger.WithError(err).Warnf("publish failed, retrying in %s", d)
	})
	if err != nil {
		p.logger.WithError(err).WithField("swap", msg.ID).Error("event not published")
		return
	}
	p.metrics.Published.Inc()
}

// Publish sends the message to all channels of its kind.
func (p *Publisher) Publish(ctx context.Context, msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return backoff.Permanent(errors.Wrap(err, "encode"))
	}
	pipe := p.client.Pipeline()
	for _, channel := range Channels(msg.Kind) {
		pipe.Publish(ctx, channel, data)
	}
	_, err = pipe.Exec(ctx)
	return err
}
