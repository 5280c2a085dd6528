package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/oklog/ulid/v2"

	"github.com/DarshanCode2005/gitmesh/pkg/log"
)

const (
	defaultPoolSize       = 4
	defaultMaxRetries     = 3
	defaultPublishTimeout = 5 * time.Second
	defaultRetryInterval  = 200 * time.Millisecond
	defaultConnectionName = "devtel-webhooks"
)

type natsPublisher struct {
	l      log.Logger
	js     JetStream
	pool   pond.Pool
	closer func()
	cfg    Config
}

// New connects to NATS, ensures the stream exists and returns a JetStream publisher.
// An empty URL yields a publisher that discards messages.
func New(ctx context.Context, cfg Config, l log.Logger) (Publisher, error) {
	if cfg.URL == "" {
		l.Infof(ctx, "broker.url not set, worker messages will be discarded")
		return NewNop(l), nil
	}
	cfg = withDefaults(cfg)

	nc, err := nats.Connect(cfg.URL,
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				l.Warnf(context.Background(), "disconnected from NATS: %v", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			l.Infof(context.Background(), "reconnected to NATS: %s", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("create JetStream context: %w", err)
	}

	if cfg.Stream != "" {
		_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
			Name:     cfg.Stream,
			Subjects: []string{SubjectPrefix + ".>"},
		})
		if err != nil {
			nc.Close()
			return nil, fmt.Errorf("ensure stream %s: %w", cfg.Stream, err)
		}
	}

	l.Infof(ctx, "broker connected: url=%s stream=%s", nc.ConnectedUrl(), cfg.Stream)
	return newPublisher(js, nc.Close, cfg, l), nil
}

func newPublisher(js JetStream, closer func(), cfg Config, l log.Logger) *natsPublisher {
	cfg = withDefaults(cfg)
	return &natsPublisher{
		l:      l,
		js:     js,
		pool:   pond.NewPool(cfg.PoolSize),
		closer: closer,
		cfg:    cfg,
	}
}

func withDefaults(cfg Config) Config {
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = defaultPoolSize
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.PublishTimeout <= 0 {
		cfg.PublishTimeout = defaultPublishTimeout
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = defaultRetryInterval
	}
	if cfg.ConnectionName == "" {
		cfg.ConnectionName = defaultConnectionName
	}
	return cfg
}

// Publish marshals v and hands it to the pool. The message outlives the
// caller's context; only its values are kept.
func (p *natsPublisher) Publish(ctx context.Context, service string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		p.l.Errorf(ctx, "broker.Publish marshal %s: %v", service, err)
		return
	}

	subject := Subject(service)
	msgID := ulid.MustNewDefault(time.Now()).String()
	pctx := context.WithoutCancel(ctx)

	p.pool.SubmitErr(func() error {
		return p.publish(pctx, subject, msgID, data)
	})
}

func (p *natsPublisher) publish(ctx context.Context, subject, msgID string, data []byte) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.cfg.RetryInterval
	b.MaxElapsedTime = 0

	attempts := 0
	operation := func() error {
		attempts++
		actx, cancel := context.WithTimeout(ctx, p.cfg.PublishTimeout)
		defer cancel()
		_, err := p.js.Publish(actx, subject, data, jetstream.WithMsgID(msgID))
		return err
	}
	notify := func(err error, next time.Duration) {
		p.l.Warnf(ctx, "publish %s failed (attempt %d), retrying in %s: %v", subject, attempts, next, err)
	}

	err := backoff.RetryNotify(operation, backoff.WithMaxRetries(b, uint64(p.cfg.MaxRetries)), notify)
	if err != nil {
		p.l.Errorf(ctx, "publish %s msg_id=%s gave up after %d attempts: %v", subject, msgID, attempts, err)
		return err
	}
	p.l.Debugf(ctx, "published %s msg_id=%s", subject, msgID)
	return nil
}

// Close waits for queued publishes and then closes the connection.
func (p *natsPublisher) Close() {
	p.pool.StopAndWait()
	if p.closer != nil {
		p.closer()
	}
}
