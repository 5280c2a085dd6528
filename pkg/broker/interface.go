package broker

import (
	"context"
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

// SubjectPrefix prefixes every worker subject: devtel.<service>.
const SubjectPrefix = "devtel"

// Publisher sends JSON messages addressed to worker services.
// Publish is fire-and-forget: it returns immediately and failures are only logged.
type Publisher interface {
	Publish(ctx context.Context, service string, v any)
	Close()
}

// JetStream is the subset of jetstream.JetStream the publisher needs.
type JetStream interface {
	Publish(ctx context.Context, subject string, data []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error)
}

type Config struct {
	URL            string
	Stream         string
	ConnectionName string
	PoolSize       int
	MaxRetries     int
	PublishTimeout time.Duration
	RetryInterval  time.Duration
}

// Subject returns the subject for a worker service.
func Subject(service string) string {
	return SubjectPrefix + "." + service
}
