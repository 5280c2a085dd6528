package broker

import (
	"context"

	"github.com/DarshanCode2005/gitmesh/pkg/log"
)

type nopPublisher struct {
	l log.Logger
}

// NewNop returns a Publisher that only logs.
func NewNop(l log.Logger) Publisher {
	return nopPublisher{l: l}
}

func (p nopPublisher) Publish(ctx context.Context, service string, v any) {
	p.l.Debugf(ctx, "broker disabled, dropping message for %s", Subject(service))
}

func (p nopPublisher) Close() {}
