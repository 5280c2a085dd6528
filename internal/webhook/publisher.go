package webhook

import (
	"context"

	"github.com/DarshanCode2005/gitmesh/internal/model"
	"github.com/DarshanCode2005/gitmesh/pkg/broker"
)

type brokerPublisher struct {
	b broker.Publisher
}

// NewBrokerPublisher routes worker messages to the broker subject of their service.
func NewBrokerPublisher(b broker.Publisher) Publisher {
	return brokerPublisher{b: b}
}

func (p brokerPublisher) Publish(ctx context.Context, msg model.WorkerMessage) {
	p.b.Publish(ctx, msg.ServiceName(), msg)
}
