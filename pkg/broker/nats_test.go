package broker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...any)                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Panic(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...any)  {}

type published struct {
	subject string
	data    []byte
	opts    int
}

type mockJetStream struct {
	mu       sync.Mutex
	failures int
	calls    int
	msgs     []published
}

func (m *mockJetStream) Publish(ctx context.Context, subject string, data []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.failures > 0 {
		m.failures--
		return nil, errors.New("nats: timeout")
	}
	m.msgs = append(m.msgs, published{subject: subject, data: data, opts: len(opts)})
	return &jetstream.PubAck{Stream: "DEVTEL"}, nil
}

func (m *mockJetStream) snapshot() (int, []published) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls, append([]published(nil), m.msgs...)
}

type payload struct {
	Tenant string `json:"tenant"`
}

func TestPublish(t *testing.T) {
	js := &mockJetStream{}
	closed := false
	p := newPublisher(js, func() { closed = true }, Config{RetryInterval: time.Millisecond}, &mockLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	p.Publish(ctx, "devtel-index-opensearch", payload{Tenant: "t1"})
	p.Publish(ctx, "devtel-index-opensearch", payload{Tenant: "t2"})
	cancel()
	p.Close()

	assert.True(t, closed)
	_, msgs := js.snapshot()
	require.Len(t, msgs, 2)
	for _, m := range msgs {
		assert.Equal(t, "devtel.devtel-index-opensearch", m.subject)
		assert.Equal(t, 1, m.opts, "message id set")
		var got payload
		require.NoError(t, json.Unmarshal(m.data, &got))
	}
}

func TestPublishRetries(t *testing.T) {
	js := &mockJetStream{failures: 2}
	p := newPublisher(js, nil, Config{MaxRetries: 3, RetryInterval: time.Millisecond}, &mockLogger{})

	p.Publish(context.Background(), "devtel-calculate-metrics", payload{Tenant: "t1"})
	p.Close()

	calls, msgs := js.snapshot()
	assert.Equal(t, 3, calls)
	assert.Len(t, msgs, 1)
}

func TestPublishGivesUp(t *testing.T) {
	js := &mockJetStream{failures: 100}
	p := newPublisher(js, nil, Config{MaxRetries: 2, RetryInterval: time.Millisecond}, &mockLogger{})

	p.Publish(context.Background(), "devtel-calculate-metrics", payload{})
	p.Close()

	calls, msgs := js.snapshot()
	assert.Equal(t, 3, calls, "one attempt plus two retries")
	assert.Empty(t, msgs)
}

func TestPublishUnmarshalable(t *testing.T) {
	js := &mockJetStream{}
	p := newPublisher(js, nil, Config{}, &mockLogger{})

	p.Publish(context.Background(), "svc", map[string]any{"bad": make(chan int)})
	p.Close()

	calls, _ := js.snapshot()
	assert.Zero(t, calls)
}

func TestNewWithoutURLIsNop(t *testing.T) {
	p, err := New(context.Background(), Config{}, &mockLogger{})
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		p.Publish(context.Background(), "svc", payload{})
		p.Close()
	})
}

func TestNewUnreachable(t *testing.T) {
	_, err := New(context.Background(), Config{URL: "nats://127.0.0.1:1"}, &mockLogger{})
	assert.ErrorIs(t, err, nats.ErrNoServers)
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "devtel.devtel-index-opensearch", Subject("devtel-index-opensearch"))
}
