package kafka

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MP-oliveira/jurisacompanha-backend/internal/infrastructure/monitoring/logging"
)

type mockKafkaReader struct {
	fetchFunc  func(ctx context.Context) (kafka.Message, error)
	commitFunc func(ctx context.Context, msgs ...kafka.Message) error
	closeFunc  func() error
}

func (m *mockKafkaReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx)
	}
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (m *mockKafkaReader) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	if m.commitFunc != nil {
		return m.commitFunc(ctx, msgs...)
	}
	return nil
}

func (m *mockKafkaReader) Close() error {
	if m.closeFunc != nil {
		return m.closeFunc()
	}
	return nil
}

func (m *mockKafkaReader) Stats() kafka.ReaderStats {
	return kafka.ReaderStats{}
}

func newTestConsumerConfig() ConsumerConfig {
	return ConsumerConfig{
		Brokers: []string{"localhost:9092"},
		GroupID: "juris-workers",
		Topics:  []string{TopicEmailReceived},
	}
}

func newTestConsumer(reader ReaderInterface, cfg ConsumerConfig) *Consumer {
	return &Consumer{
		reader:   reader,
		config:   cfg,
		logger:   logging.NewNopLogger(),
		handlers: make(map[string]MessageHandler),
		metrics:  &ConsumerMetrics{},
	}
}

func TestValidateConsumerConfig(t *testing.T) {
	assert.NoError(t, ValidateConsumerConfig(newTestConsumerConfig()))

	cfg := newTestConsumerConfig()
	cfg.Brokers = nil
	assert.Error(t, ValidateConsumerConfig(cfg))

	cfg = newTestConsumerConfig()
	cfg.GroupID = ""
	assert.Error(t, ValidateConsumerConfig(cfg))

	cfg = newTestConsumerConfig()
	cfg.AutoOffsetReset = "newest"
	assert.Error(t, ValidateConsumerConfig(cfg))

	cfg = newTestConsumerConfig()
	cfg.SASLEnabled = true
	assert.Error(t, ValidateConsumerConfig(cfg))
}

func TestConsumerStartTwice(t *testing.T) {
	c := newTestConsumer(&mockKafkaReader{}, newTestConsumerConfig())
	require.NoError(t, c.Start(context.Background()))
	assert.Equal(t, ErrAlreadyRunning, c.Start(context.Background()))
	assert.NoError(t, c.Close())
}

func TestConsumerDispatchesAndCommits(t *testing.T) {
	delivered := kafka.Message{
		Topic:  TopicEmailReceived,
		Offset: 7,
		Key:    []byte("0001234"),
		Value:  []byte(`{"subject":"Movimentação processual"}`),
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(TopicEmailReceived)},
		},
	}

	var fetched atomic.Bool
	committed := make(chan kafka.Message, 1)
	reader := &mockKafkaReader{
		fetchFunc: func(ctx context.Context) (kafka.Message, error) {
			if fetched.Swap(true) {
				<-ctx.Done()
				return kafka.Message{}, ctx.Err()
			}
			return delivered, nil
		},
		commitFunc: func(ctx context.Context, msgs ...kafka.Message) error {
			committed <- msgs[0]
			return nil
		},
	}

	c := newTestConsumer(reader, newTestConsumerConfig())
	handled := make(chan *Message, 1)
	require.NoError(t, c.Subscribe(TopicEmailReceived, func(ctx context.Context, msg *Message) error {
		handled <- msg
		return nil
	}))
	require.NoError(t, c.Start(context.Background()))
	defer c.Close()

	select {
	case msg := <-handled:
		assert.Equal(t, TopicEmailReceived, msg.Topic)
		assert.Equal(t, "0001234", string(msg.Key))
		assert.Equal(t, TopicEmailReceived, msg.Headers["event_type"])
	case <-time.After(time.Second):
		t.Fatal("handler not invoked")
	}

	select {
	case m := <-committed:
		assert.Equal(t, int64(7), m.Offset)
	case <-time.After(time.Second):
		t.Fatal("offset not committed")
	}
	assert.Equal(t, int64(1), c.metrics.MessagesProcessed.Load())
}

func TestConsumerCommitsWithoutHandler(t *testing.T) {
	var fetched atomic.Bool
	committed := make(chan struct{}, 1)
	reader := &mockKafkaReader{
		fetchFunc: func(ctx context.Context) (kafka.Message, error) {
			if fetched.Swap(true) {
				<-ctx.Done()
				return kafka.Message{}, ctx.Err()
			}
			return kafka.Message{Topic: "juris.unrouted"}, nil
		},
		commitFunc: func(ctx context.Context, msgs ...kafka.Message) error {
			committed <- struct{}{}
			return nil
		},
	}

	c := newTestConsumer(reader, newTestConsumerConfig())
	require.NoError(t, c.Start(context.Background()))
	defer c.Close()

	select {
	case <-committed:
	case <-time.After(time.Second):
		t.Fatal("unrouted message not committed")
	}
}

func TestProcessMessageRetriesThenSucceeds(t *testing.T) {
	cfg := newTestConsumerConfig()
	cfg.RetryConfig = RetryConfig{MaxRetries: 3, RetryBackoff: time.Millisecond, MaxRetryBackoff: 5 * time.Millisecond}
	c := newTestConsumer(&mockKafkaReader{}, cfg)

	attempts := 0
	handler := func(ctx context.Context, msg *Message) error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	}

	err := c.processMessage(context.Background(), &Message{Topic: TopicEmailReceived}, handler)
	assert.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, int64(2), c.metrics.MessagesRetried.Load())
}

func TestProcessMessageExhaustionGoesToDeadLetter(t *testing.T) {
	var dlCaptured []kafka.Message
	dlWriter := &mockKafkaWriter{
		writeFunc: func(ctx context.Context, msgs ...kafka.Message) error {
			dlCaptured = msgs
			return nil
		},
	}

	cfg := newTestConsumerConfig()
	cfg.RetryConfig = RetryConfig{
		MaxRetries:      2,
		RetryBackoff:    time.Millisecond,
		MaxRetryBackoff: 2 * time.Millisecond,
		DeadLetterTopic: TopicDeadLetter,
	}
	c := newTestConsumer(&mockKafkaReader{}, cfg)
	c.deadLetterProducer = newTestProducer(dlWriter)

	handler := func(ctx context.Context, msg *Message) error {
		return errors.New("unparseable notification")
	}
	msg := &Message{
		Topic:   TopicEmailReceived,
		Offset:  42,
		Key:     []byte("0001234"),
		Value:   []byte("corrupt"),
		Headers: map[string]string{"event_type": TopicEmailReceived},
	}

	err := c.processMessage(context.Background(), msg, handler)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), c.metrics.MessagesDeadLettered.Load())

	require.Len(t, dlCaptured, 1)
	assert.Equal(t, TopicDeadLetter, dlCaptured[0].Topic)
	assert.Equal(t, "0001234", string(dlCaptured[0].Key))

	headers := make(map[string]string, len(dlCaptured[0].Headers))
	for _, h := range dlCaptured[0].Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, TopicEmailReceived, headers["original_topic"])
	assert.Equal(t, "unparseable notification", headers["error_message"])
	assert.Equal(t, TopicEmailReceived, headers["event_type"])
}

func TestProcessMessageExhaustionWithoutDeadLetterReturnsError(t *testing.T) {
	cfg := newTestConsumerConfig()
	cfg.RetryConfig = RetryConfig{MaxRetries: 1, RetryBackoff: time.Millisecond}
	c := newTestConsumer(&mockKafkaReader{}, cfg)

	err := c.processMessage(context.Background(), &Message{Topic: TopicEmailReceived}, func(ctx context.Context, msg *Message) error {
		return errors.New("boom")
	})
	assert.Error(t, err)
}

func TestConsumerClose(t *testing.T) {
	closed := make(chan struct{})
	reader := &mockKafkaReader{
		closeFunc: func() error {
			close(closed)
			return nil
		},
	}
	c := newTestConsumer(reader, newTestConsumerConfig())
	require.NoError(t, c.Start(context.Background()))
	require.NoError(t, c.Close())

	select {
	case <-closed:
	case <-time.After(time.Second):
		t.Fatal("reader not closed")
	}

	assert.NoError(t, c.Close())
}

//Personal.AI order the ending
