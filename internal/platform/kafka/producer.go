// Package kafka exports audit events to a Kafka-compatible broker.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	"estategate/internal/platform/config"
	audit "estategate/pkg/platform/audit"
	"estategate/pkg/platform/sentinel"
)

// Header keys set on every exported record.
const (
	HeaderCategory = "audit-category"
	HeaderAction   = "audit-action"
)

// Producer is an audit.BatchStore backed by a Kafka topic. Records are keyed
// by visitor so events for one visitor keep their order within a partition.
type Producer struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

var _ audit.BatchStore = (*Producer)(nil)

// Option configures a Producer.
type Option func(*producerOptions)

type producerOptions struct {
	logger     *slog.Logger
	extra      []kgo.Opt
	lingerTime time.Duration
}

// WithLogger sets the logger used for producer lifecycle messages.
func WithLogger(logger *slog.Logger) Option {
	return func(o *producerOptions) {
		o.logger = logger
	}
}

// WithClientOptions appends raw franz-go options, mainly for tests.
func WithClientOptions(opts ...kgo.Opt) Option {
	return func(o *producerOptions) {
		o.extra = append(o.extra, opts...)
	}
}

// NewProducer creates a producer for cfg. It does not contact the brokers;
// call Ping to check reachability.
func NewProducer(cfg config.KafkaConfig, opts ...Option) (*Producer, error) {
	if !cfg.Enabled() {
		return nil, errors.New("kafka: no seed brokers configured")
	}
	if cfg.AuditTopic == "" {
		return nil, errors.New("kafka: audit topic is required")
	}

	o := producerOptions{lingerTime: 10 * time.Millisecond}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	kopts := []kgo.Opt{
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.DefaultProduceTopic(cfg.AuditTopic),
		kgo.AllowAutoTopicCreation(),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ProducerLinger(o.lingerTime),
	}
	if cfg.ClientID != "" {
		kopts = append(kopts, kgo.ClientID(cfg.ClientID))
	}
	kopts = append(kopts, o.extra...)

	client, err := kgo.NewClient(kopts...)
	if err != nil {
		return nil, fmt.Errorf("kafka: create client: %w", err)
	}
	return &Producer{client: client, topic: cfg.AuditTopic, logger: o.logger}, nil
}

// Append exports a single event and waits for the broker ack.
func (p *Producer) Append(ctx context.Context, event audit.Event) error {
	return p.AppendBatch(ctx, []audit.Event{event})
}

// AppendBatch exports events in one synchronous produce call. The batch
// fails as a whole if any record is not acknowledged.
func (p *Producer) AppendBatch(ctx context.Context, events []audit.Event) error {
	if len(events) == 0 {
		return nil
	}
	records := make([]*kgo.Record, 0, len(events))
	for _, e := range events {
		rec, err := toRecord(e)
		if err != nil {
			return err
		}
		records = append(records, rec)
	}

	if err := p.client.ProduceSync(ctx, records...).FirstErr(); err != nil {
		return fmt.Errorf("kafka: produce %d audit events: %w: %w", len(records), sentinel.ErrUnavailable, err)
	}
	return nil
}

// Ping checks that at least one broker answers.
func (p *Producer) Ping(ctx context.Context) error {
	if err := p.client.Ping(ctx); err != nil {
		return fmt.Errorf("kafka: ping: %w: %w", sentinel.ErrUnavailable, err)
	}
	return nil
}

// Close flushes buffered records and closes the client.
func (p *Producer) Close(ctx context.Context) {
	if err := p.client.Flush(ctx); err != nil {
		p.logger.WarnContext(ctx, "kafka flush on close failed", "topic", p.topic, "error", err)
	}
	p.client.Close()
}

func toRecord(e audit.Event) (*kgo.Record, error) {
	value, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("kafka: encode audit event %s: %w", e.Action, err)
	}
	return &kgo.Record{
		Key:   []byte(e.Key()),
		Value: value,
		Headers: []kgo.RecordHeader{
			{Key: HeaderCategory, Value: []byte(e.Category)},
			{Key: HeaderAction, Value: []byte(e.Action)},
		},
	}, nil
}
