package messaging

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/elabz/job-ingestion/internal/ingest"
	"github.com/elabz/job-ingestion/internal/telemetry"
	"github.com/elabz/job-ingestion/internal/xerrors"
)

var tracer = telemetry.GetTracer("job-ingestion/messaging")

const (
	// DecisionsSubject carries one event per ingested record.
	DecisionsSubject = "jobs.decisions"
	// BatchesSubject carries whole raw batches submitted for ingestion.
	BatchesSubject = "jobs.batches"
)

// Publisher emits decision events to NATS.
type Publisher interface {
	PublishDecision(ctx context.Context, event ingest.DecisionEvent) error
	Close()
}

type natsPublisher struct {
	conn   *nats.Conn
	logger *zap.Logger
}

func Connect(url string, timeout time.Duration) (*nats.Conn, error) {
	opts := []nats.Option{
		nats.Timeout(timeout),
		nats.Name("job-ingestion-service"),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(-1),
		nats.RetryOnFailedConnect(true),
	}
	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, xerrors.Unavailable("connecting to NATS", err)
	}
	return conn, nil
}

func NewPublisher(conn *nats.Conn, logger *zap.Logger) Publisher {
	return &natsPublisher{conn: conn, logger: logger}
}

func (p *natsPublisher) PublishDecision(ctx context.Context, event ingest.DecisionEvent) error {
	_, span := tracer.Start(ctx, "PublishDecision")
	defer span.End()

	data, err := json.Marshal(event)
	if err != nil {
		span.RecordError(err)
		return xerrors.Internal("marshaling decision event", err)
	}

	span.SetAttributes(
		telemetry.String("nats.subject", DecisionsSubject),
		telemetry.Int("message.size", len(data)),
	)

	if err := p.conn.Publish(DecisionsSubject, data); err != nil {
		span.RecordError(err)
		p.logger.Error("failed to publish decision event",
			zap.String("batch_id", event.BatchID),
			zap.Error(err))
		return xerrors.Internal("publishing to NATS", err)
	}

	p.logger.Debug("published decision event",
		zap.String("batch_id", event.BatchID),
		zap.Int("index", event.Index),
		zap.String("subject", DecisionsSubject))
	return nil
}

func (p *natsPublisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}
