package messaging

import (
	"context"
	"encoding/json"

	"github.com/nats-io/nats.go"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/elabz/job-ingestion/internal/ingest"
	"github.com/elabz/job-ingestion/internal/xerrors"
)

// BatchMessage is the wire shape of a batch submitted over NATS.
type BatchMessage struct {
	Jobs []map[string]any `json:"jobs"`
}

// Handler feeds batches arriving on jobs.batches into the orchestrator.
type Handler struct {
	logger       *zap.Logger
	nc           *nats.Conn
	orchestrator *ingest.Orchestrator
	sub          *nats.Subscription
}

func NewHandler(logger *zap.Logger, nc *nats.Conn, orchestrator *ingest.Orchestrator) *Handler {
	return &Handler{
		logger:       logger,
		nc:           nc,
		orchestrator: orchestrator,
	}
}

func (h *Handler) RegisterSubscriptions(lc fx.Lifecycle) error {
	sub, err := h.nc.QueueSubscribe(BatchesSubject, "job-ingestion-service", h.handleBatch)
	if err != nil {
		return xerrors.Unavailable("subscribing to "+BatchesSubject, err)
	}

	h.sub = sub
	h.logger.Info("registered NATS subscriptions", zap.String("subject", BatchesSubject))

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return h.sub.Unsubscribe()
		},
	})

	return nil
}

func (h *Handler) handleBatch(msg *nats.Msg) {
	ctx, span := tracer.Start(context.Background(), "handleBatch")
	defer span.End()

	var batch BatchMessage
	if err := json.Unmarshal(msg.Data, &batch); err != nil {
		span.RecordError(err)
		h.logger.Error("failed to decode batch message",
			zap.String("subject", msg.Subject),
			zap.Error(err))
		return
	}

	batchID, err := h.orchestrator.IngestBatch(ctx, batch.Jobs)
	if err != nil {
		span.RecordError(err)
		h.logger.Error("failed to ingest batch",
			zap.String("subject", msg.Subject),
			zap.Error(err))
		return
	}

	h.logger.Info("ingested batch from NATS",
		zap.String("subject", msg.Subject),
		zap.String("batch_id", batchID),
		zap.Int("jobs", len(batch.Jobs)))
}
