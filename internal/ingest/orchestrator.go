// Package ingest drives one batch through mapping, rule evaluation and
// persistence while tracking per-batch progress.
package ingest

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/elabz/job-ingestion/internal/approval"
	"github.com/elabz/job-ingestion/internal/archive"
	"github.com/elabz/job-ingestion/internal/mapper"
	"github.com/elabz/job-ingestion/internal/models"
	"github.com/elabz/job-ingestion/internal/schema"
	"github.com/elabz/job-ingestion/internal/status"
	"github.com/elabz/job-ingestion/internal/telemetry"
	"github.com/elabz/job-ingestion/internal/xerrors"
)

// Repository is the narrow persistence surface the orchestrator depends on.
// Implementations must scope each write to its own session.
type Repository interface {
	SaveApproved(ctx context.Context, rec models.CanonicalRecord) error
	SaveRejected(ctx context.Context, rec models.CanonicalRecord, reasons string) error
}

// DecisionEvent describes one record's outcome for downstream consumers.
type DecisionEvent struct {
	BatchID    string    `json:"batch_id"`
	Index      int       `json:"index"`
	ExternalID string    `json:"external_id"`
	Approved   bool      `json:"approved"`
	Reasons    []string  `json:"reasons,omitempty"`
	SchemaTag  string    `json:"schema_tag"`
	Timestamp  time.Time `json:"timestamp"`
}

// DecisionPublisher emits decision events. Publishing is best-effort.
type DecisionPublisher interface {
	PublishDecision(ctx context.Context, event DecisionEvent) error
}

// Archiver appends ingestion outcomes to the analytics archive.
type Archiver interface {
	Archive(ctx context.Context, entry archive.Entry) error
}

type recordOutcome int

const (
	outcomeApproved recordOutcome = iota
	outcomeRejected
	outcomeError
)

// Orchestrator runs batches synchronously: one in-flight batch occupies the
// calling context until completion. A single record's failure never aborts
// the batch.
type Orchestrator struct {
	mapper    *mapper.Mapper
	engine    *approval.Engine
	repo      Repository
	statuses  status.Store
	publisher DecisionPublisher
	archiver  Archiver
	logger    *zap.Logger
	tracer    trace.Tracer
}

// New wires an orchestrator. publisher and archiver may be nil; both are
// optional observability sinks.
func New(
	m *mapper.Mapper,
	engine *approval.Engine,
	repo Repository,
	statuses status.Store,
	publisher DecisionPublisher,
	archiver Archiver,
	logger *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		mapper:    m,
		engine:    engine,
		repo:      repo,
		statuses:  statuses,
		publisher: publisher,
		archiver:  archiver,
		logger:    logger,
		tracer:    telemetry.GetTracer("job-ingestion/ingest"),
	}
}

// IngestBatch processes every record of the batch and returns the batch
// identifier. Individual record failures surface only through the errors
// counter and logs, never as a call failure.
func (o *Orchestrator) IngestBatch(ctx context.Context, batch []map[string]any) (string, error) {
	ctx, span := o.tracer.Start(ctx, "Orchestrator.IngestBatch")
	defer span.End()

	batchID := uuid.NewString()
	span.SetAttributes(
		telemetry.String("batch.id", batchID),
		telemetry.Int("batch.size", len(batch)),
	)

	st := models.BatchStatus{
		Total:     len(batch),
		StartedAt: time.Now().UTC(),
	}
	if err := o.statuses.Put(ctx, batchID, st); err != nil {
		return "", xerrors.Internal("initializing batch status", err)
	}

	telemetry.BatchesStarted.Inc()
	o.logger.Info("batch started",
		zap.String("batch_id", batchID),
		zap.Int("total", len(batch)))

	tag := o.detectSchema(batch)

	for idx, raw := range batch {
		switch o.processRecord(ctx, batchID, idx, raw, tag) {
		case outcomeApproved:
			st.Processed++
			st.Approved++
			telemetry.RecordsApproved.Inc()
		case outcomeRejected:
			st.Processed++
			st.Rejected++
			telemetry.RecordsRejected.Inc()
		case outcomeError:
			st.Errors++
			telemetry.RecordsErrored.Inc()
		}
		if err := o.statuses.Put(ctx, batchID, st); err != nil {
			o.logger.Warn("failed to update batch status",
				zap.String("batch_id", batchID),
				zap.Error(err))
		}
	}

	finished := time.Now().UTC()
	st.FinishedAt = &finished
	if err := o.statuses.Put(ctx, batchID, st); err != nil {
		o.logger.Warn("failed to finalize batch status",
			zap.String("batch_id", batchID),
			zap.Error(err))
	}

	telemetry.BatchesFinished.Inc()
	o.logger.Info("batch finished",
		zap.String("batch_id", batchID),
		zap.String("schema_tag", string(tag)),
		zap.Int("processed", st.Processed),
		zap.Int("approved", st.Approved),
		zap.Int("rejected", st.Rejected),
		zap.Int("errors", st.Errors))

	return batchID, nil
}

// Status returns the progress record for a batch, or false for unknown
// identifiers.
func (o *Orchestrator) Status(ctx context.Context, batchID string) (models.BatchStatus, bool) {
	st, ok, err := o.statuses.Get(ctx, batchID)
	if err != nil {
		o.logger.Warn("failed to read batch status",
			zap.String("batch_id", batchID),
			zap.Error(err))
		return models.BatchStatus{}, false
	}
	return st, ok
}

// RegisterSourceSchema is a placeholder for named-source schema
// registration.
func (o *Orchestrator) RegisterSourceSchema(name string, sourceSchema map[string]any) error {
	return xerrors.NotImplemented("register_source_schema is not yet implemented")
}

// detectSchema never gates ingestion: any detector failure defaults to the
// unknown tag.
func (o *Orchestrator) detectSchema(batch []map[string]any) (tag schema.Tag) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("schema detection failed, defaulting to unknown", zap.Any("panic", r))
			tag = schema.TagUnknown
		}
	}()
	return schema.Detect(batch)
}

// processRecord maps, evaluates and persists one record. All failure modes,
// panics included, collapse into the error outcome so the batch continues.
func (o *Orchestrator) processRecord(ctx context.Context, batchID string, idx int, raw map[string]any, tag schema.Tag) (out recordOutcome) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("record processing panicked",
				zap.String("batch_id", batchID),
				zap.Int("index", idx),
				zap.Any("panic", r))
			out = outcomeError
		}
	}()

	ctx, span := o.tracer.Start(ctx, "Orchestrator.processRecord")
	defer span.End()
	span.SetAttributes(telemetry.Int("record.index", idx))

	rec := o.mapper.Map(raw)
	view := buildView(raw, rec, string(tag))
	decision := o.engine.Evaluate(view)
	span.SetAttributes(telemetry.Bool("record.approved", decision.Approved))

	var err error
	if decision.Approved {
		err = o.repo.SaveApproved(ctx, rec)
	} else {
		reasons := strings.Join(decision.Reasons, "; ")
		if reasons == "" {
			reasons = "Failed approval rules"
		}
		err = o.repo.SaveRejected(ctx, rec, reasons)
	}
	if err != nil {
		span.RecordError(err)
		o.logger.Error("failed to persist record",
			zap.String("batch_id", batchID),
			zap.Int("index", idx),
			zap.String("external_id", rec.ExternalID),
			zap.Error(err))
		return outcomeError
	}

	event := DecisionEvent{
		BatchID:    batchID,
		Index:      idx,
		ExternalID: rec.ExternalID,
		Approved:   decision.Approved,
		Reasons:    decision.Reasons,
		SchemaTag:  string(tag),
		Timestamp:  time.Now().UTC(),
	}
	o.publishDecision(ctx, event)
	o.archiveRecord(ctx, event, raw)

	o.logger.Info("record processed",
		zap.String("batch_id", batchID),
		zap.Int("index", idx),
		zap.String("external_id", rec.ExternalID),
		zap.Bool("approved", decision.Approved),
		zap.Strings("reasons", decision.Reasons))

	if decision.Approved {
		return outcomeApproved
	}
	return outcomeRejected
}

func (o *Orchestrator) publishDecision(ctx context.Context, event DecisionEvent) {
	if o.publisher == nil {
		return
	}
	if err := o.publisher.PublishDecision(ctx, event); err != nil {
		o.logger.Warn("failed to publish decision event",
			zap.String("batch_id", event.BatchID),
			zap.Int("index", event.Index),
			zap.Error(err))
	}
}

func (o *Orchestrator) archiveRecord(ctx context.Context, event DecisionEvent, raw map[string]any) {
	if o.archiver == nil {
		return
	}
	rawData, err := json.Marshal(raw)
	if err != nil {
		o.logger.Warn("failed to encode raw record for archive", zap.Error(err))
		return
	}
	entry := archive.Entry{
		BatchID:    event.BatchID,
		Index:      event.Index,
		ExternalID: event.ExternalID,
		SchemaTag:  event.SchemaTag,
		Approved:   event.Approved,
		Reasons:    event.Reasons,
		RawData:    string(rawData),
		IngestedAt: event.Timestamp,
	}
	if err := o.archiver.Archive(ctx, entry); err != nil {
		o.logger.Warn("failed to archive record",
			zap.String("batch_id", event.BatchID),
			zap.Int("index", event.Index),
			zap.Error(err))
	}
}
