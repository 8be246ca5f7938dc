package ingest

import (
	"context"

	"github.com/tinytelemetry/lambdarelay/internal/model"
)

// ReportExtractor pulls one error report out of a data envelope.
type ReportExtractor interface {
	ExtractReport(env *model.LogEnvelope) (*model.ParsedReport, error)
}

// TargetResolver picks the project a report from env is forwarded to.
type TargetResolver interface {
	Resolve(env *model.LogEnvelope) (model.Target, error)
}

// PayloadForwarder delivers one payload to the ingestion endpoint.
type PayloadForwarder interface {
	Forward(ctx context.Context, target model.Target, payload *model.IngestionPayload) error
}

// Recorder observes per-record outcomes. It is satisfied by *metrics.Metrics.
type Recorder interface {
	RecordOutcome(outcome string)
}

// Record outcomes reported to the Recorder.
const (
	OutcomeForwarded    = "forwarded"
	OutcomeSkipped      = "skipped"
	OutcomeDecodeError  = "decode_error"
	OutcomeParseError   = "parse_error"
	OutcomeResolveError = "resolve_error"
	OutcomeForwardError = "forward_error"
)
