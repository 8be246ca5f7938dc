package ingest

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/tinytelemetry/lambdarelay/internal/model"
	"go.uber.org/multierr"
)

// Processor runs each record of a batch through decode, parse, extract,
// resolve, build and forward. A failing record never stops the batch.
type Processor struct {
	extractor ReportExtractor
	builder   *Builder
	resolver  TargetResolver
	forwarder PayloadForwarder
	recorder  Recorder
}

// ProcessorConfig wires the processor stages.
type ProcessorConfig struct {
	Extractor ReportExtractor
	Builder   *Builder
	Resolver  TargetResolver
	Forwarder PayloadForwarder
	Recorder  Recorder
}

// NewProcessor creates a batch processor. Extractor and Builder default to
// the positional extractor and a builder with the default context name.
func NewProcessor(cfg ProcessorConfig) (*Processor, error) {
	if cfg.Resolver == nil {
		return nil, errors.New("ingest: target resolver is required")
	}
	if cfg.Forwarder == nil {
		return nil, errors.New("ingest: forwarder is required")
	}
	if cfg.Extractor == nil {
		cfg.Extractor = NewPositionalExtractor()
	}
	if cfg.Builder == nil {
		cfg.Builder = NewBuilder("")
	}
	return &Processor{
		extractor: cfg.Extractor,
		builder:   cfg.Builder,
		resolver:  cfg.Resolver,
		forwarder: cfg.Forwarder,
		recorder:  cfg.Recorder,
	}, nil
}

// BatchResult summarizes one processed batch.
type BatchResult struct {
	Received  int
	Forwarded int
	Skipped   int
	Failed    int
	// Err aggregates every per-record failure, nil when none failed.
	Err error
}

// ProcessBatch handles records strictly in order, one at a time.
func (p *Processor) ProcessBatch(ctx context.Context, records []model.LogRecord) BatchResult {
	result := BatchResult{Received: len(records)}

	for i, record := range records {
		outcome, err := p.processRecord(ctx, i, record)
		p.record(outcome)

		switch {
		case err != nil:
			result.Failed++
			result.Err = multierr.Append(result.Err, fmt.Errorf("record %d: %w", i, err))
		case outcome == OutcomeSkipped:
			result.Skipped++
		default:
			result.Forwarded++
		}
	}

	if result.Failed > 0 {
		log.Printf("webhook: batch done: received=%d forwarded=%d skipped=%d failed=%d",
			result.Received, result.Forwarded, result.Skipped, result.Failed)
	}
	return result
}

func (p *Processor) processRecord(ctx context.Context, index int, record model.LogRecord) (string, error) {
	data, err := Decode(record.Data)
	if err != nil {
		log.Printf("webhook: record %d: %v", index, err)
		return OutcomeDecodeError, err
	}

	env, err := ParseEnvelope(data)
	if err != nil {
		log.Printf("webhook: record %d: %v", index, err)
		return OutcomeParseError, err
	}

	if !env.IsData() {
		return OutcomeSkipped, nil
	}

	report, err := p.extractor.ExtractReport(env)
	if err != nil {
		log.Printf("webhook: record %d: log_group=%s log_stream=%s: %v", index, env.LogGroup, env.LogStream, err)
		return OutcomeParseError, err
	}

	target, err := p.resolver.Resolve(env)
	if err != nil {
		log.Printf("webhook: record %d: owner=%s: %v", index, env.Owner, err)
		return OutcomeResolveError, err
	}

	payload := p.builder.Build(report)
	if err := p.forwarder.Forward(ctx, target, payload); err != nil {
		log.Printf("webhook: record %d: forward event_id=%s project=%s key=%s: %v",
			index, payload.EventID, target.ProjectID, target.PublicKey, err)
		return OutcomeForwardError, err
	}

	return OutcomeForwarded, nil
}

func (p *Processor) record(outcome string) {
	if p.recorder != nil {
		p.recorder.RecordOutcome(outcome)
	}
}
