package ingest

import (
	"encoding/hex"

	"github.com/google/uuid"
	"github.com/tinytelemetry/lambdarelay/internal/model"
)

// Builder maps parsed reports into ingestion payloads.
type Builder struct {
	contextName string
	newEventID  func() string
}

// NewBuilder creates a builder that files execution context under contextName.
func NewBuilder(contextName string) *Builder {
	if contextName == "" {
		contextName = model.DefaultContextName
	}
	return &Builder{
		contextName: contextName,
		newEventID:  NewEventID,
	}
}

// NewEventID returns a random 32 character hex event id.
func NewEventID() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}

// Build creates a payload for report with a fresh event id.
func (b *Builder) Build(report *model.ParsedReport) *model.IngestionPayload {
	frames := make([]model.PayloadFrame, 0, len(report.Frames))
	for _, f := range report.Frames {
		frames = append(frames, model.PayloadFrame{
			Filename: f.Filename,
			Lineno:   f.LineNumber,
			Function: f.Function,
		})
	}

	execCtx := make(map[string]string, len(report.ExecutionContext))
	for k, v := range report.ExecutionContext {
		execCtx[k] = v
	}

	return &model.IngestionPayload{
		EventID:    b.newEventID(),
		Message:    model.PayloadMessage{Message: report.Message},
		Exception:  model.PayloadException{Type: report.ExceptionType},
		Stacktrace: model.PayloadStacktrace{Frames: frames},
		Contexts:   map[string]map[string]string{b.contextName: execCtx},
	}
}
