package ingest

import (
	"encoding/json"

	"github.com/tinytelemetry/lambdarelay/internal/model"
)

// ParseEnvelope parses decompressed record bytes into a log envelope.
func ParseEnvelope(data []byte) (*model.LogEnvelope, error) {
	var env model.LogEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, &ParseError{Reason: "invalid envelope JSON", Err: err}
	}
	return &env, nil
}
