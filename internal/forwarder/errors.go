package forwarder

import (
	"fmt"
	"strings"

	"github.com/tinytelemetry/lambdarelay/internal/model"
)

// ForwardError reports a payload the ingestion endpoint rejected or never received.
type ForwardError struct {
	ProjectID  string
	PublicKey  string
	StatusCode int    // zero for transport failures
	Body       string // response body, truncated
	Err        error
}

func newForwardError(target model.Target, status int, body string, err error) *ForwardError {
	return &ForwardError{
		ProjectID:  target.ProjectID,
		PublicKey:  target.PublicKey,
		StatusCode: status,
		Body:       strings.TrimSpace(body),
		Err:        err,
	}
}

func (e *ForwardError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("forward to project %s: %v", e.ProjectID, e.Err)
	}
	if e.Body == "" {
		return fmt.Sprintf("forward to project %s: status %d", e.ProjectID, e.StatusCode)
	}
	return fmt.Sprintf("forward to project %s: status %d: %s", e.ProjectID, e.StatusCode, e.Body)
}

func (e *ForwardError) Unwrap() error { return e.Err }
