package routing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tinytelemetry/lambdarelay/internal/model"
)

// ErrNoRoute is returned when no target is configured for an envelope's owner.
var ErrNoRoute = errors.New("no route for envelope owner")

// Static sends every envelope to one target.
type Static struct {
	target model.Target
}

// NewStatic validates target and returns a static resolver.
func NewStatic(target model.Target) (*Static, error) {
	if err := validateTarget(target); err != nil {
		return nil, err
	}
	return &Static{target: target}, nil
}

// Resolve implements ingest.TargetResolver.
func (s *Static) Resolve(*model.LogEnvelope) (model.Target, error) {
	return s.target, nil
}

// Table routes envelopes by owner account id, falling back to a default target.
type Table struct {
	byAccount map[string]model.Target
	fallback  model.Target
}

// Resolve implements ingest.TargetResolver.
func (t *Table) Resolve(env *model.LogEnvelope) (model.Target, error) {
	if env != nil {
		if target, ok := t.byAccount[env.Owner]; ok {
			return target, nil
		}
	}
	if !t.fallback.IsZero() {
		return t.fallback, nil
	}
	owner := ""
	if env != nil {
		owner = env.Owner
	}
	return model.Target{}, fmt.Errorf("%w %q", ErrNoRoute, owner)
}

// Len returns the number of account routes.
func (t *Table) Len() int {
	return len(t.byAccount)
}

func validateTarget(target model.Target) error {
	if strings.TrimSpace(target.ProjectID) == "" {
		return errors.New("routing: project id is required")
	}
	if strings.TrimSpace(target.PublicKey) == "" {
		return errors.New("routing: public key is required")
	}
	return nil
}
