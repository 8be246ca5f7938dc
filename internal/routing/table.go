package routing

import (
	"fmt"
	"os"
	"strings"

	"github.com/tinytelemetry/lambdarelay/internal/model"
	"gopkg.in/yaml.v3"
)

// Route maps one AWS account to a target. Either Account or ARN must be set;
// with ARN the account is taken from the ARN.
type Route struct {
	Account      string `yaml:"account"`
	ARN          string `yaml:"arn"`
	model.Target `yaml:",inline"`
}

// TableConfig is the on-disk routes file.
type TableConfig struct {
	Routes  []Route       `yaml:"routes"`
	Default *model.Target `yaml:"default"`
}

// LoadTable reads a YAML routes file.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read routes file: %w", err)
	}
	var cfg TableConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse routes file %s: %w", path, err)
	}
	return NewTable(cfg)
}

// NewTable validates cfg and builds the account index.
func NewTable(cfg TableConfig) (*Table, error) {
	t := &Table{byAccount: make(map[string]model.Target, len(cfg.Routes))}

	for i, route := range cfg.Routes {
		account := strings.TrimSpace(route.Account)
		if route.ARN != "" {
			arn, err := ParseARN(route.ARN)
			if err != nil {
				return nil, fmt.Errorf("route %d: %w", i, err)
			}
			if account != "" && account != arn.Account {
				return nil, fmt.Errorf("route %d: account %q does not match arn account %q", i, account, arn.Account)
			}
			account = arn.Account
		}
		if account == "" {
			return nil, fmt.Errorf("route %d: account or arn is required", i)
		}
		if err := validateTarget(route.Target); err != nil {
			return nil, fmt.Errorf("route %d: %w", i, err)
		}
		if _, dup := t.byAccount[account]; dup {
			return nil, fmt.Errorf("route %d: duplicate account %s", i, account)
		}
		t.byAccount[account] = route.Target
	}

	if cfg.Default != nil {
		if err := validateTarget(*cfg.Default); err != nil {
			return nil, fmt.Errorf("default route: %w", err)
		}
		t.fallback = *cfg.Default
	}

	if len(t.byAccount) == 0 && t.fallback.IsZero() {
		return nil, fmt.Errorf("routing: no routes configured")
	}
	return t, nil
}
